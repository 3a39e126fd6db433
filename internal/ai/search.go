// README: Web search grounding over the generative language REST API.
//
// The pinned SDK release exposes function calling and code execution tools
// but not google_search, so grounded search goes through v1beta directly.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const searchEndpoint = "https://generativelanguage.googleapis.com/v1beta"

type searchRequest struct {
	Contents []searchContent `json:"contents"`
	Tools    []searchTool    `json:"tools"`
}

type searchContent struct {
	Parts []searchPart `json:"parts"`
}

type searchPart struct {
	Text string `json:"text"`
}

type searchTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type searchResponse struct {
	Candidates []searchCandidate `json:"candidates"`
}

type searchCandidate struct {
	Content           searchContent      `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *groundingWeb `json:"web"`
}

type groundingWeb struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// SearchWeb answers with live search grounding and returns the source pages.
func (p *GeminiProvider) SearchWeb(ctx context.Context, query string) (Answer, error) {
	body, err := json.Marshal(searchRequest{
		Contents: []searchContent{{Parts: []searchPart{{Text: query}}}},
		Tools:    []searchTool{{}},
	})
	if err != nil {
		return Answer{}, fmt.Errorf("ai: encode search request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.searchBase, searchModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Answer{}, fmt.Errorf("ai: build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Answer{}, fmt.Errorf("ai: web search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Answer{}, fmt.Errorf("ai: web search: status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Answer{}, fmt.Errorf("ai: decode search response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return Answer{}, ErrEmptyResponse
	}

	cand := parsed.Candidates[0]
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Answer{}, ErrEmptyResponse
	}

	answer := Answer{Text: text}
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			title := chunk.Web.Title
			if title == "" {
				title = chunk.Web.URI
			}
			answer.Citations = append(answer.Citations, Citation{
				Kind:  CitationWeb,
				Title: title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return answer, nil
}
