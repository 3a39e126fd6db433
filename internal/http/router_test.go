package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"voyager/internal/ai"
	"voyager/internal/http/handlers"
	"voyager/internal/modules/assistant"
	"voyager/internal/modules/trip"
	"voyager/internal/modules/usage"
	"voyager/internal/types"
)

type stubGenerator struct{ err error }

func (s *stubGenerator) GenerateItinerary(_ context.Context, prefs trip.Preferences) (*trip.Itinerary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &trip.Itinerary{
		ID:       "it-http-1",
		Location: prefs.Destination,
		Days: []trip.DayPlan{
			{DayNumber: 1, Label: "Arrival", Items: []trip.ItineraryItem{{Time: "09:00", Title: "Check in", Period: trip.PeriodMorning}}},
		},
	}, nil
}

type stubProvider struct{}

func (stubProvider) Ask(context.Context, string) (string, error) { return "ok", nil }
func (stubProvider) SearchWeb(context.Context, string) (ai.Answer, error) {
	return ai.Answer{Text: "web"}, nil
}
func (stubProvider) SearchPlaces(context.Context, string, types.LatLng) (ai.Answer, error) {
	return ai.Answer{Text: "place"}, nil
}
func (stubProvider) AnalyzeImage(context.Context, []byte, string) (string, error) {
	return "image", nil
}

type stubTranscriber struct{}

func (stubTranscriber) TranscribeAudio(context.Context, []byte) (string, error) {
	return "hello there", nil
}

type stubDialer struct{}

func (stubDialer) Dial(context.Context, string) (ai.LiveStream, error) { return nil, nil }

func newTestRouter(gen trip.Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	trips := trip.NewService(trip.NewStore(), gen)
	asst := assistant.NewService(
		assistant.NewStore(), stubProvider{}, assistant.NoLocator(),
		usage.NewService(usage.NewStore(), 0), 100,
	)
	return NewRouter(
		handlers.NewTripHandler(trips),
		handlers.NewAssistantHandler(asst),
		handlers.NewVoiceHandler(stubTranscriber{}, stubDialer{}, 0),
		handlers.NewBriefingHandler(trips, nil),
	)
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWizardFlowOverHTTP(t *testing.T) {
	r := newTestRouter(&stubGenerator{})

	if w := do(t, r, http.MethodPost, "/api/trip/start", nil); w.Code != http.StatusOK {
		t.Fatalf("start status = %d: %s", w.Code, w.Body)
	}

	w := do(t, r, http.MethodPost, "/api/trip/plan", trip.DefaultPreferences())
	if w.Code != http.StatusCreated {
		t.Fatalf("plan status = %d: %s", w.Code, w.Body)
	}
	var planResp struct {
		State     trip.AppState   `json:"state"`
		Itinerary *trip.Itinerary `json:"itinerary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &planResp); err != nil {
		t.Fatalf("decode plan response: %v", err)
	}
	if planResp.State != trip.StateDashboard {
		t.Errorf("state = %q, want dashboard", planResp.State)
	}
	if planResp.Itinerary == nil || planResp.Itinerary.ID != "it-http-1" {
		t.Errorf("itinerary = %+v", planResp.Itinerary)
	}

	if w := do(t, r, http.MethodGet, "/api/trip", nil); w.Code != http.StatusOK {
		t.Errorf("current status = %d", w.Code)
	}
	if w := do(t, r, http.MethodPut, "/api/trip/days/1", nil); w.Code != http.StatusOK {
		t.Errorf("select day status = %d: %s", w.Code, w.Body)
	}
	if w := do(t, r, http.MethodPost, "/api/briefing", map[string]int{"day": 1}); w.Code != http.StatusOK {
		t.Errorf("briefing status = %d: %s", w.Code, w.Body)
	}
}

func TestPlanBeforeStartIsConflict(t *testing.T) {
	r := newTestRouter(&stubGenerator{})
	if w := do(t, r, http.MethodPost, "/api/trip/plan", trip.DefaultPreferences()); w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestTripBeforeGenerationIsNotFound(t *testing.T) {
	r := newTestRouter(&stubGenerator{})
	if w := do(t, r, http.MethodGet, "/api/trip", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPlanWithInvalidPreferences(t *testing.T) {
	r := newTestRouter(&stubGenerator{})
	do(t, r, http.MethodPost, "/api/trip/start", nil)

	prefs := trip.DefaultPreferences()
	prefs.Duration = 0
	if w := do(t, r, http.MethodPost, "/api/trip/plan", prefs); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAssistantMessageOverHTTP(t *testing.T) {
	r := newTestRouter(&stubGenerator{})

	w := do(t, r, http.MethodPost, "/api/assistant/c1/messages", map[string]string{"text": "events this week"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var reply assistant.Message
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Role != assistant.RoleAssistant || reply.Content != "web" {
		t.Errorf("reply = %+v", reply)
	}

	w = do(t, r, http.MethodGet, "/api/assistant/c1", nil)
	var history struct {
		Messages []assistant.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.Messages) != 3 {
		t.Errorf("history length = %d, want greeting + turn + reply", len(history.Messages))
	}
}

func TestTranscribeOverHTTP(t *testing.T) {
	r := newTestRouter(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/api/voice/transcribe", bytes.NewReader([]byte("RIFFfake")))
	req.Header.Set("Content-Type", "audio/wav")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Text != "hello there" {
		t.Errorf("text = %q", resp.Text)
	}
}
