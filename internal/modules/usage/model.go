// README: Monthly AI usage allowance.
package usage

import "errors"

var ErrInsufficientTokens = errors.New("monthly ai allowance exhausted")

const DefaultTokens = 100

// Record tracks one caller's remaining allowance for a calendar month.
type Record struct {
	Month     string
	Remaining int
}
