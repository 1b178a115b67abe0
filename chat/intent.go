// Package chat implements the conversational entry point: per-session
// transcripts, intent classification, and intent-specific handlers.
package chat

import "strings"

// Intent is the classified purpose of a message.
type Intent string

const (
	IntentProgram Intent = "PROGRAM"
	IntentInfo    Intent = "INFO"
	IntentBooking Intent = "BOOKING"
	IntentOther   Intent = "OTHER"
)

// classificationOrder fixes the first-match-wins precedence.
var classificationOrder = []Intent{IntentProgram, IntentInfo, IntentBooking}

// ClassifyIntent maps a raw classifier reply to an Intent by
// case-insensitive substring match, first match in precedence order. A
// reply containing none of the tokens is OTHER.
func ClassifyIntent(raw string) Intent {
	upper := strings.ToUpper(raw)
	for _, intent := range classificationOrder {
		if strings.Contains(upper, string(intent)) {
			return intent
		}
	}
	return IntentOther
}
