package ingest

import (
	"regexp"
	"strings"
)

// Pair is one (person id, status) report as received on the wire, still in
// raw token form. Token content is validated by the service, not the parser,
// because bad content routes to different audit categories than bad shape.
type Pair struct {
	ID     string
	Status string
}

// FormatError indicates the raw payload failed basic shape rules before any
// semantic interpretation.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	return "invalid payload format: " + e.Detail
}

var tokenSeparators = regexp.MustCompile(`[,\s]+`)

// Parse tokenizes a raw device payload of the form "ID,STATUS,ID,STATUS,..."
// into ordered pairs. Commas and whitespace runs are equivalent separators.
// Returns a FormatError when the payload is empty or the token count is odd.
func Parse(raw string) ([]Pair, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &FormatError{Detail: "empty payload"}
	}

	tokens := tokenSeparators.Split(trimmed, -1)
	if len(tokens)%2 != 0 {
		return nil, &FormatError{Detail: "odd number of tokens"}
	}

	pairs := make([]Pair, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		pairs = append(pairs, Pair{ID: tokens[i], Status: tokens[i+1]})
	}
	return pairs, nil
}
