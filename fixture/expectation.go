package fixture

import "fmt"

// Kind discriminates the two expectation variants.
type Kind int

const (
	// ExpectFailure requires the invocation to exit non-zero. Its output is
	// not inspected.
	ExpectFailure Kind = iota
	// ExpectSuccess requires a zero exit and combined output deeply equal to
	// Value.
	ExpectSuccess
)

// Expectation is the predicate a case outcome must satisfy. The variant is
// decided once at parse time from the shape of the literal: an object literal
// means ExpectSuccess, while any other valid JSON literal (string, number,
// array, bool, null) doubles as the must-fail sentinel.
type Expectation struct {
	Kind  Kind
	Value map[string]any // expected output, ExpectSuccess only
}

// parseExpectation decodes and classifies a case's expectation literal.
func parseExpectation(text string) (Expectation, error) {
	v, err := DecodeValue([]byte(text))
	if err != nil {
		return Expectation{}, fmt.Errorf("malformed expectation literal: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		return Expectation{Kind: ExpectSuccess, Value: obj}, nil
	}
	return Expectation{Kind: ExpectFailure}, nil
}
