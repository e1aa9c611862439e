package fixture

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/go-cmp/cmp"
)

// DecodeValue parses data as exactly one JSON value. Anything after the
// literal beyond whitespace is an error; an expectation literal and a
// program's output are both a single value.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, errors.New("trailing data after value")
	}
	return v, nil
}

// Equal reports structural equality of two decoded values: object key order
// is irrelevant, arrays compare element-wise in order, scalars by type and
// value. Numbers decode to float64 on both sides, so 1 and 1.0 compare equal.
func Equal(a, b any) bool {
	return cmp.Equal(a, b)
}

// Diff renders a human-readable structural diff of expected versus actual,
// empty when equal.
func Diff(expected, actual any) string {
	return cmp.Diff(expected, actual)
}
