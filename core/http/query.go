package http

import (
	"fmt"
	"maps"
	"strings"
)

// QueryParams holds decoded query-string values keyed by name.
type QueryParams struct {
	values map[string]string
}

func NewQueryParams() QueryParams {
	return QueryParams{values: make(map[string]string)}
}

// ParseQueryParams parses the part of a target after '?'. Every pair needs a
// non-empty name and value; values are percent-decoded with '+' as space.
func ParseQueryParams(raw string) (QueryParams, error) {
	qp := NewQueryParams()

	for _, pair := range strings.Split(raw, "&") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return QueryParams{}, fmt.Errorf("%w: %q", ErrInvalidQueryParam, pair)
		}
		if name == "" || value == "" {
			return QueryParams{}, fmt.Errorf("%w: %q", ErrEmptyQueryParam, pair)
		}
		if !onlyChars(name, queryNameChars) || !onlyChars(value, queryRawValueChars) {
			return QueryParams{}, fmt.Errorf("%w: %q", ErrInvalidQueryParamCharacters, pair)
		}

		decoded, err := decodeQueryValue(value)
		if err != nil {
			return QueryParams{}, err
		}
		if !onlyChars(decoded, queryValueChars) {
			return QueryParams{}, fmt.Errorf("%w: %q", ErrInvalidQueryParamCharacters, pair)
		}

		qp.values[name] = decoded
	}

	return qp, nil
}

func (q QueryParams) Get(name string) (string, bool) {
	v, ok := q.values[name]
	return v, ok
}

func (q QueryParams) Len() int {
	return len(q.values)
}

// All returns a copy of every parameter.
func (q QueryParams) All() map[string]string {
	return maps.Clone(q.values)
}
