package http

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const crlf = "\r\n"

// Headers maps lower-cased field names to values.
type Headers struct {
	values map[string]string
}

func NewHeaders() Headers {
	return Headers{values: make(map[string]string)}
}

// SetFromLine parses a "Name: value" line without its CRLF. The name must be
// an RFC 7230 token; surrounding whitespace is trimmed from the value only.
func (h Headers) SetFromLine(line string) error {
	name, value, ok := strings.Cut(line, ":")
	if !ok || name == "" {
		return fmt.Errorf("%w: %q", ErrInvalidHeader, line)
	}
	value = strings.Trim(value, " \t")

	if !httpguts.ValidHeaderFieldName(name) || !onlyChars(value, headerValueChars) {
		return fmt.Errorf("%w: %q", ErrInvalidHeaderCharacters, line)
	}

	h.values[strings.ToLower(name)] = value
	return nil
}

// Set stores a header without validation, replacing any previous value.
func (h Headers) Set(name, value string) {
	h.values[strings.ToLower(name)] = value
}

func (h Headers) Get(name string) (string, bool) {
	v, ok := h.values[strings.ToLower(name)]
	return v, ok
}

func (h Headers) Del(name string) {
	delete(h.values, strings.ToLower(name))
}

func (h Headers) Len() int {
	return len(h.values)
}

// AppendTo writes one "Name: value\r\n" line per header, sorted by name.
func (h Headers) AppendTo(b []byte) []byte {
	caser := cases.Title(language.English)
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		b = append(b, caser.String(k)...)
		b = append(b, ": "...)
		b = append(b, h.values[k]...)
		b = append(b, crlf...)
	}
	return b
}

// Bytes returns the serialized header lines.
func (h Headers) Bytes() []byte {
	return h.AppendTo(nil)
}

func (h Headers) String() string {
	return string(bytes.TrimSuffix(h.Bytes(), []byte(crlf)))
}
