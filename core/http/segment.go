package http

import (
	"fmt"
	"strings"
)

// Segment is one '/'-delimited component of a path: either literal text or,
// when written as <name>, a named parameter.
type Segment struct {
	text    string
	isParam bool
}

// ParseSegment validates and percent-decodes a single raw path token.
func ParseSegment(raw string) (Segment, error) {
	text := raw
	isParam := len(raw) >= 2 && raw[0] == '<' && raw[len(raw)-1] == '>'
	if isParam {
		text = raw[1 : len(raw)-1]
		if text == "" {
			return Segment{}, fmt.Errorf("%w: %q", ErrEmptyPathSegment, raw)
		}
	}

	if strings.ContainsAny(text, "<>") {
		return Segment{}, fmt.Errorf("%w: %q", ErrInvalidPathSegment, raw)
	}
	if !onlyChars(text, segmentRawChars) {
		return Segment{}, fmt.Errorf("%w: %q", ErrInvalidPathCharacters, raw)
	}

	decoded, err := decodeSegment(text)
	if err != nil {
		return Segment{}, err
	}
	if !onlyChars(decoded, segmentChars) {
		return Segment{}, fmt.Errorf("%w: %q", ErrInvalidPathCharacters, raw)
	}

	return Segment{text: decoded, isParam: isParam}, nil
}

// Text returns the decoded literal, or the parameter name for parameter segments.
func (s Segment) Text() string {
	return s.text
}

// IsParam reports whether the segment is a <name> placeholder.
func (s Segment) IsParam() bool {
	return s.isParam
}

func (s Segment) String() string {
	if s.isParam {
		return "<" + s.text + ">"
	}
	return s.text
}
