package http

import (
	"fmt"
	"strings"
)

// Path is a parsed request target or route pattern. The fragment is dropped,
// the query string is kept separately and never takes part in matching.
type Path struct {
	original    string
	segments    []Segment
	queryParams QueryParams
}

// ParsePath parses raw, which must start with exactly one '/'.
// "/" is the root and has no segments.
func ParsePath(raw string) (Path, error) {
	p := Path{original: raw, queryParams: NewQueryParams()}

	rest := raw
	if i := strings.IndexByte(rest, '#'); i != -1 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i != -1 {
		qp, err := ParseQueryParams(rest[i+1:])
		if err != nil {
			return Path{}, err
		}
		p.queryParams = qp
		rest = rest[:i]
	}

	if !strings.HasPrefix(rest, "/") {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPathSlashes, raw)
	}
	if rest == "/" {
		return p, nil
	}
	if strings.HasSuffix(rest, "/") {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPathSlashes, raw)
	}

	parts := strings.Split(rest[1:], "/")
	p.segments = make([]Segment, 0, len(parts))
	names := make(map[string]struct{})
	for _, part := range parts {
		if part == "" {
			return Path{}, fmt.Errorf("%w: %q", ErrEmptyPathSegment, raw)
		}
		seg, err := ParseSegment(part)
		if err != nil {
			return Path{}, err
		}
		if seg.isParam {
			if _, dup := names[seg.text]; dup {
				return Path{}, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, seg.text, raw)
			}
			names[seg.text] = struct{}{}
		}
		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// Matches compares two paths segment by segment. A literal matches an equal
// literal; a parameter on either side binds the other side's literal under its
// name. Two parameters at the same position are ambiguous and never match.
func (p Path) Matches(other Path) (bool, Params) {
	if len(p.segments) != len(other.segments) {
		return false, Params{}
	}

	params := NewParams()
	for i, a := range p.segments {
		b := other.segments[i]
		switch {
		case a.isParam && b.isParam:
			return false, Params{}
		case a.isParam:
			params.Set(a.text, b.text)
		case b.isParam:
			params.Set(b.text, a.text)
		case a.text != b.text:
			return false, Params{}
		}
	}

	return true, params
}

// SameShape reports whether both paths accept the same concrete paths: equal
// literals at the same positions and parameters at the same positions,
// whatever their names.
func (p Path) SameShape(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, a := range p.segments {
		b := other.segments[i]
		if a.isParam != b.isParam || !a.isParam && a.text != b.text {
			return false
		}
	}
	return true
}

// String returns the path exactly as it was parsed.
func (p Path) String() string {
	return p.original
}

// Segments returns a copy of the parsed segments.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// QueryParam returns the decoded value of a query-string parameter.
func (p Path) QueryParam(name string) (string, bool) {
	return p.queryParams.Get(name)
}

// QueryParams returns the parsed query string.
func (p Path) QueryParams() QueryParams {
	return p.queryParams
}
