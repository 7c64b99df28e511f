package http

import "fmt"

// Method is an HTTP request method.
type Method uint8

const (
	MethodGet Method = iota + 1
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodConnect
	MethodOptions
	MethodTrace
	MethodPatch

	// MethodAll only appears in route registrations and matches every request method.
	MethodAll
)

var methodNames = map[Method]string{
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodConnect: "CONNECT",
	MethodOptions: "OPTIONS",
	MethodTrace:   "TRACE",
	MethodPatch:   "PATCH",
	MethodAll:     "ALL",
}

// ParseMethod converts a request-line token into a Method.
// ALL is not a wire method and is rejected.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if name == s && m != MethodAll {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", uint8(m))
}

// Matches reports whether a route registered for m accepts a request using other.
func (m Method) Matches(other Method) bool {
	return m == other || m == MethodAll
}
