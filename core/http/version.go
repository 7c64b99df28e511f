package http

import "fmt"

// Version is an HTTP protocol version token. Only the tokens are recognized;
// every version is served with HTTP/1.x framing.
type Version uint8

const (
	HTTP09 Version = iota + 1
	HTTP10
	HTTP11
	HTTP2
	HTTP3
)

var versionNames = map[Version]string{
	HTTP09: "HTTP/0.9",
	HTTP10: "HTTP/1.0",
	HTTP11: "HTTP/1.1",
	HTTP2:  "HTTP/2",
	HTTP3:  "HTTP/3",
}

// ParseVersion converts a request-line token such as "HTTP/1.1" into a Version.
func ParseVersion(s string) (Version, error) {
	for v, name := range versionNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
}

func (v Version) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}
