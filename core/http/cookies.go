package http

import (
	"slices"
	"strings"
)

// Cookies maps cookie names to cookies.
type Cookies struct {
	values map[string]Cookie
}

func NewCookies() Cookies {
	return Cookies{values: make(map[string]Cookie)}
}

// ParseCookies parses the value of a Cookie request header, where pairs are
// separated by "; ".
func ParseCookies(header string) (Cookies, error) {
	c := NewCookies()
	for _, pair := range strings.Split(header, "; ") {
		cookie, err := ParseCookie(pair)
		if err != nil {
			return Cookies{}, err
		}
		c.values[cookie.name] = cookie
	}
	return c, nil
}

func (c Cookies) Get(name string) (Cookie, bool) {
	cookie, ok := c.values[name]
	return cookie, ok
}

// Set stores cookie under its own name.
func (c Cookies) Set(cookie Cookie) {
	c.values[cookie.name] = cookie
}

func (c Cookies) Len() int {
	return len(c.values)
}

// AppendTo writes one Set-Cookie line per cookie, sorted by name.
func (c Cookies) AppendTo(b []byte) []byte {
	names := make([]string, 0, len(c.values))
	for name := range c.values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		b = c.values[name].AppendTo(b)
	}
	return b
}
