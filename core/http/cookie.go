package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

// CookieTimeFormat is the IMF-fixdate layout used for the Expires attribute.
const CookieTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// SameSite is the value of the SameSite cookie attribute.
type SameSite string

const (
	SameSiteStrict SameSite = "Strict"
	SameSiteLax    SameSite = "Lax"
	SameSiteNone   SameSite = "None"
)

// Cookie is an immutable cookie. The With* methods return an updated copy.
type Cookie struct {
	name      string
	value     string
	expires   time.Time
	maxAge    uint64
	hasMaxAge bool
	domain    string
	path      string
	secure    bool
	httpOnly  bool
	sameSite  SameSite
}

func NewCookie(name, value string) Cookie {
	return Cookie{name: name, value: value}
}

// ParseCookie parses a single "name=value" pair. A double-quoted value is
// checked on its inner content and stored with the quotes.
func ParseCookie(pair string) (Cookie, error) {
	name, value, ok := strings.Cut(pair, "=")
	if !ok {
		return Cookie{}, fmt.Errorf("%w: %q", ErrInvalidCookie, pair)
	}
	if name == "" || value == "" {
		return Cookie{}, fmt.Errorf("%w: %q", ErrEmptyCookie, pair)
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return Cookie{}, fmt.Errorf("%w: %q", ErrInvalidCookieCharacters, pair)
	}

	inner := value
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		inner = value[1 : len(value)-1]
	}
	if !onlyChars(inner, cookieValueChars) {
		return Cookie{}, fmt.Errorf("%w: %q", ErrInvalidCookieCharacters, pair)
	}

	return NewCookie(name, value), nil
}

func (c Cookie) Name() string  { return c.name }
func (c Cookie) Value() string { return c.value }

// Expires returns the expiry time; ok is false when unset.
func (c Cookie) Expires() (t time.Time, ok bool) { return c.expires, !c.expires.IsZero() }

// MaxAge returns the Max-Age in seconds; ok is false when unset.
func (c Cookie) MaxAge() (seconds uint64, ok bool) { return c.maxAge, c.hasMaxAge }

func (c Cookie) Domain() string     { return c.domain }
func (c Cookie) Path() string       { return c.path }
func (c Cookie) Secure() bool       { return c.secure }
func (c Cookie) HTTPOnly() bool     { return c.httpOnly }
func (c Cookie) SameSite() SameSite { return c.sameSite }

func (c Cookie) WithExpires(t time.Time) Cookie {
	c.expires = t
	return c
}

func (c Cookie) WithMaxAge(seconds uint64) Cookie {
	c.maxAge = seconds
	c.hasMaxAge = true
	return c
}

func (c Cookie) WithDomain(domain string) Cookie {
	c.domain = domain
	return c
}

func (c Cookie) WithPath(path string) Cookie {
	c.path = path
	return c
}

func (c Cookie) WithSecure(secure bool) Cookie {
	c.secure = secure
	return c
}

func (c Cookie) WithHTTPOnly(httpOnly bool) Cookie {
	c.httpOnly = httpOnly
	return c
}

func (c Cookie) WithSameSite(s SameSite) Cookie {
	c.sameSite = s
	return c
}

// AppendTo writes a complete "Set-Cookie: ...\r\n" line. Attributes are only
// written when set.
func (c Cookie) AppendTo(b []byte) []byte {
	b = append(b, "Set-Cookie: "...)
	b = append(b, c.name...)
	b = append(b, '=')
	b = append(b, c.value...)
	if !c.expires.IsZero() {
		b = append(b, "; Expires="...)
		b = c.expires.UTC().AppendFormat(b, CookieTimeFormat)
	}
	if c.hasMaxAge {
		b = append(b, "; Max-Age="...)
		b = strconv.AppendUint(b, c.maxAge, 10)
	}
	if c.domain != "" {
		b = append(b, "; Domain="...)
		b = append(b, c.domain...)
	}
	if c.path != "" {
		b = append(b, "; Path="...)
		b = append(b, c.path...)
	}
	if c.secure {
		b = append(b, "; Secure"...)
	}
	if c.httpOnly {
		b = append(b, "; HttpOnly"...)
	}
	if c.sameSite != "" {
		b = append(b, "; SameSite="...)
		b = append(b, c.sameSite...)
	}
	return append(b, crlf...)
}

func (c Cookie) String() string {
	return strings.TrimSuffix(string(c.AppendTo(nil)), crlf)
}
