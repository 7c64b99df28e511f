package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCookie(t *testing.T) {
	c, err := ParseCookie("id=1")
	require.NoError(t, err)
	assert.Equal(t, NewCookie("id", "1"), c)

	c, err = ParseCookie(`name="John"`)
	require.NoError(t, err)
	assert.Equal(t, `"John"`, c.Value())
}

func TestParseCookieErrors(t *testing.T) {
	cases := []struct {
		pair string
		want error
	}{
		{"", ErrInvalidCookie},
		{"id", ErrInvalidCookie},
		{"=", ErrEmptyCookie},
		{"=John", ErrEmptyCookie},
		{"name=", ErrEmptyCookie},
		{"name=Jo,hn", ErrInvalidCookieCharacters},
		{"name=Jo hn", ErrInvalidCookieCharacters},
		{"na@me=John", ErrInvalidCookieCharacters},
		{`name="John`, ErrInvalidCookieCharacters},
		{`name=John"`, ErrInvalidCookieCharacters},
		{`name="Joh"n`, ErrInvalidCookieCharacters},
		{`name="Jo;hn"`, ErrInvalidCookieCharacters},
	}
	for _, c := range cases {
		_, err := ParseCookie(c.pair)
		require.ErrorIs(t, err, c.want, c.pair)
	}
}

func TestCookieBuilder(t *testing.T) {
	expires := time.Date(2023, time.December, 18, 6, 11, 0, 0, time.UTC)
	base := NewCookie("id", "1")
	cookie := base.
		WithExpires(expires).
		WithMaxAge(86400).
		WithDomain("localhost").
		WithPath("/").
		WithSecure(true).
		WithHTTPOnly(true).
		WithSameSite(SameSiteStrict)

	assert.Equal(t, "id", cookie.Name())
	assert.Equal(t, "1", cookie.Value())
	got, ok := cookie.Expires()
	assert.True(t, ok)
	assert.True(t, got.Equal(expires))
	age, ok := cookie.MaxAge()
	assert.True(t, ok)
	assert.Equal(t, uint64(86400), age)
	assert.Equal(t, "localhost", cookie.Domain())
	assert.Equal(t, "/", cookie.Path())
	assert.True(t, cookie.Secure())
	assert.True(t, cookie.HTTPOnly())
	assert.Equal(t, SameSiteStrict, cookie.SameSite())

	// base is untouched
	_, ok = base.MaxAge()
	assert.False(t, ok)
	assert.False(t, base.Secure())

	assert.Equal(t,
		"Set-Cookie: id=1; Expires=Mon, 18 Dec 2023 06:11:00 GMT; Max-Age=86400; Domain=localhost; Path=/; Secure; HttpOnly; SameSite=Strict\r\n",
		string(cookie.AppendTo(nil)))
}

func TestCookieMinimalLine(t *testing.T) {
	assert.Equal(t, "Set-Cookie: session=abc", NewCookie("session", "abc").String())
	assert.Equal(t, "Set-Cookie: session=abc; Max-Age=0",
		NewCookie("session", "abc").WithMaxAge(0).String())
}

func TestParseCookies(t *testing.T) {
	c, err := ParseCookies("id=1; name=John")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	id, ok := c.Get("id")
	require.True(t, ok)
	assert.Equal(t, "1", id.Value())
	name, ok := c.Get("name")
	require.True(t, ok)
	assert.Equal(t, "John", name.Value())
}

func TestParseCookiesErrors(t *testing.T) {
	cases := []struct {
		header string
		want   error
	}{
		{"", ErrInvalidCookie},
		{";id=1", ErrInvalidCookieCharacters},
		{"id=1;", ErrInvalidCookieCharacters},
		{"id=1;; name=John", ErrInvalidCookieCharacters},
		{"id=1;name=John", ErrInvalidCookieCharacters},
		{"id=", ErrEmptyCookie},
		{"=1", ErrEmptyCookie},
		{"id=1; name=", ErrEmptyCookie},
	}
	for _, c := range cases {
		_, err := ParseCookies(c.header)
		require.ErrorIs(t, err, c.want, c.header)
	}
}

func TestCookiesSortedSerialization(t *testing.T) {
	c := NewCookies()
	c.Set(NewCookie("theme", "dark").WithPath("/"))
	c.Set(NewCookie("id", "1"))
	assert.Equal(t,
		"Set-Cookie: id=1\r\nSet-Cookie: theme=dark; Path=/\r\n",
		string(c.AppendTo(nil)))
}
