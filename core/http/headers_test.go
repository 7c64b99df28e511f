package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadersSetFromLine(t *testing.T) {
	cases := []struct {
		line, name, want string
	}{
		{"Host: localhost:80", "Host", "localhost:80"},
		{"Host:", "host", ""},
		{"Host:   local  host:80  ", "HOST", "local  host:80"},
		{"User-Agent: test-agent/1.0", "user-agent", "test-agent/1.0"},
		{"Accept: */*", "Accept", "*/*"},
		{"X-Quote: say \"hi\"", "x-quote", "say \"hi\""},
	}
	for _, c := range cases {
		h := NewHeaders()
		require.NoError(t, h.SetFromLine(c.line), c.line)
		v, ok := h.Get(c.name)
		assert.True(t, ok, c.line)
		assert.Equal(t, c.want, v, c.line)
	}
}

func TestHeadersSetFromLineInvalidHeader(t *testing.T) {
	for _, line := range []string{"Connection keep-alive", ": localhost:80", "", ":"} {
		h := NewHeaders()
		err := h.SetFromLine(line)
		require.ErrorIs(t, err, ErrInvalidHeader, line)
		assert.NotErrorIs(t, err, ErrInvalidHeaderCharacters, line)
		assert.Equal(t, 0, h.Len())
	}
}

func TestHeadersSetFromLineInvalidCharacters(t *testing.T) {
	for _, line := range []string{
		"Ho@st: localhost:80",
		"Host: localh€ost:80",
		"Host : localhost",
		" Host: localhost",
		"H©st: localhost:42069",
		"Host: local\thost",
	} {
		h := NewHeaders()
		err := h.SetFromLine(line)
		require.ErrorIs(t, err, ErrInvalidHeaderCharacters, line)
		assert.NotErrorIs(t, err, ErrInvalidHeader, line)
		assert.Equal(t, 0, h.Len())
	}
}

func TestHeadersLastValueWins(t *testing.T) {
	h := NewHeaders()
	require.NoError(t, h.SetFromLine("Accept: text/html"))
	require.NoError(t, h.SetFromLine("accept: application/json"))
	v, _ := h.Get("ACCEPT")
	assert.Equal(t, "application/json", v)
	assert.Equal(t, 1, h.Len())
}

func TestHeadersBytes(t *testing.T) {
	h := NewHeaders()
	h.Set("Host", "localhost:80")
	h.Set("connection", "keep-alive")
	h.Set("X-Request-ID", "7")
	assert.Equal(t,
		"Connection: keep-alive\r\nHost: localhost:80\r\nX-Request-Id: 7\r\n",
		string(h.Bytes()))

	h.Del("HOST")
	_, ok := h.Get("host")
	assert.False(t, ok)
}
