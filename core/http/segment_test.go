package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSegmentLiteral(t *testing.T) {
	for _, raw := range []string{"user", "42", "a-b_c.d~e", "UPPER", ""} {
		seg, err := ParseSegment(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, seg.Text())
		assert.False(t, seg.IsParam())
	}
}

func TestParseSegmentParam(t *testing.T) {
	for _, name := range []string{"id", "user_id", "x"} {
		seg, err := ParseSegment("<" + name + ">")
		require.NoError(t, err, name)
		assert.Equal(t, name, seg.Text())
		assert.True(t, seg.IsParam())
		assert.Equal(t, "<"+name+">", seg.String())
	}
}

func TestParseSegmentDecoding(t *testing.T) {
	cases := map[string]string{
		"caf%21":    "caf!",
		"%7Euser":   "~user",
		"a%2Bb":     "a+b",
		"semi%3Bco": "semi;co",
	}
	for raw, want := range cases {
		seg, err := ParseSegment(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, seg.Text())
	}
}

func TestParseSegmentErrors(t *testing.T) {
	cases := []struct {
		raw  string
		want error
	}{
		{"<foo", ErrInvalidPathSegment},
		{"foo>", ErrInvalidPathSegment},
		{"<a>b", ErrInvalidPathSegment},
		{"<<user>", ErrInvalidPathSegment},
		{"<>", ErrEmptyPathSegment},
		{"us`er", ErrInvalidPathCharacters},
		{"a+b", ErrInvalidPathCharacters},
		{"%20", ErrInvalidPathCharacters},
		{"%2", ErrDecode},
		{"%zz", ErrDecode},
		{"zaż", ErrInvalidPathCharacters},
	}
	for _, c := range cases {
		_, err := ParseSegment(c.raw)
		require.ErrorIs(t, err, c.want, c.raw)
	}
}

func TestSegmentEquality(t *testing.T) {
	a, _ := ParseSegment("id")
	b, _ := ParseSegment("<id>")
	c, _ := ParseSegment("%69d")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}
