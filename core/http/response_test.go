package http

import (
	"bytes"
	"testing"

	"github.com/searchktools/serwer/core/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseDefaults(t *testing.T) {
	res := NewResponse(HTTP11)
	assert.Equal(t, StatusOK, res.Status())
	assert.Empty(t, res.Body())
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", string(res.Bytes()))
}

func TestResponseSetBody(t *testing.T) {
	res := NewResponse(HTTP11).SetStatus(StatusOK).SetBody("user id: 42")
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 11\r\n\r\nuser id: 42", string(res.Bytes()))

	length, ok := res.Header(HeaderContentLength)
	assert.True(t, ok)
	assert.Equal(t, "11", length)
}

func TestResponseNotFound(t *testing.T) {
	res := NewResponse(HTTP11).SetStatus(StatusNotFound)
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", string(res.Bytes()))
}

func TestResponseVersionScoped(t *testing.T) {
	res := NewResponse(HTTP10).Set(StatusAccepted, "ok")
	assert.Equal(t, "HTTP/1.0 202 Accepted\r\nContent-Length: 2\r\n\r\nok", string(res.Bytes()))
}

func TestResponseHeadersAndCookies(t *testing.T) {
	res := NewResponse(HTTP11).
		SetStatus(StatusCreated).
		SetHeader("X-Request-ID", "7").
		SetHeader(HeaderContentType, "text/plain").
		SetCookie(NewCookie("b", "2").WithPath("/")).
		SetCookie(NewCookie("a", "1")).
		SetBodyBytes([]byte("ok"))

	want := "HTTP/1.1 201 Created\r\n" +
		"Content-Length: 2\r\n" +
		"Content-Type: text/plain\r\n" +
		"X-Request-Id: 7\r\n" +
		"Set-Cookie: a=1\r\n" +
		"Set-Cookie: b=2; Path=/\r\n" +
		"\r\n" +
		"ok"
	assert.Equal(t, want, string(res.Bytes()))
}

func TestResponseEncode(t *testing.T) {
	res := NewResponse(HTTP11)
	require.NoError(t, res.Encode(codec.JSON, map[string]string{"status": "success"}))

	ct, _ := res.Header(HeaderContentType)
	assert.Equal(t, "application/json", ct)
	assert.JSONEq(t, `{"status":"success"}`, string(res.Body()))
	length, _ := res.Header(HeaderContentLength)
	assert.Equal(t, "20", length)

	require.Error(t, res.Encode(codec.Protobuf, "not a message"))
}

func TestResponseWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := NewResponse(HTTP11).Set(StatusTeapot, "short and stout").WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "HTTP/1.1 418 I'm a teapot\r\nContent-Length: 15\r\n\r\nshort and stout", buf.String())
}
