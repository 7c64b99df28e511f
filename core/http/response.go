package http

import (
	"io"
	"strconv"

	"github.com/searchktools/serwer/core/codec"
)

// Response is built in place by a handler and serialized once.
type Response struct {
	version Version
	status  StatusCode
	headers Headers
	cookies Cookies
	body    []byte
}

// NewResponse returns an empty 200 response for the given protocol version.
func NewResponse(version Version) *Response {
	return &Response{
		version: version,
		status:  StatusOK,
		headers: NewHeaders(),
		cookies: NewCookies(),
	}
}

func (r *Response) SetStatus(status StatusCode) *Response {
	r.status = status
	return r
}

func (r *Response) SetHeader(name, value string) *Response {
	r.headers.Set(name, value)
	return r
}

func (r *Response) SetCookie(c Cookie) *Response {
	r.cookies.Set(c)
	return r
}

// SetBody sets a text body and its Content-Length.
func (r *Response) SetBody(body string) *Response {
	return r.SetBodyBytes([]byte(body))
}

// SetBodyBytes sets a raw body and its Content-Length.
func (r *Response) SetBodyBytes(body []byte) *Response {
	r.body = body
	r.headers.Set(HeaderContentLength, strconv.Itoa(len(body)))
	return r
}

// Set is shorthand for SetStatus followed by SetBody.
func (r *Response) Set(status StatusCode, body string) *Response {
	return r.SetStatus(status).SetBody(body)
}

// Encode serializes v with c as the body and sets Content-Type.
func (r *Response) Encode(c codec.Codec, v any) error {
	data, err := c.Encode(v)
	if err != nil {
		return err
	}
	r.SetHeader(HeaderContentType, c.ContentType())
	r.SetBodyBytes(data)
	return nil
}

func (r *Response) Version() Version   { return r.version }
func (r *Response) Status() StatusCode { return r.status }
func (r *Response) Headers() Headers   { return r.headers }
func (r *Response) Cookies() Cookies   { return r.cookies }
func (r *Response) Body() []byte       { return r.body }
func (r *Response) Header(name string) (string, bool) {
	return r.headers.Get(name)
}

// AppendTo serializes the status line, headers, Set-Cookie lines, the blank
// line and the body.
func (r *Response) AppendTo(b []byte) []byte {
	b = append(b, r.version.String()...)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(r.status), 10)
	b = append(b, ' ')
	b = append(b, r.status.Text()...)
	b = append(b, crlf...)
	b = r.headers.AppendTo(b)
	b = r.cookies.AppendTo(b)
	b = append(b, crlf...)
	return append(b, r.body...)
}

// Bytes returns the serialized response.
func (r *Response) Bytes() []byte {
	return r.AppendTo(make([]byte, 0, 128+len(r.body)))
}

// WriteTo writes the serialized response to w.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}
