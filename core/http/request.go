package http

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/searchktools/serwer/core/codec"
)

// Request is one parsed HTTP request. Only the bound params change after
// parsing, when the request is matched against a route.
type Request struct {
	method  Method
	path    Path
	version Version
	headers Headers
	cookies Cookies
	body    []byte
	params  Params
}

// RequestFromReader parses a request from an unbuffered stream.
func RequestFromReader(reader io.Reader) (*Request, error) {
	return ReadRequest(bufio.NewReader(reader))
}

// ReadRequest parses the request line, the headers and exactly Content-Length
// bytes of body. A missing or malformed Content-Length means no body.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	line, err := readLine(r, ErrMissingRequestLineCRLF)
	if err != nil {
		return nil, err
	}
	rl, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	req := &Request{
		method:  rl.method,
		path:    rl.target,
		version: rl.version,
		headers: NewHeaders(),
		cookies: NewCookies(),
		params:  NewParams(),
	}
	if rl.simple {
		return req, nil
	}

	if req.headers, err = readHeaders(r); err != nil {
		return nil, err
	}

	if raw, ok := req.headers.Get(HeaderCookie); ok {
		if req.cookies, err = ParseCookies(raw); err != nil {
			return nil, err
		}
	}

	// The body grows with the bytes that actually arrive, never with the
	// declared length alone.
	if n := contentLength(req.headers); n > 0 {
		var body bytes.Buffer
		if _, err := io.CopyN(&body, r, int64(n)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBodyRead, err)
		}
		req.body = body.Bytes()
	}

	return req, nil
}

func contentLength(h Headers) uint64 {
	raw, ok := h.Get(HeaderContentLength)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		return 0
	}
	return n
}

func (r *Request) Method() Method   { return r.method }
func (r *Request) Path() Path       { return r.path }
func (r *Request) Version() Version { return r.version }
func (r *Request) Headers() Headers { return r.headers }
func (r *Request) Cookies() Cookies { return r.cookies }
func (r *Request) Params() Params   { return r.params }

// Body returns the raw body bytes.
func (r *Request) Body() []byte { return r.body }

// BodyString returns the body as text, failing if it is not valid UTF-8.
func (r *Request) BodyString() (string, error) {
	if !utf8.Valid(r.body) {
		return "", ErrInvalidBodyEncoding
	}
	return string(r.body), nil
}

func (r *Request) Header(name string) (string, bool) {
	return r.headers.Get(name)
}

func (r *Request) Cookie(name string) (Cookie, bool) {
	return r.cookies.Get(name)
}

// Param returns a path parameter bound by route matching.
func (r *Request) Param(name string) (string, bool) {
	return r.params.Get(name)
}

func (r *Request) QueryParam(name string) (string, bool) {
	return r.path.QueryParam(name)
}

// BindParams attaches the bindings produced by matching the request path.
func (r *Request) BindParams(p Params) {
	if p.values == nil {
		p = NewParams()
	}
	r.params = p
}

// Decode decodes the body with c into v.
func (r *Request) Decode(c codec.Codec, v any) error {
	return c.Decode(r.body, v)
}
