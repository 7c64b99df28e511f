package http

import "errors"

// Framing errors: the byte stream does not follow the HTTP/1.x message layout.
var (
	ErrMissingRequestLineCRLF = errors.New("request line is not terminated by CRLF")
	ErrMissingHeaderCRLF      = errors.New("header line is not terminated by CRLF")
	ErrInvalidRequestLine     = errors.New("invalid request line")
	ErrRead                   = errors.New("error reading request")
	ErrBodyRead               = errors.New("error reading request body")
)

// Lexical errors: a token was framed correctly but its content is not acceptable.
var (
	ErrInvalidMethod               = errors.New("invalid method")
	ErrInvalidVersion              = errors.New("invalid HTTP version")
	ErrInvalidStatusCode           = errors.New("invalid status code")
	ErrInvalidPathSlashes          = errors.New("invalid path slashes")
	ErrEmptyPathSegment            = errors.New("empty path segment")
	ErrInvalidPathSegment          = errors.New("invalid path segment")
	ErrInvalidPathCharacters       = errors.New("invalid path characters")
	ErrDuplicateParam              = errors.New("duplicate path parameter")
	ErrDecode                      = errors.New("invalid percent-encoding")
	ErrInvalidQueryParam           = errors.New("invalid query parameter")
	ErrEmptyQueryParam             = errors.New("empty query parameter")
	ErrInvalidQueryParamCharacters = errors.New("invalid query parameter characters")
	ErrInvalidHeader               = errors.New("invalid header")
	ErrInvalidHeaderCharacters     = errors.New("invalid header characters")
	ErrInvalidCookie               = errors.New("invalid cookie")
	ErrEmptyCookie                 = errors.New("empty cookie")
	ErrInvalidCookieCharacters     = errors.New("invalid cookie characters")
)

// ErrInvalidBodyEncoding is reported when the body is read as text but is not UTF-8.
var ErrInvalidBodyEncoding = errors.New("request body is not valid UTF-8")

var framingErrors = []error{
	ErrMissingRequestLineCRLF,
	ErrMissingHeaderCRLF,
	ErrInvalidRequestLine,
	ErrRead,
	ErrBodyRead,
}

var lexicalErrors = []error{
	ErrInvalidMethod,
	ErrInvalidVersion,
	ErrInvalidStatusCode,
	ErrInvalidPathSlashes,
	ErrEmptyPathSegment,
	ErrInvalidPathSegment,
	ErrInvalidPathCharacters,
	ErrDuplicateParam,
	ErrDecode,
	ErrInvalidQueryParam,
	ErrEmptyQueryParam,
	ErrInvalidQueryParamCharacters,
	ErrInvalidHeader,
	ErrInvalidHeaderCharacters,
	ErrInvalidCookie,
	ErrEmptyCookie,
	ErrInvalidCookieCharacters,
}

// IsFraming reports whether err comes from message framing or stream I/O.
func IsFraming(err error) bool {
	return isOneOf(err, framingErrors)
}

// IsLexical reports whether err comes from validating a request token.
func IsLexical(err error) bool {
	return isOneOf(err, lexicalErrors)
}

func isOneOf(err error, targets []error) bool {
	if err == nil {
		return false
	}
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
