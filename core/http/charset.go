package http

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	alphaNum   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	unreserved = alphaNum + "-_.~"
	subDelims  = "!$&'()*+,;="
	genDelims  = ":/?#[]@"

	// segmentRawChars may appear in a path segment before percent-decoding.
	segmentRawChars = unreserved + "%"
	// segmentChars may appear in a path segment after percent-decoding.
	segmentChars = unreserved + subDelims

	queryNameChars     = unreserved
	queryRawValueChars = unreserved + "%+"
	queryValueChars    = unreserved + subDelims + genDelims + " \"%<>\\^`{|}"

	headerValueChars = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

	// cookieValueChars is the RFC 6265 cookie-octet set.
	cookieValueChars = "!#$%&'()*+-./0123456789:<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_`abcdefghijklmnopqrstuvwxyz{|}~"
)

// onlyChars reports whether every byte of s is in allowed. Multi-byte runes never are.
func onlyChars(s, allowed string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 || strings.IndexByte(allowed, s[i]) == -1 {
			return false
		}
	}
	return true
}

// decodeSegment percent-decodes a path segment. '+' is kept as is.
func decodeSegment(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDecode, s)
	}
	return decoded, nil
}

// decodeQueryValue percent-decodes a query value and turns '+' into a space.
func decodeQueryValue(s string) (string, error) {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDecode, s)
	}
	return decoded, nil
}
