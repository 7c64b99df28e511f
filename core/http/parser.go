package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readLine reads one CRLF-terminated line and returns it without the CRLF.
// A line cut short by EOF, or ended by a bare LF, fails with missing.
func readLine(r *bufio.Reader, missing error) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %q", missing, line)
		}
		return "", fmt.Errorf("%w: %w", ErrRead, err)
	}
	if !strings.HasSuffix(line, crlf) {
		return "", fmt.Errorf("%w: %q", missing, line)
	}
	return line[:len(line)-len(crlf)], nil
}

type requestLine struct {
	method  Method
	target  Path
	version Version
	// simple is set for a version-less HTTP/0.9 request, which has no header section.
	simple bool
}

// parseRequestLine splits "METHOD SP TARGET [SP VERSION]" on single spaces.
func parseRequestLine(line string) (requestLine, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 2 && len(parts) != 3 {
		return requestLine{}, fmt.Errorf("%w: %q", ErrInvalidRequestLine, line)
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return requestLine{}, err
	}
	target, err := ParsePath(parts[1])
	if err != nil {
		return requestLine{}, err
	}

	if len(parts) == 2 {
		return requestLine{method: method, target: target, version: HTTP09, simple: true}, nil
	}

	version, err := ParseVersion(parts[2])
	if err != nil {
		return requestLine{}, err
	}
	return requestLine{method: method, target: target, version: version}, nil
}

// readHeaders consumes header lines up to and including the empty line.
func readHeaders(r *bufio.Reader) (Headers, error) {
	h := NewHeaders()
	for {
		line, err := readLine(r, ErrMissingHeaderCRLF)
		if err != nil {
			return Headers{}, err
		}
		if line == "" {
			return h, nil
		}
		if err := h.SetFromLine(line); err != nil {
			return Headers{}, err
		}
	}
}
