package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/searchktools/serwer/core/http"
)

var (
	ErrNotFound     = errors.New("static file not found")
	ErrOutsideRoot  = errors.New("path escapes public directory")
	ErrNotDirectory = errors.New("public path is not a directory")
)

// Dir serves files below a public directory as the fallback for requests
// that matched no route.
type Dir struct {
	root string
}

// New checks that root exists and is a directory.
func New(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve public directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open public directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute public directory.
func (d *Dir) Root() string {
	return d.root
}

// Resolve maps the decoded segments of p to a file name under the root.
func (d *Dir) Resolve(p http.Path) (string, error) {
	segments := p.Segments()
	if len(segments) == 0 {
		return "", ErrNotFound
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, d.root)
	for _, seg := range segments {
		text := seg.Text()
		if seg.IsParam() || text == "." || text == ".." || strings.ContainsAny(text, `/\`) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
		}
		parts = append(parts, text)
	}

	name := filepath.Join(parts...)
	if rel, err := filepath.Rel(d.root, name); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	return name, nil
}

// Serve fills res with the file named by the request path. It returns
// ErrNotFound when no regular file exists there and leaves res untouched.
func (d *Dir) Serve(req *http.Request, res *http.Response) error {
	name, err := d.Resolve(req.Path())
	if err != nil {
		return err
	}

	info, err := os.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, req.Path())
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotFound, req.Path())
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	res.SetStatus(http.StatusOK).
		SetHeader(http.HeaderContentType, ContentType(name)).
		SetBodyBytes(data)
	return nil
}

// ContentType returns MIME type based on file extension
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js", ".mjs":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".xml":
		return "application/xml; charset=utf-8"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	case ".webp":
		return "image/webp"
	case ".wasm":
		return "application/wasm"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	case ".gz":
		return "application/gzip"
	default:
		return "application/octet-stream"
	}
}
