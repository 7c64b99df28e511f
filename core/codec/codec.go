package codec

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrUnsupportedCodec = errors.New("unsupported codec")
)

// Codec encodes and decodes message bodies.
type Codec interface {
	// Encode encodes a value to bytes
	Encode(v any) ([]byte, error)

	// Decode decodes bytes to a value
	Decode(data []byte, v any) error

	// ContentType returns the media type written to Content-Type
	ContentType() string

	// Name returns the codec name
	Name() string
}

var (
	JSON     Codec = &JSONCodec{}
	Protobuf Codec = &ProtobufCodec{}
)

// ForContentType picks a codec from a Content-Type header value.
func ForContentType(contentType string) (Codec, error) {
	for _, c := range []Codec{JSON, Protobuf} {
		if strings.HasPrefix(contentType, c.ContentType()) {
			return c, nil
		}
	}
	return nil, ErrUnsupportedCodec
}

// JSONCodec implements JSON encoding/decoding
type JSONCodec struct{}

func (c *JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (c *JSONCodec) ContentType() string {
	return "application/json"
}

func (c *JSONCodec) Name() string {
	return "json"
}
