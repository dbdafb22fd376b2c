package level

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/levelkit/pkg/errors"
)

// Codec converts documents to and from their stored text form.
type Codec interface {
	Encode(doc *Document) ([]byte, error)
	Decode(data []byte) (*Document, error)
}

// JSONCodec stores documents as indented JSON.
type JSONCodec struct {
	// Indent is the per-level indentation; empty means two spaces.
	Indent string
}

// Encode implements Codec. Output ends with a newline.
func (c JSONCodec) Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil document")
	}
	indent := c.Indent
	if indent == "" {
		indent = "  "
	}
	data, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return append(data, '\n'), nil
}

// Decode implements Codec. Any malformed or non-object input is a
// DECODE_FAILED error.
func (c JSONCodec) Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New(errors.ErrCodeDecodeFailed, "document is not a JSON object")
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode document")
	}
	return &doc, nil
}

var _ Codec = JSONCodec{}
