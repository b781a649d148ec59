package configstore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ouroboros-dev/ouroboros/internal/document"
)

// Codec converts between file bytes and a document.
type Codec interface {
	Name() string
	Decode(data []byte) (*document.Map, error)
	Encode(doc *document.Map) ([]byte, error)
}

// CodecFor picks the codec from the file extension.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAMLCodec{}, nil
	case ".toml":
		return TOMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s (expected .yml, .yaml or .toml)", path)
	}
}

var _ Codec = YAMLCodec{}

// YAMLCodec handles project documents such as ouroboros.yml.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Decode(data []byte) (*document.Map, error) { return document.DecodeYAML(data) }

func (YAMLCodec) Encode(doc *document.Map) ([]byte, error) { return document.EncodeYAML(doc) }

var _ Codec = TOMLCodec{}

// TOMLCodec handles pyproject.toml and the global settings file.
type TOMLCodec struct{}

func (TOMLCodec) Name() string { return "toml" }

func (TOMLCodec) Decode(data []byte) (*document.Map, error) { return document.DecodeTOML(data) }

func (TOMLCodec) Encode(doc *document.Map) ([]byte, error) { return document.EncodeTOML(doc) }
