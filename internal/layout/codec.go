package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions without a codec.
var ErrUnsupportedFormat = errors.New("unsupported layout format")

// Codec converts a Document to and from bytes.
type Codec interface {
	Encode(doc Document) ([]byte, error)
	Decode(src []byte, filename string) (Document, error)
}

// CodecFor picks the codec matching the extension of path.
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return HCLCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Save writes doc to path in the format chosen by its extension.
func Save(path string, doc Document) error {
	codec, err := CodecFor(path)
	if err != nil {
		return err
	}
	data, err := codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing layout: %w", err)
	}
	return nil
}

// Load reads a layout document from path.
func Load(path string) (Document, error) {
	codec, err := CodecFor(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading layout: %w", err)
	}
	return codec.Decode(data, path)
}

// HCLCodec stores a layout as `node "<id>" { display_position { x = .. y = .. } }` blocks.
type HCLCodec struct{}

type hclDocument struct {
	Nodes []*hclNode `hcl:"node,block"`
}

type hclNode struct {
	ID       string      `hcl:"id,label"`
	Position hclPosition `hcl:"display_position,block"`
}

type hclPosition struct {
	X int `hcl:"x"`
	Y int `hcl:"y"`
}

func (HCLCodec) Encode(doc Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, n := range doc.Nodes {
		if i > 0 {
			body.AppendNewline()
		}
		nodeBody := body.AppendNewBlock("node", []string{n.ID}).Body()
		pos := nodeBody.AppendNewBlock("display_position", nil).Body()
		pos.SetAttributeValue("x", cty.NumberIntVal(int64(n.DisplayPosition.X)))
		pos.SetAttributeValue("y", cty.NumberIntVal(int64(n.DisplayPosition.Y)))
	}
	return f.Bytes(), nil
}

func (HCLCodec) Decode(src []byte, filename string) (Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Document{}, fmt.Errorf("failed to parse layout %s: %w", filename, diags)
	}
	var raw hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Document{}, fmt.Errorf("failed to decode layout %s: %w", filename, diags)
	}
	doc := Document{}
	for _, n := range raw.Nodes {
		doc.Nodes = append(doc.Nodes, Node{
			ID:              n.ID,
			DisplayPosition: Position{X: n.Position.X, Y: n.Position.Y},
		})
	}
	if err := doc.validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// YAMLCodec stores a layout as a YAML `nodes` list.
type YAMLCodec struct{}

func (YAMLCodec) Encode(doc Document) ([]byte, error) {
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

func (YAMLCodec) Decode(src []byte, filename string) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode layout %s: %w", filename, err)
	}
	if err := doc.validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}
