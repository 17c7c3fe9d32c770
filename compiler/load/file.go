package load

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/vektah/gqlparser/v2/ast"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a model file.
type Format string

// Supported model formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatSDL  Format = "graphql"
)

// FormatOf returns the model format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".graphql", ".graphqls", ".gql":
		return FormatSDL, nil
	default:
		return "", fmt.Errorf("unsupported model file %q", path)
	}
}

// ReadFile loads a model file, picking the front end by extension.
func ReadFile(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSDL {
		return ReadSDLFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.setPositions(path)
	return s, nil
}

// Read decodes a model from r in the given format.
func Read(r io.Reader, format Format) (*Schema, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s := &Schema{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(buf))
		dec.KnownFields(true)
		if err := dec.Decode(s); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatSDL:
		return ParseSDL(&ast.Source{Name: "<input>", Input: string(buf)})
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return s, nil
}

// MarshalIndent encodes the schema as indented JSON.
func (s *Schema) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(struct {
		Types []*Type `json:"types"`
	}{Types: s.Types}, "", "  ")
}

func (s *Schema) setPositions(path string) {
	for i, t := range s.Types {
		if t == nil {
			continue
		}
		t.Pos = fmt.Sprintf("%s:types[%d]", path, i)
		for j, f := range t.Fields {
			if f != nil {
				f.Pos = fmt.Sprintf("%s:types[%d].fields[%d]", path, i, j)
			}
		}
	}
}
