// Package emit assembles schema definitions into a single GraphQL document.
//
// Definitions are interned by name: adding a definition that is already
// present is a no-op when both print identically and an error otherwise.
// The document is printed in byte order of definition names, so identical
// input always yields identical output.
package emit

import (
	"bytes"
	"io"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/augment/compiler/gen"
)

// Document is a set of named schema definitions.
type Document struct {
	header string
	indent string
	defs   map[string]*ast.Definition
	texts  map[string]string
}

// NewDocument returns an empty document printed with the given config.
func NewDocument(c *gen.Config) *Document {
	d := &Document{
		indent: c.IndentOrDefault(),
		defs:   make(map[string]*ast.Definition),
		texts:  make(map[string]string),
	}
	if c != nil {
		d.header = c.Header
	}
	return d
}

// Add interns the given definitions. Nil definitions are skipped.
func (d *Document) Add(defs ...*ast.Definition) error {
	for _, def := range defs {
		if def == nil {
			continue
		}
		if def.Name == "" {
			return gen.NewGenerationError("emit", "", "definition has no name", nil)
		}
		text := d.format(def)
		if prev, ok := d.texts[def.Name]; ok {
			if prev != text {
				return gen.NewGenerationError("emit", def.Name, "conflicting definitions share the name", nil)
			}
			continue
		}
		d.defs[def.Name] = def
		d.texts[def.Name] = text
	}
	return nil
}

// Lookup returns the definition with the given name, or nil.
func (d *Document) Lookup(name string) *ast.Definition {
	return d.defs[name]
}

// Len returns the number of definitions.
func (d *Document) Len() int {
	return len(d.defs)
}

// Names returns the definition names in output order.
func (d *Document) Names() []string {
	names := make([]string, 0, len(d.defs))
	for name := range d.defs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Definitions returns the definitions in output order.
func (d *Document) Definitions() []*ast.Definition {
	names := d.Names()
	defs := make([]*ast.Definition, len(names))
	for i, name := range names {
		defs[i] = d.defs[name]
	}
	return defs
}

// SchemaDocument returns the definitions as a gqlparser schema document.
func (d *Document) SchemaDocument() *ast.SchemaDocument {
	return &ast.SchemaDocument{Definitions: d.Definitions()}
}

// WriteTo prints the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	if d.header != "" {
		for _, line := range strings.Split(d.header, "\n") {
			b.WriteString("# ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	for i, name := range d.Names() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(d.texts[name])
	}
	return b.WriteTo(w)
}

// String returns the printed document.
func (d *Document) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

// Text returns the printed form of a single definition.
func (d *Document) Text(name string) string {
	return d.texts[name]
}

func (d *Document) format(def *ast.Definition) string {
	var b strings.Builder
	formatter.NewFormatter(&b, formatter.WithIndent(d.indent)).FormatSchemaDocument(&ast.SchemaDocument{
		Definitions: ast.DefinitionList{def},
	})
	return b.String()
}
