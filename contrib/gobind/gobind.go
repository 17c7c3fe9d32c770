// Package gobind generates Go bindings for the polymorphic parts of an
// augmented schema.
//
// Every relationship-properties union becomes a sealed Go interface whose
// members are the attribute record structs, together with a decoder keyed
// by the GraphQL __typename. Every interface with concrete implementors gets
// a string enum of the implementor names.
package gobind

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/syssam/augment/compiler/gen"
	"github.com/syssam/augment/compiler/resolve"
	"github.com/syssam/augment/compiler/synth"
)

// DefaultPackage is the package name used when none is configured.
const DefaultPackage = "schema"

// Generator renders the bindings of one compile.
type Generator struct {
	graph *gen.Graph
	sites *resolve.Result
	synth *synth.Synthesizer
	pkg   string
}

// New returns a generator for the resolved graph. An empty pkg selects
// DefaultPackage.
func New(g *gen.Graph, sites *resolve.Result, pkg string) *Generator {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Generator{graph: g, sites: sites, synth: synth.New(g, sites), pkg: pkg}
}

// File builds the bindings file.
func (g *Generator) File() *jen.File {
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by augment. DO NOT EDIT.")

	unions := g.unions()
	members := make(map[string][]string)
	for _, u := range unions {
		for _, name := range u.Types {
			members[name] = append(members[name], u.Name)
		}
	}
	for _, t := range g.graph.Properties() {
		g.record(f, t, members[t.Name])
	}
	for _, u := range unions {
		g.union(f, u)
	}
	for _, i := range g.graph.Interfaces() {
		if impl := g.synth.Implementations(i); impl.Enum != nil {
			g.enum(f, impl.Enum)
		}
	}
	return f
}

// Generate renders the bindings as Go source.
func (g *Generator) Generate() ([]byte, error) {
	return render(g.File())
}

// Write renders the bindings into the file at path, creating its directory.
func (g *Generator) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := g.File().Save(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// unions returns the relationship-properties unions, sorted by name.
func (g *Generator) unions() []*ast.Definition {
	var us []*ast.Definition
	for _, site := range g.sites.Sites() {
		if b := g.synth.Bundle(site); b.Union != nil {
			us = append(us, b.Union)
		}
	}
	return us
}

// record emits the struct of an attribute record and its union markers.
func (g *Generator) record(f *jen.File, t *gen.Type, unions []string) {
	comment := t.Comment
	if comment == "" {
		comment = fmt.Sprintf("%s holds the attributes of a relationship.", t.Name)
	}
	f.Comment(comment)
	f.Type().Id(t.Name).StructFunc(func(s *jen.Group) {
		for _, fd := range t.Fields {
			tag := fd.Name
			if fd.Nullable {
				tag += ",omitempty"
			}
			s.Id(gen.Pascal(fd.Name)).Add(goType(fd.Ref)).Tag(map[string]string{"json": tag})
		}
	})
	for _, u := range unions {
		f.Func().Params(jen.Id(t.Name)).Id(marker(u)).Params().Block()
	}
}

// union emits the sealed interface of a properties union and its decoder.
func (g *Generator) union(f *jen.File, u *ast.Definition) {
	f.Commentf("%s is implemented by %s.", u.Name, list(u.Types))
	f.Type().Id(u.Name).Interface(jen.Id(marker(u.Name)).Params())

	decode := "Decode" + u.Name
	f.Commentf("%s decodes the JSON properties of the record named by typename.", decode)
	f.Func().Id(decode).Params(
		jen.Id("typename").String(),
		jen.Id("data").Index().Byte(),
	).Params(jen.Id(u.Name), jen.Error()).Block(
		jen.Switch(jen.Id("typename")).BlockFunc(func(s *jen.Group) {
			for _, name := range u.Types {
				s.Case(jen.Lit(name)).Block(
					jen.Var().Id("v").Id(name),
					jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("v")),
					jen.Return(jen.Id("v"), jen.Err()),
				)
			}
			s.Default().Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit(u.Name+": unknown type %q"), jen.Id("typename"))),
			)
		}),
	)
}

// enum emits the string enum of an interface's implementors.
func (g *Generator) enum(f *jen.File, e *ast.Definition) {
	name := e.Name
	f.Commentf("%s names a concrete implementor.", name)
	f.Type().Id(name).String()
	f.Const().DefsFunc(func(d *jen.Group) {
		for _, v := range e.EnumValues {
			d.Id(name+v.Name).Id(name).Op("=").Lit(v.Name)
		}
	})
	f.Commentf("%sValues returns all values of %s.", name, name)
	f.Func().Id(name+"Values").Params().Index().Id(name).Block(
		jen.Return(jen.Index().Id(name).ValuesFunc(func(vs *jen.Group) {
			for _, v := range e.EnumValues {
				vs.Id(name + v.Name)
			}
		})),
	)
	f.Comment("IsValid reports if the value names a known implementor.")
	f.Func().Params(jen.Id("e").Id(name)).Id("IsValid").Params().Bool().Block(
		jen.Switch(jen.Id("e")).Block(
			jen.CaseFunc(func(vs *jen.Group) {
				for _, v := range e.EnumValues {
					vs.Id(name + v.Name)
				}
			}).Block(jen.Return(jen.True())),
		),
		jen.Return(jen.False()),
	)
	f.Comment("String implements fmt.Stringer.")
	f.Func().Params(jen.Id("e").Id(name)).Id("String").Params().String().Block(
		jen.Return(jen.String().Call(jen.Id("e"))),
	)
}

// goType maps a GraphQL type reference to a Go type. Nullable scalars
// become pointers and lists become slices.
func goType(t *ast.Type) *jen.Statement {
	if t.Elem != nil {
		return jen.Index().Add(goType(t.Elem))
	}
	var s *jen.Statement
	switch t.NamedType {
	case "ID", "String":
		s = jen.String()
	case "Int":
		s = jen.Int()
	case "Float":
		s = jen.Float64()
	case "Boolean":
		s = jen.Bool()
	case "DateTime":
		s = jen.Qual("time", "Time")
	default:
		s = jen.Id(t.NamedType)
	}
	if !t.NonNull {
		return jen.Op("*").Add(s)
	}
	return s
}

func render(f *jen.File) ([]byte, error) {
	var b bytes.Buffer
	if err := f.Render(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func marker(union string) string {
	return "is" + union
}

func list(names []string) string {
	switch len(names) {
	case 0:
		return "no records"
	case 1:
		return names[0]
	}
	s := names[0]
	for _, n := range names[1 : len(names)-1] {
		s += ", " + n
	}
	return s + " and " + names[len(names)-1]
}
