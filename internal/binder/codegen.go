package binder

import (
	"fmt"
	"go/format"
	"strings"
	"text/template"
)

// DefaultCastImport is the import path of the cast protocol package that
// generated code depends on.
const DefaultCastImport = "github.com/funvibe/funcast/pkg/cast"

// CodeGenerator produces the Go source for a package's variant bindings.
type CodeGenerator struct {
	// castImport is the import path of the cast protocol package.
	castImport string
}

// NewCodeGenerator creates a code generator. castImport overrides the import
// path of the cast package; pass "" for the default.
func NewCodeGenerator(castImport string) *CodeGenerator {
	if castImport == "" {
		castImport = DefaultCastImport
	}
	return &CodeGenerator{castImport: castImport}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the file name within the target package directory.
	Filename string

	// Content is the full, gofmt-formatted Go source.
	Content string
}

// fileTemplate is the fixed skeleton of a generated file. The per-container
// sections are built separately and injected verbatim.
var fileTemplate = template.Must(template.New("funcast").Parse(
	`// Code generated by funcast. DO NOT EDIT.

package {{.PackageName}}

import "{{.CastImport}}"

{{range .Sections}}{{.}}
{{end}}`))

// Generate produces the generated file for one inspected package. Output is
// deterministic: containers and variants appear in declaration order.
func (cg *CodeGenerator) Generate(result *Result, filename string) (GeneratedFile, error) {
	if len(result.Containers) == 0 {
		return GeneratedFile{}, fmt.Errorf("nothing to generate: no containers resolved")
	}

	var sections []string
	for _, c := range result.Containers {
		sections = append(sections, cg.containerSection(c))
	}

	var buf strings.Builder
	data := struct {
		PackageName string
		CastImport  string
		Sections    []string
	}{
		PackageName: result.PackageName,
		CastImport:  cg.castImport,
		Sections:    sections,
	}
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template: %w", err)
	}

	src, err := format.Source([]byte(buf.String()))
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("formatting generated code: %w", err)
	}

	return GeneratedFile{Filename: filename, Content: string(src)}, nil
}

// containerSection emits the edge variables and the cast.Tagged
// implementation for one container.
func (cg *CodeGenerator) containerSection(c *ContainerBinding) string {
	var buf strings.Builder

	for _, v := range c.Variants {
		name := EdgeVarName(c.Name, v.Tag)
		fmt.Fprintf(&buf, "// %s wraps a %s value as the %s variant of %s.\n",
			name, v.Payload, v.Tag, c.Name)
		fmt.Fprintf(&buf, "var %s = cast.Unconditional(func(v %s) %s {\n",
			name, v.Payload, c.Name)
		fmt.Fprintf(&buf, "\treturn %s{%s: &v}\n", c.Name, v.Tag)
		buf.WriteString("})\n\n")
	}

	fmt.Fprintf(&buf, "// Variant implements cast.Tagged for %s.\n", c.Name)
	fmt.Fprintf(&buf, "func (c *%s) Variant() (string, any) {\n", c.Name)
	buf.WriteString("\tswitch {\n")
	for _, v := range c.Variants {
		fmt.Fprintf(&buf, "\tcase c.%s != nil:\n", v.Tag)
		fmt.Fprintf(&buf, "\t\treturn %q, c.%s\n", v.Tag, v.Tag)
	}
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn \"\", nil\n")
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "var _ cast.Tagged = (*%s)(nil)\n", c.Name)

	return buf.String()
}

// EdgeVarName returns the name of the generated payload→container edge
// variable for a (container, tag) pair.
func EdgeVarName(container, tag string) string {
	return container + "From" + tag
}
