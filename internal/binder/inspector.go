package binder

import (
	"fmt"
	"go/types"
	"os"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Result holds the resolved type information for code generation.
type Result struct {
	// PackageName is the name of the inspected package, for the generated
	// package clause.
	PackageName string

	// Containers lists the bound containers in first-appearance order.
	Containers []*ContainerBinding
}

// ContainerBinding groups the resolved variant bindings of one container.
type ContainerBinding struct {
	// Name is the container type name.
	Name string

	// Variants is the ordered list of bound variants (config order).
	Variants []*VariantBinding
}

// VariantBinding is one resolved (tag, payload) pair of a container.
type VariantBinding struct {
	// Tag is the variant tag and the container field name.
	Tag string

	// Payload is the payload type name.
	Payload string
}

// Inspector loads the target Go package and resolves bindings against its
// type information.
type Inspector struct {
	// dir is the directory of the package under inspection.
	dir string

	// pkg is the loaded package, set by load.
	pkg *packages.Package
}

// NewInspector creates an Inspector for the package in dir.
func NewInspector(dir string) *Inspector {
	return &Inspector{dir: dir}
}

// Inspect loads the target package and resolves every binding in the config.
// All bindings are checked even though resolution stops at the first error,
// so error messages name the offending binding.
func (ins *Inspector) Inspect(cfg *Config) (*Result, error) {
	if err := ins.load(); err != nil {
		return nil, fmt.Errorf("loading package: %w", err)
	}

	result := &Result{PackageName: ins.pkg.Types.Name()}

	// Config validation compares payload names; type aliases make distinct
	// names denote one type, so distinctness is re-checked on the resolved
	// types. Two tags of one container sharing a payload type would make
	// the typed accessors ambiguous and emit the payload→container edge
	// twice.
	resolved := make(map[string][]resolvedPayload)

	containers := make(map[string]*ContainerBinding)
	for _, b := range cfg.Bindings {
		payloadType, err := ins.resolveBinding(b)
		if err != nil {
			return nil, fmt.Errorf("binding %s.%s: %w", b.Container, b.Variant, err)
		}

		for _, prev := range resolved[b.Container] {
			if types.Identical(prev.typ, payloadType) {
				return nil, fmt.Errorf("binding %s.%s: payload %s is the same type as payload %s of variant %s",
					b.Container, b.Variant, b.Payload, prev.name, prev.tag)
			}
		}
		resolved[b.Container] = append(resolved[b.Container], resolvedPayload{
			tag:  b.Variant,
			name: b.Payload,
			typ:  payloadType,
		})

		cb, ok := containers[b.Container]
		if !ok {
			cb = &ContainerBinding{Name: b.Container}
			containers[b.Container] = cb
			result.Containers = append(result.Containers, cb)
		}
		cb.Variants = append(cb.Variants, &VariantBinding{Tag: b.Variant, Payload: b.Payload})
	}

	return result, nil
}

// resolvedPayload records one resolved payload of a container for the
// cross-binding type-identity check.
type resolvedPayload struct {
	tag  string
	name string
	typ  types.Type
}

// load loads the package in ins.dir using go/packages.
func (ins *Inspector) load() error {
	if ins.pkg != nil {
		return nil
	}

	if info, err := os.Stat(ins.dir); err != nil || !info.IsDir() {
		return fmt.Errorf("package directory %s not found", ins.dir)
	}

	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedImports |
			packages.NeedDeps,
		Dir: ins.dir,
		Env: append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return err
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("expected one package in %s, got %d", ins.dir, len(pkgs))
	}

	pkg := pkgs[0]
	var errs []string
	for _, e := range pkg.Errors {
		errs = append(errs, e.Msg)
	}
	if len(errs) > 0 {
		return fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}

	ins.pkg = pkg
	return nil
}

// resolveBinding checks one binding against the loaded package: the
// container must be a struct type with a field named after the variant tag,
// and that field must be a pointer to the payload type. It returns the
// resolved payload type so callers can compare payloads across bindings.
func (ins *Inspector) resolveBinding(b Binding) (types.Type, error) {
	containerType, err := ins.lookupType(b.Container)
	if err != nil {
		return nil, err
	}
	payloadType, err := ins.lookupType(b.Payload)
	if err != nil {
		return nil, err
	}

	st, ok := containerType.Underlying().(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("container %s is not a struct type", b.Container)
	}

	var field *types.Var
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i).Name() == b.Variant {
			field = st.Field(i)
			break
		}
	}
	if field == nil {
		return nil, fmt.Errorf("container %s has no field %s", b.Container, b.Variant)
	}

	ptr, ok := field.Type().(*types.Pointer)
	if !ok || !types.Identical(ptr.Elem(), payloadType) {
		return nil, fmt.Errorf("field %s.%s has type %s, want *%s",
			b.Container, b.Variant, field.Type(), b.Payload)
	}

	return payloadType, nil
}

// lookupType resolves a type name in the loaded package's scope.
func (ins *Inspector) lookupType(name string) (types.Type, error) {
	obj := ins.pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return nil, fmt.Errorf("type %s not found in package %s", name, ins.pkg.Types.Name())
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s is not a type (it is a %T)", name, obj)
	}
	return tn.Type(), nil
}
