package metrics

import (
	"sort"
	"strings"

	"jca/internal/errors"
	"jca/internal/model"
)

// primitives and void never count as class references
var nonClassTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"short":   true,
	"char":    true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

// collectReferences gathers the distinct other classes a class references
// through field types, parameter types, return types, local-variable types,
// and instantiation expressions. References absent from the catalog still
// count as opaque external dependencies and are reported as diagnostics.
func (e *Engine) collectReferences(cls *model.ClassSymbol) ([]string, []model.Diagnostic) {
	refs := make(map[string]bool)

	add := func(raw string) {
		name := normalizeType(raw)
		if name == "" || nonClassTypes[name] || name == cls.QualifiedName {
			return
		}
		refs[name] = true
	}

	for _, f := range cls.Fields {
		add(f.Type)
	}
	for _, m := range cls.Methods {
		add(m.ReturnType)
		for _, p := range m.Parameters {
			add(p)
		}
		for _, t := range m.ReferencedTypes {
			add(t)
		}
	}

	out := make([]string, 0, len(refs))
	for name := range refs {
		out = append(out, name)
	}
	sort.Strings(out)

	var diagnostics []model.Diagnostic
	for _, name := range out {
		if _, ok := e.catalog.Class(name); !ok {
			diagnostics = append(diagnostics, model.Diagnostic{
				Code:    string(errors.MissingTypeReference),
				Message: cls.QualifiedName + " references uncatalogued type " + name,
				File:    cls.File,
				Line:    cls.StartLine,
				Details: []string{name},
			})
		}
	}
	return out, diagnostics
}

// normalizeType reduces a type text to its base class name: generic
// arguments and array brackets are stripped, unknowns collapse to ""
func normalizeType(raw string) string {
	name := strings.TrimSpace(raw)
	if idx := strings.Index(name, "<"); idx >= 0 {
		name = name[:idx]
	}
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
	}
	return strings.TrimSpace(name)
}
