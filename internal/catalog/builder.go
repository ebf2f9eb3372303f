// Package catalog builds and serves the sealed symbol index. The catalog is
// constructed once from extractor facts, sealed, and read-only afterwards;
// every downstream component assumes it never changes.
package catalog

import (
	"sort"
	"strings"

	"jca/internal/errors"
	"jca/internal/model"
)

// Builder accumulates class declarations and produces a sealed Catalog
type Builder struct {
	classes map[string]*model.ClassSymbol
	order   []string
	sealed  bool
}

// NewBuilder creates an empty catalog builder
func NewBuilder() *Builder {
	return &Builder{
		classes: make(map[string]*model.ClassSymbol),
	}
}

// AddClass registers a class declaration. Qualified names must be unique.
func (b *Builder) AddClass(c *model.ClassSymbol) error {
	if b.sealed {
		return errors.Newf(errors.FactsInvalid, "catalog already sealed, cannot add %s", c.QualifiedName)
	}
	if c.QualifiedName == "" {
		return errors.Newf(errors.FactsInvalid, "class with empty qualified name")
	}
	if _, exists := b.classes[c.QualifiedName]; exists {
		return errors.Newf(errors.FactsInvalid, "duplicate class %s", c.QualifiedName)
	}

	b.normalize(c)
	b.classes[c.QualifiedName] = c
	b.order = append(b.order, c.QualifiedName)
	return nil
}

// normalize fills derivable fields the extractor may omit
func (b *Builder) normalize(c *model.ClassSymbol) {
	if c.Package == "" {
		if idx := strings.LastIndex(c.QualifiedName, "."); idx >= 0 {
			c.Package = c.QualifiedName[:idx]
		}
	}
	if c.Kind == "" {
		c.Kind = model.KindClass
	}
	for _, m := range c.Methods {
		if m.DeclaringClass == "" {
			m.DeclaringClass = c.QualifiedName
		}
		if m.QualifiedName == "" {
			m.QualifiedName = c.QualifiedName + "#" + m.Signature()
		}
		if m.File == "" {
			m.File = c.File
		}
	}
	for _, f := range c.Fields {
		if f.DeclaringClass == "" {
			f.DeclaringClass = c.QualifiedName
		}
		if f.QualifiedName == "" {
			f.QualifiedName = c.QualifiedName + "#" + f.Name
		}
	}
}

// Seal freezes the catalog: indexes methods and fields, groups classes by
// package, and links override back-references. The builder cannot be reused.
func (b *Builder) Seal() (*Catalog, error) {
	if b.sealed {
		return nil, errors.New(errors.FactsInvalid, "catalog sealed twice", nil)
	}
	b.sealed = true

	cat := &Catalog{
		classes:  b.classes,
		methods:  make(map[string]*model.MethodSymbol),
		fields:   make(map[string]*model.FieldSymbol),
		packages: make(map[string][]string),
		sealed:   true,
	}

	cat.classNames = make([]string, 0, len(b.classes))
	for name, c := range b.classes {
		cat.classNames = append(cat.classNames, name)
		cat.packages[c.Package] = append(cat.packages[c.Package], name)

		for _, m := range c.Methods {
			if _, dup := cat.methods[m.QualifiedName]; dup {
				return nil, errors.Newf(errors.FactsInvalid, "duplicate method %s", m.QualifiedName)
			}
			cat.methods[m.QualifiedName] = m
		}
		for _, f := range c.Fields {
			if _, dup := cat.fields[f.QualifiedName]; dup {
				return nil, errors.Newf(errors.FactsInvalid, "duplicate field %s", f.QualifiedName)
			}
			cat.fields[f.QualifiedName] = f
		}
	}
	sort.Strings(cat.classNames)
	for pkg := range cat.packages {
		sort.Strings(cat.packages[pkg])
		cat.packageNames = append(cat.packageNames, pkg)
	}
	sort.Strings(cat.packageNames)

	cat.methodNames = make([]string, 0, len(cat.methods))
	for name := range cat.methods {
		cat.methodNames = append(cat.methodNames, name)
	}
	sort.Strings(cat.methodNames)

	linkOverrides(cat)
	return cat, nil
}

// linkOverrides sets the Overrides back-reference on every instance method
// that matches a signature in its superclass or interface chain. The
// superclass chain wins over interfaces, nearer types over farther ones.
func linkOverrides(cat *Catalog) {
	for _, name := range cat.classNames {
		c := cat.classes[name]
		for _, m := range c.Methods {
			if m.Static || m.Constructor {
				continue
			}
			m.Overrides = findOverridden(cat, c, m)
		}
	}
}

func findOverridden(cat *Catalog, c *model.ClassSymbol, m *model.MethodSymbol) *model.MethodSymbol {
	sig := m.Signature()

	for _, super := range cat.SuperclassChain(c.QualifiedName) {
		if found := methodBySignature(super, sig); found != nil {
			return found
		}
	}

	// Breadth-first over the interface closure, nearest level first
	seen := map[string]bool{c.QualifiedName: true}
	frontier := interfaceNames(cat, c)
	for len(frontier) > 0 {
		var next []string
		for _, in := range frontier {
			if seen[in] {
				continue
			}
			seen[in] = true
			iface, ok := cat.classes[in]
			if !ok {
				continue
			}
			if found := methodBySignature(iface, sig); found != nil {
				return found
			}
			next = append(next, iface.Interfaces...)
		}
		frontier = next
	}
	return nil
}

func methodBySignature(c *model.ClassSymbol, sig string) *model.MethodSymbol {
	for _, m := range c.Methods {
		if !m.Static && !m.Constructor && m.Signature() == sig {
			return m
		}
	}
	return nil
}

// interfaceNames collects the interfaces of a class plus those inherited
// through its superclass chain, in deterministic order
func interfaceNames(cat *Catalog, c *model.ClassSymbol) []string {
	names := append([]string(nil), c.Interfaces...)
	for _, super := range cat.SuperclassChain(c.QualifiedName) {
		names = append(names, super.Interfaces...)
	}
	return names
}
