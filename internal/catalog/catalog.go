package catalog

import (
	"jca/internal/model"
)

// Catalog is the sealed, immutable symbol index. All lookups are O(1) map
// reads; slice accessors return copies so callers cannot corrupt shared
// state. A zero-value Catalog is unsealed and rejected by consumers.
type Catalog struct {
	classes map[string]*model.ClassSymbol
	methods map[string]*model.MethodSymbol
	fields  map[string]*model.FieldSymbol

	classNames   []string            // sorted class qualified names
	methodNames  []string            // sorted method qualified names
	packageNames []string            // sorted package names
	packages     map[string][]string // package -> sorted class qualified names

	sealed bool
}

// Sealed reports whether the catalog has been sealed
func (c *Catalog) Sealed() bool {
	return c != nil && c.sealed
}

// Class looks up a class by qualified name
func (c *Catalog) Class(qualifiedName string) (*model.ClassSymbol, bool) {
	cls, ok := c.classes[qualifiedName]
	return cls, ok
}

// Method looks up a method by qualified name
func (c *Catalog) Method(qualifiedName string) (*model.MethodSymbol, bool) {
	m, ok := c.methods[qualifiedName]
	return m, ok
}

// Field looks up a field by qualified name
func (c *Catalog) Field(qualifiedName string) (*model.FieldSymbol, bool) {
	f, ok := c.fields[qualifiedName]
	return f, ok
}

// ClassNames returns all class qualified names in sorted order
func (c *Catalog) ClassNames() []string {
	return append([]string(nil), c.classNames...)
}

// MethodNames returns all method qualified names in sorted order
func (c *Catalog) MethodNames() []string {
	return append([]string(nil), c.methodNames...)
}

// PackageNames returns all package names in sorted order
func (c *Catalog) PackageNames() []string {
	return append([]string(nil), c.packageNames...)
}

// PackageClasses returns the sorted class qualified names of a package
func (c *Catalog) PackageClasses(pkg string) []string {
	return append([]string(nil), c.packages[pkg]...)
}

// ClassCount returns the number of catalogued classes
func (c *Catalog) ClassCount() int {
	return len(c.classNames)
}

// MethodCount returns the number of catalogued methods
func (c *Catalog) MethodCount() int {
	return len(c.methodNames)
}

// SuperclassChain returns the catalogued superclasses of a class, nearest
// first. The walk stops at an uncatalogued or repeated type, so declaration
// cycles cannot loop.
func (c *Catalog) SuperclassChain(qualifiedName string) []*model.ClassSymbol {
	var chain []*model.ClassSymbol
	seen := map[string]bool{qualifiedName: true}

	cls, ok := c.classes[qualifiedName]
	for ok && cls.Superclass != "" && !seen[cls.Superclass] {
		seen[cls.Superclass] = true
		cls, ok = c.classes[cls.Superclass]
		if ok {
			chain = append(chain, cls)
		}
	}
	return chain
}

// IsSubtypeOf reports whether sub is the same type as super or reaches it
// through its superclass chain or interface closure
func (c *Catalog) IsSubtypeOf(sub, super string) bool {
	if sub == super {
		return true
	}

	seen := make(map[string]bool)
	frontier := []string{sub}
	for len(frontier) > 0 {
		var next []string
		for _, name := range frontier {
			if seen[name] {
				continue
			}
			seen[name] = true
			if name == super {
				return true
			}
			cls, ok := c.classes[name]
			if !ok {
				continue
			}
			if cls.Superclass != "" {
				next = append(next, cls.Superclass)
			}
			next = append(next, cls.Interfaces...)
		}
		frontier = next
	}
	return false
}

// MethodsNamed returns the methods of one class matching a simple name,
// excluding constructors. No inheritance walk.
func (c *Catalog) MethodsNamed(classQN, name string) []*model.MethodSymbol {
	cls, ok := c.classes[classQN]
	if !ok {
		return nil
	}
	var out []*model.MethodSymbol
	for _, m := range cls.Methods {
		if !m.Constructor && m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

// Constructors returns the constructor symbols of one class
func (c *Catalog) Constructors(classQN string) []*model.MethodSymbol {
	cls, ok := c.classes[classQN]
	if !ok {
		return nil
	}
	var out []*model.MethodSymbol
	for _, m := range cls.Methods {
		if m.Constructor {
			out = append(out, m)
		}
	}
	return out
}
