// Package model defines the structural fact model consumed by the analyzer.
// Symbols and call sites form closed variant sets; the resolver and metrics
// engine switch over them exhaustively instead of dispatching virtually.
package model

import "strings"

// Visibility represents the declared visibility of a symbol
type Visibility string

const (
	// VisibilityPublic for public symbols
	VisibilityPublic Visibility = "public"
	// VisibilityProtected for protected symbols
	VisibilityProtected Visibility = "protected"
	// VisibilityPackage for package-private symbols
	VisibilityPackage Visibility = "package"
	// VisibilityPrivate for private symbols
	VisibilityPrivate Visibility = "private"
)

// ClassKind distinguishes class-like declarations
type ClassKind string

const (
	// KindClass is a concrete or abstract class
	KindClass ClassKind = "class"
	// KindInterface is an interface declaration
	KindInterface ClassKind = "interface"
	// KindEnum is an enum declaration
	KindEnum ClassKind = "enum"
)

// InvocationKind classifies how a call site invokes its target
type InvocationKind string

const (
	// InvokeStatic is a static method call on a declared receiver type
	InvokeStatic InvocationKind = "STATIC"
	// InvokeInstance is an instance call dispatched from the static receiver type
	InvokeInstance InvocationKind = "INSTANCE"
	// InvokeSuper is an explicit super.method() call
	InvokeSuper InvocationKind = "SUPER"
	// InvokeConstructorThis is an explicit this(...) constructor call
	InvokeConstructorThis InvocationKind = "CONSTRUCTOR_THIS"
	// InvokeConstructorSuper is an explicit super(...) constructor call
	InvokeConstructorSuper InvocationKind = "CONSTRUCTOR_SUPER"
)

// ResolutionStatus is the outcome of resolving one call site
type ResolutionStatus string

const (
	// StatusResolved means exactly one target method matched
	StatusResolved ResolutionStatus = "resolved"
	// StatusUnresolved means no candidate survived filtering
	StatusUnresolved ResolutionStatus = "unresolved"
	// StatusAmbiguous means several equally specific candidates remained
	StatusAmbiguous ResolutionStatus = "ambiguous"
)

// UnknownType marks a type the extractor could not determine statically.
// Unknown types never eliminate a resolution candidate.
const UnknownType = ""

// IsUnknownType reports whether a type name carries no static information
func IsUnknownType(name string) bool {
	return name == UnknownType
}

// ClassSymbol is a class, interface, or enum declaration
type ClassSymbol struct {
	QualifiedName string     `json:"qualifiedName" yaml:"qualifiedName"`
	Package       string     `json:"package" yaml:"package"`
	Kind          ClassKind  `json:"kind" yaml:"kind"`
	Superclass    string     `json:"superclass,omitempty" yaml:"superclass,omitempty"`
	Interfaces    []string   `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Visibility    Visibility `json:"visibility" yaml:"visibility"`
	Abstract      bool       `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Final         bool       `json:"final,omitempty" yaml:"final,omitempty"`
	File          string     `json:"file,omitempty" yaml:"file,omitempty"`
	StartLine     int        `json:"startLine,omitempty" yaml:"startLine,omitempty"`
	EndLine       int        `json:"endLine,omitempty" yaml:"endLine,omitempty"`

	Methods []*MethodSymbol `json:"methods,omitempty" yaml:"methods,omitempty"`
	Fields  []*FieldSymbol  `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// SimpleName returns the class name without its package
func (c *ClassSymbol) SimpleName() string {
	if idx := strings.LastIndex(c.QualifiedName, "."); idx >= 0 {
		return c.QualifiedName[idx+1:]
	}
	return c.QualifiedName
}

// MethodSymbol is a method or constructor declaration
type MethodSymbol struct {
	QualifiedName  string     `json:"qualifiedName" yaml:"qualifiedName"`
	Name           string     `json:"name" yaml:"name"`
	DeclaringClass string     `json:"declaringClass" yaml:"declaringClass"`
	Parameters     []string   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType     string     `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Static         bool       `json:"static,omitempty" yaml:"static,omitempty"`
	Constructor    bool       `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Default        bool       `json:"default,omitempty" yaml:"default,omitempty"`
	Abstract       bool       `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Visibility     Visibility `json:"visibility" yaml:"visibility"`
	File           string     `json:"file,omitempty" yaml:"file,omitempty"`
	StartLine      int        `json:"startLine,omitempty" yaml:"startLine,omitempty"`
	EndLine        int        `json:"endLine,omitempty" yaml:"endLine,omitempty"`

	// Statements is the executable-statement count inside the method body,
	// Decisions the decision-point count (if / loop / case / catch / ternary /
	// short-circuit operator). Both are extracted upstream from the syntax tree.
	Statements int `json:"statements,omitempty" yaml:"statements,omitempty"`
	Decisions  int `json:"decisions,omitempty" yaml:"decisions,omitempty"`

	// ReferencedTypes lists local-variable and instantiation types seen in the
	// body, used for efferent coupling alongside the signature types.
	ReferencedTypes []string `json:"referencedTypes,omitempty" yaml:"referencedTypes,omitempty"`

	// Overrides points at the method this one overrides in the superclass or
	// interface chain. Set while the catalog is sealed, nil otherwise.
	Overrides *MethodSymbol `json:"-" yaml:"-"`
}

// Signature returns the name with its parameter type list
func (m *MethodSymbol) Signature() string {
	return m.Name + "(" + strings.Join(m.Parameters, ",") + ")"
}

// Arity returns the declared parameter count
func (m *MethodSymbol) Arity() int {
	return len(m.Parameters)
}

// PhysicalLines returns the physical line count of the method's source range
func (m *MethodSymbol) PhysicalLines() int {
	if m.EndLine < m.StartLine {
		return 0
	}
	return m.EndLine - m.StartLine + 1
}

// FieldSymbol is a field declaration
type FieldSymbol struct {
	QualifiedName  string     `json:"qualifiedName" yaml:"qualifiedName"`
	Name           string     `json:"name" yaml:"name"`
	DeclaringClass string     `json:"declaringClass" yaml:"declaringClass"`
	Type           string     `json:"type,omitempty" yaml:"type,omitempty"`
	Static         bool       `json:"static,omitempty" yaml:"static,omitempty"`
	Final          bool       `json:"final,omitempty" yaml:"final,omitempty"`
	Visibility     Visibility `json:"visibility" yaml:"visibility"`
}

// CallSite is one textual method or constructor invocation recorded by the
// extractor while walking the syntax tree. Immutable once created.
type CallSite struct {
	Caller        string         `json:"caller" yaml:"caller"`
	Kind          InvocationKind `json:"kind" yaml:"kind"`
	Name          string         `json:"name" yaml:"name"`
	ReceiverType  string         `json:"receiverType,omitempty" yaml:"receiverType,omitempty"`
	ArgumentTypes []string       `json:"argumentTypes,omitempty" yaml:"argumentTypes,omitempty"`
	File          string         `json:"file,omitempty" yaml:"file,omitempty"`
	Line          int            `json:"line,omitempty" yaml:"line,omitempty"`
}

// Location returns a file:line string for diagnostics
func (s *CallSite) Location() string {
	if s.File == "" {
		return ""
	}
	return s.File + ":" + itoa(s.Line)
}

// ResolvedCall pairs a call site with its resolution outcome
type ResolvedCall struct {
	Site   CallSite         `json:"site" yaml:"site"`
	Status ResolutionStatus `json:"status" yaml:"status"`

	// Target is the resolved method, nil unless Status is StatusResolved
	Target *MethodSymbol `json:"-" yaml:"-"`

	// TargetName is the resolved method's qualified name, "" if none
	TargetName string `json:"target,omitempty" yaml:"target,omitempty"`

	// Candidates holds the qualified names of equally specific candidates
	// when Status is StatusAmbiguous
	Candidates []string `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

func itoa(i int) string {
	if i < 0 {
		return "-" + uitoa(uint(-i))
	}
	return uitoa(uint(i))
}

func uitoa(u uint) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}
