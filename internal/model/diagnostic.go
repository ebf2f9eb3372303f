package model

// Diagnostic records a recoverable analysis condition: an unresolved or
// ambiguous call site, or a type reference missing from the catalog.
// Diagnostics are collected into the result snapshot and never interrupt
// processing of other symbols.
type Diagnostic struct {
	Code    string   `json:"code" yaml:"code"`
	Message string   `json:"message" yaml:"message"`
	File    string   `json:"file,omitempty" yaml:"file,omitempty"`
	Line    int      `json:"line,omitempty" yaml:"line,omitempty"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}
