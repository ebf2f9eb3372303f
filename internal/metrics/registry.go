// Package metrics computes size, complexity, and coupling metrics per
// method, class, and package over the sealed catalog and the call graph.
package metrics

// Level is the scope level a metric is defined at
type Level string

const (
	// LevelMethod metrics are computed per method
	LevelMethod Level = "method"
	// LevelClass metrics are computed per class
	LevelClass Level = "class"
	// LevelPackage metrics are computed per package
	LevelPackage Level = "package"
)

// Domain is the numeric domain of a metric, declared once per metric name
// and never reinterpreted
type Domain string

const (
	// DomainInteger for counting metrics
	DomainInteger Domain = "integer"
	// DomainReal for ratio metrics
	DomainReal Domain = "real"
)

// Metric names. Method-level size and complexity metrics roll up to class
// and package scopes under the same name.
const (
	// PhysicalLOC is end line minus start line plus one
	PhysicalLOC = "loc.physical"
	// LogicalLOC counts executable statements
	LogicalLOC = "loc.logical"
	// Cyclomatic is 1 plus the decision-point count
	Cyclomatic = "complexity.cyclomatic"
	// FanOut counts distinct resolved callees of a method
	FanOut = "calls.fanOut"
	// FanIn counts distinct resolved callers of a method
	FanIn = "calls.fanIn"
	// EfferentCoupling counts distinct other classes a class references
	EfferentCoupling = "coupling.efferent"
	// AfferentCoupling counts distinct classes referencing a class
	AfferentCoupling = "coupling.afferent"
	// Instability is Ce / (Ca + Ce), 0 for isolated classes
	Instability = "coupling.instability"
)

// Definition declares one metric's scope level and numeric domain
type Definition struct {
	Name        string `json:"name"`
	Level       Level  `json:"level"`
	Domain      Domain `json:"domain"`
	Description string `json:"description"`
}

var registry = []Definition{
	{PhysicalLOC, LevelMethod, DomainInteger, "physical lines of code"},
	{LogicalLOC, LevelMethod, DomainInteger, "executable statements"},
	{Cyclomatic, LevelMethod, DomainInteger, "cyclomatic complexity"},
	{FanOut, LevelMethod, DomainInteger, "distinct callees"},
	{FanIn, LevelMethod, DomainInteger, "distinct callers"},
	{EfferentCoupling, LevelClass, DomainInteger, "efferent coupling (Ce)"},
	{AfferentCoupling, LevelClass, DomainInteger, "afferent coupling (Ca)"},
	{Instability, LevelClass, DomainReal, "instability Ce/(Ca+Ce)"},
}

// Definitions returns the fixed metric registry
func Definitions() []Definition {
	return append([]Definition(nil), registry...)
}

// Lookup finds a metric definition by name
func Lookup(name string) (Definition, bool) {
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
