package stats

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"jca/internal/errors"
)

// Rule is one quality-gate threshold over a metric
type Rule struct {
	Name       string     `toml:"name" json:"name"`
	Metric     string     `toml:"metric" json:"metric"`
	Comparison Comparison `toml:"comparison" json:"comparison"`
	Threshold  float64    `toml:"threshold" json:"threshold"`
}

// Profile is a named set of quality-gate rules, loaded from a TOML file
type Profile struct {
	Rules []Rule `toml:"rule" json:"rules"`
}

// DefaultProfile returns the built-in quality gates
func DefaultProfile() *Profile {
	return &Profile{
		Rules: []Rule{
			{Name: "complex-methods", Metric: "complexity.cyclomatic", Comparison: Greater, Threshold: 10},
			{Name: "long-methods", Metric: "loc.physical", Comparison: Greater, Threshold: 60},
			{Name: "unstable-classes", Metric: "coupling.instability", Comparison: GreaterOrEqual, Threshold: 0.9},
		},
	}
}

// LoadProfile reads a quality-gate profile from a TOML file
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.FactsInvalid, "cannot read threshold profile", err)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.New(errors.FactsInvalid, "cannot parse threshold profile", err)
	}

	for _, r := range p.Rules {
		switch r.Comparison {
		case Greater, GreaterOrEqual, Less, LessOrEqual:
		default:
			return nil, errors.Newf(errors.FactsInvalid, "rule %q: unknown comparison %q", r.Name, r.Comparison)
		}
	}
	return &p, nil
}

// Violation is one entry caught by a gate rule
type Violation struct {
	Rule      string  `json:"rule"`
	Metric    string  `json:"metric"`
	Scope     string  `json:"scope"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

// Evaluate runs every rule against the metric distributions supplied by
// valuesFor and returns the violations in rule order
func (p *Profile) Evaluate(valuesFor func(metric string) []Entry) []Violation {
	var out []Violation
	for _, rule := range p.Rules {
		for _, e := range FilterByThreshold(valuesFor(rule.Metric), rule.Threshold, rule.Comparison) {
			out = append(out, Violation{
				Rule:      rule.Name,
				Metric:    rule.Metric,
				Scope:     e.Scope,
				Value:     e.Value,
				Threshold: rule.Threshold,
			})
		}
	}
	return out
}
