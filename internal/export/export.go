// Package export writes the full analysis result to a file so downstream
// tooling can consume a run without re-analyzing. The report mirrors the
// snapshot one-to-one; nothing is recomputed on the way out.
package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"jca/internal/callgraph"
	"jca/internal/errors"
	"jca/internal/metrics"
	"jca/internal/model"
	"jca/internal/snapshot"
	"jca/internal/stats"
)

// Report is the serialized form of one analysis run
type Report struct {
	RunID     string `json:"runId" yaml:"runId"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`

	Classes   int `json:"classes" yaml:"classes"`
	Methods   int `json:"methods" yaml:"methods"`
	CallSites int `json:"callSites" yaml:"callSites"`

	Edges  []callgraph.Edge `json:"edges" yaml:"edges"`
	Cycles [][]string       `json:"cycles,omitempty" yaml:"cycles,omitempty"`

	Metrics   []metrics.Value          `json:"metrics" yaml:"metrics"`
	Summaries map[string]stats.Summary `json:"summaries" yaml:"summaries"`

	Calls       []model.ResolvedCall `json:"calls" yaml:"calls"`
	Diagnostics []model.Diagnostic   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// BuildReport flattens a snapshot into its serializable report
func BuildReport(snap *snapshot.Snapshot) *Report {
	summaries := make(map[string]stats.Summary)
	for _, def := range metrics.Definitions() {
		if s, ok := snap.Summary(def.Name, def.Level); ok {
			summaries[def.Name+"/"+string(def.Level)] = s
		}
	}

	return &Report{
		RunID:       snap.RunID(),
		CreatedAt:   snap.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
		Classes:     snap.Catalog().ClassCount(),
		Methods:     snap.Catalog().MethodCount(),
		CallSites:   len(snap.ResolvedCalls()),
		Edges:       snap.Graph().Edges(),
		Cycles:      snap.Graph().FindCycles(),
		Metrics:     snap.Metrics().All(),
		Summaries:   summaries,
		Calls:       snap.ResolvedCalls(),
		Diagnostics: snap.Diagnostics(),
	}
}

// Write serializes a snapshot to the given path. The extension picks the
// encoding: .yaml/.yml for YAML, anything else JSON; a .zst suffix adds
// zstd compression on top.
func Write(snap *snapshot.Snapshot, path string) error {
	report := BuildReport(snap)

	name := path
	compress := strings.HasSuffix(name, ".zst")
	if compress {
		name = strings.TrimSuffix(name, ".zst")
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		data, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return errors.New(errors.InternalError, "cannot serialize analysis report", err)
	}

	if compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.New(errors.InternalError, "cannot create compressor", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.InternalError, "cannot write analysis report", err)
	}
	return nil
}
