package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"jca/internal/analysis"
	"jca/internal/catalog"
	"jca/internal/model"
	"jca/internal/snapshot"
)

func buildSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()

	b := catalog.NewBuilder()
	err := b.AddClass(&model.ClassSymbol{
		QualifiedName: "com.acme.Ping",
		Methods: []*model.MethodSymbol{
			{Name: "send", StartLine: 1, EndLine: 8, Statements: 4, Decisions: 1},
			{Name: "retry", StartLine: 10, EndLine: 12, Statements: 1},
		},
	})
	if err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	cat, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	sites := []model.CallSite{
		{Caller: "com.acme.Ping#send()", Kind: model.InvokeInstance, Name: "retry", ReceiverType: "com.acme.Ping"},
	}
	snap, err := analysis.Analyze(context.Background(), cat, sites, 1)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return snap
}

func TestBuildReport(t *testing.T) {
	snap := buildSnapshot(t)
	report := BuildReport(snap)

	if report.RunID != snap.RunID() {
		t.Errorf("RunID = %s", report.RunID)
	}
	if report.Classes != 1 || report.Methods != 2 || report.CallSites != 1 {
		t.Errorf("counts = %d/%d/%d", report.Classes, report.Methods, report.CallSites)
	}
	if len(report.Edges) != 1 {
		t.Fatalf("edges = %v", report.Edges)
	}
	if report.Edges[0].Caller != "com.acme.Ping#send()" || report.Edges[0].Multiplicity != 1 {
		t.Errorf("edge = %+v", report.Edges[0])
	}
	if _, ok := report.Summaries["complexity.cyclomatic/method"]; !ok {
		t.Error("cyclomatic summary missing from report")
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := Write(buildSnapshot(t), path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("written file is not JSON: %v", err)
	}
	if report.Classes != 1 {
		t.Errorf("Classes = %d", report.Classes)
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := Write(buildSnapshot(t), path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		t.Fatalf("written file is not YAML: %v", err)
	}
	if report.Methods != 2 {
		t.Errorf("Methods = %d", report.Methods)
	}
}

func TestWriteCompressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json.zst")
	if err := Write(buildSnapshot(t), path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("zstd.NewReader: %v", err)
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(data, nil)
	if err != nil {
		t.Fatalf("written file is not zstd: %v", err)
	}

	var report Report
	if err := json.Unmarshal(plain, &report); err != nil {
		t.Fatalf("decompressed payload is not JSON: %v", err)
	}
	if report.RunID == "" {
		t.Error("RunID missing after round trip")
	}
}
