package storage

import (
	"context"
	"path/filepath"
	"testing"

	"jca/internal/analysis"
	"jca/internal/catalog"
	"jca/internal/logging"
	"jca/internal/metrics"
	"jca/internal/model"
	"jca/internal/snapshot"
)

func buildSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()

	b := catalog.NewBuilder()
	err := b.AddClass(&model.ClassSymbol{
		QualifiedName: "com.acme.Worker",
		Methods: []*model.MethodSymbol{
			{Name: "spin", StartLine: 1, EndLine: 20, Statements: 12, Decisions: 3},
			{Name: "stop", StartLine: 22, EndLine: 24, Statements: 1},
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
		{Caller: "com.acme.Worker#spin()", Kind: model.InvokeInstance, Name: "stop", ReceiverType: "com.acme.Worker"},
		{Caller: "com.acme.Worker#spin()", Kind: model.InvokeInstance, Name: "spin", ReceiverType: "com.acme.Worker"},
	}
	snap, err := analysis.Analyze(context.Background(), cat, sites, 1)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	return snap
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history", "jca.db"), logging.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndListRuns(t *testing.T) {
	db := openTestDB(t)
	snap := buildSnapshot(t)

	if err := db.SaveRun(snap, "facts.json"); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	records, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.ID != snap.RunID() {
		t.Errorf("ID = %s, want %s", rec.ID, snap.RunID())
	}
	if rec.Classes != 1 || rec.Methods != 2 || rec.CallSites != 2 {
		t.Errorf("counts = %d/%d/%d", rec.Classes, rec.Methods, rec.CallSites)
	}
	if rec.Resolved != 2 || rec.Unresolved != 0 {
		t.Errorf("resolution counts = %d resolved / %d unresolved", rec.Resolved, rec.Unresolved)
	}
	// spin calls itself, a one-node cycle
	if rec.Cycles != 1 {
		t.Errorf("Cycles = %d, want 1", rec.Cycles)
	}
	if rec.FactsPath != "facts.json" {
		t.Errorf("FactsPath = %q", rec.FactsPath)
	}
}

func TestMetricHistory(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.SaveRun(buildSnapshot(t), "facts.json"); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	values, err := db.MetricHistory("com.acme.Worker#spin()", metrics.Cyclomatic, 10)
	if err != nil {
		t.Fatalf("MetricHistory: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("got %d values, want 3", len(values))
	}
	for _, v := range values {
		if v != 4 {
			t.Errorf("cyclomatic = %v, want 4", v)
		}
	}
}

func TestListRunsEmptyDatabase(t *testing.T) {
	db := openTestDB(t)

	records, err := db.ListRuns(5)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("fresh database has %d records", len(records))
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	db := openTestDB(t)
	snap := buildSnapshot(t)

	if err := db.SaveRun(snap, "facts.json"); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}
	if err := db.SaveRun(snap, "facts.json"); err == nil {
		t.Fatal("saving the same run twice must violate the primary key")
	}
}
