package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(FactsInvalid, "cannot read fact file", nil)
	if got := err.Error(); got != "[FACTS_INVALID] cannot read fact file" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := New(FactsInvalid, "cannot read fact file", stderrors.New("no such file"))
	if got := wrapped.Error(); !strings.Contains(got, "no such file") {
		t.Errorf("cause not included: %q", got)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(SymbolNotFound, "class %s not found", "com.acme.Gone")
	if err.Message != "class com.acme.Gone not found" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := New(InternalError, "wrapper", cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is must reach the cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(EmptyDistribution, "empty", nil)); got != EmptyDistribution {
		t.Errorf("CodeOf = %s", got)
	}

	// code survives wrapping
	wrapped := fmt.Errorf("outer: %w", New(AmbiguousCall, "inner", nil))
	if got := CodeOf(wrapped); got != AmbiguousCall {
		t.Errorf("CodeOf(wrapped) = %s", got)
	}

	if got := CodeOf(stderrors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %s, want INTERNAL_ERROR", got)
	}
}

func TestHasCode(t *testing.T) {
	err := New(CatalogNotSealed, "not sealed", nil)
	if !HasCode(err, CatalogNotSealed) {
		t.Error("HasCode must match the carried code")
	}
	if HasCode(err, FactsInvalid) {
		t.Error("HasCode must not match a different code")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(MetricUnknown, "unknown metric", nil).WithDetails([]string{"bogus.metric"})
	details, ok := err.Details.([]string)
	if !ok || len(details) != 1 || details[0] != "bogus.metric" {
		t.Errorf("Details = %v", err.Details)
	}
}
