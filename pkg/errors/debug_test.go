package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestDumpNilError(t *testing.T) {
	dump := Dump(nil)
	if dump.TopMessage != "" || len(dump.Chain) != 0 {
		t.Fatalf("expected empty dump for nil error, got %+v", dump)
	}
}

func TestDumpWalksChainAndCode(t *testing.T) {
	cause := stdErrors.New("connection reset")
	wrapped := Wrap(CodeDependency, cause, "resolve shortage")

	dump := Dump(wrapped)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected the cause in the chain, got %v", dump.Chain)
	}
	if dump.TopMessage == "" {
		t.Fatalf("expected top message to be set")
	}
}

func TestDumpExtractsPostgresDiagnostics(t *testing.T) {
	pqErr := &pq.Error{
		Code:       "23505",
		Constraint: "uq_shortages_active_product",
		Table:      "shortages",
		Detail:     "Key (product_id)=(...) already exists.",
		Message:    "duplicate key value violates unique constraint",
	}
	err := fmt.Errorf("create shortage: %w", pqErr)

	dump := Dump(err)
	if dump.PGCode != "23505" {
		t.Fatalf("expected pg code 23505, got %q", dump.PGCode)
	}
	if dump.PGConstraint != "uq_shortages_active_product" {
		t.Fatalf("expected constraint name, got %q", dump.PGConstraint)
	}
	if dump.PGTable != "shortages" {
		t.Fatalf("expected table name, got %q", dump.PGTable)
	}
}
