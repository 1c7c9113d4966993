package lab

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func newManager(t *testing.T, opts ...ManagerOption) *LabManager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lab.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := db.ImportRoster(DemoRoster()); err != nil {
		t.Fatalf("import: %v", err)
	}
	db.Close()

	mgr, err := NewLabManager(path, opts...)
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestManagerCheckoutRecordsAudit(t *testing.T) {
	var out bytes.Buffer
	mgr := newManager(t, WithAuditWriter(&out))

	receipt, err := mgr.Checkout("KRG20281", "LAB-101", 5)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if receipt.ID != "TXN-20260221-LAB-101-KRG20281" || receipt.EffectiveHours != 3 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if _, err := mgr.Checkout("KRG20281", "LAB-101", 1); KindOf(err) != KindUnavailable {
		t.Fatalf("want unavailable on second checkout, got %v", err)
	}

	entries, err := mgr.AuditEntries()
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 audit entries, got %d", len(entries))
	}
	if got := strings.Count(out.String(), "AUDIT: "); got != 2 {
		t.Fatalf("want 2 audit lines, got %d", got)
	}
}

func TestManagerCheckoutRejectsHoursBeforeService(t *testing.T) {
	mgr := newManager(t)

	if _, err := mgr.Checkout("KRG20281", "LAB-101", 0); KindOf(err) != KindInvalidArgument {
		t.Fatalf("want invalid argument, got %v", err)
	}
	entries, _ := mgr.AuditEntries()
	if len(entries) != 0 {
		t.Fatalf("construction failure must not be audited, got %d entries", len(entries))
	}
}

func TestManagerStateIsNotWrittenBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.db")
	db, err := NewDatabase(path)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := db.ImportRoster(DemoRoster()); err != nil {
		t.Fatalf("import: %v", err)
	}
	db.Close()

	mgr, err := NewLabManager(path)
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	if _, err := mgr.Checkout("KRG20281", "LAB-101", 2); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	mgr.Close()

	mgr, err = NewLabManager(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer mgr.Close()
	for _, a := range mgr.Assets() {
		if a.AssetID == "LAB-101" && !a.Available {
			t.Fatalf("checkout state leaked into the database")
		}
	}
}

func TestManagerRunBatch(t *testing.T) {
	mgr := newManager(t)
	batch, err := LoadBatchFile("testdata/batch.yaml")
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	ok, failed := mgr.RunBatch(batch.Requests, nil)
	if ok != 1 || failed != 3 {
		t.Fatalf("want 1 ok / 3 failed, got %d / %d", ok, failed)
	}
	if len(mgr.Students()) != 3 {
		t.Fatalf("want 3 students")
	}
}
