package sqlite

import (
	"path/filepath"
	"testing"
	"time"
)

func TestInsertAndGetRunRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	older := RunRecord{
		System:    "bmc42.mgmt",
		Host:      "pdu1.mgmt",
		Vendor:    "ibm",
		Outlets:   "3,4",
		Outcome:   "success",
		Timestamp: time.Now().Add(-time.Hour),
	}
	newer := RunRecord{
		System:    "bmc42.mgmt",
		Host:      "pdu1.mgmt",
		Vendor:    "ibm",
		Outlets:   "3,4",
		Outcome:   "failure",
		Detail:    "outlet 3 on PDU pdu1.mgmt did not power off within 40s",
		Timestamp: time.Now(),
	}
	if err := InsertRunRecords(path, older, newer); err != nil {
		t.Fatalf("failed to insert run records: %v", err)
	}

	records, err := GetRunRecords(path)
	if err != nil {
		t.Fatalf("failed to read run records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Outcome != "failure" {
		t.Errorf("expected newest record first, got %+v", records[0])
	}
	if records[0].Detail == "" {
		t.Errorf("failure record lost its detail")
	}
}

func TestInsertNoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	if err := InsertRunRecords(path); err == nil {
		t.Error("expected error inserting zero records")
	}
}
