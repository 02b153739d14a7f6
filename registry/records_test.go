package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemRecordsAppendQuery(t *testing.T) {
	prevNow := nowFunc
	nowFunc = func() time.Time { return time.Date(2023, 11, 9, 21, 20, 0, 0, time.UTC) }
	defer func() { nowFunc = prevNow }()

	ctx := context.Background()
	rs := NewMemRecords()

	if _, err := rs.QueryByUsername(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty log, got %v", err)
	}

	rec, err := rs.Append(ctx, "Alice", "0xABCDEF", map[string]interface{}{"bio": "hi"})
	if err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("expected an assigned ID")
	}
	if rec.Username != "alice" || rec.Owner != "0xabcdef" {
		t.Errorf("expected normalized record, got %s / %s", rec.Username, rec.Owner)
	}
	if rec.Timestamp != 1699564800000 {
		t.Errorf("timestamp mismatch: %d", rec.Timestamp)
	}

	got, err := rs.QueryByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != rec.ID || got.Metadata["bio"] != "hi" {
		t.Errorf("query returned %#v", got)
	}

	// mutating a returned record must not touch the log
	got.Metadata["bio"] = "changed"
	again, _ := rs.QueryByUsername(ctx, "alice")
	if again.Metadata["bio"] != "hi" {
		t.Error("stored record was mutated through a returned copy")
	}

	// the most recent record wins
	second, err := rs.Append(ctx, "alice", "0x0000", nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.ID == rec.ID {
		t.Error("identical payloads must receive distinct IDs")
	}
	latest, _ := rs.QueryByUsername(ctx, "alice")
	if latest.ID != second.ID {
		t.Errorf("expected latest record %s, got %s", second.ID, latest.ID)
	}
}

func TestMemRecordsList(t *testing.T) {
	ctx := context.Background()
	rs := NewMemRecords()
	for i := 0; i < 5; i++ {
		if _, err := rs.Append(ctx, fmt.Sprintf("user_%d", i), "0x1", nil); err != nil {
			t.Fatal(err)
		}
	}

	all, err := rs.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 records, got %d", len(all))
	}
	if all[0].Username != "user_4" {
		t.Errorf("expected newest first, got %s", all[0].Username)
	}

	two, _ := rs.List(ctx, 2)
	if len(two) != 2 {
		t.Errorf("expected limit of 2, got %d", len(two))
	}
}

func TestMemRecordsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rs := NewMemRecords()

	if _, err := rs.QueryByUsername(ctx, "alice"); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("expected ErrBackendUnavailable, got %v", err)
	}
	if _, err := rs.Append(ctx, "alice", "0x1", nil); !errors.Is(err, ErrUploadFailed) {
		t.Errorf("expected ErrUploadFailed, got %v", err)
	}
	if rs.Len() != 0 {
		t.Error("cancelled append must not write")
	}
}

func TestMemRecordsConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	rs := NewMemRecords()
	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := rs.Append(ctx, fmt.Sprintf("name_%d", i), "0x1", nil); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	if rs.Len() != 50 {
		t.Errorf("expected 50 records, got %d", rs.Len())
	}
}
