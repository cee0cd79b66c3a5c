package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()
	l := New()
	for i := 1; i <= 3; i++ {
		id := l.Append(DeliveryRecord{CompanyName: fmt.Sprintf("c%d", i), Status: StatusSent})
		if id != i {
			t.Fatalf("Append #%d returned id %d", i, id)
		}
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d", l.Len())
	}
}

func TestRecentOrderAndWindow(t *testing.T) {
	t.Parallel()
	l := New()
	for i := 1; i <= 3; i++ {
		l.Append(DeliveryRecord{CompanyName: fmt.Sprintf("c%d", i)})
	}

	got := l.Recent(10)
	if len(got) != 3 {
		t.Fatalf("Recent(10) returned %d records", len(got))
	}
	// Insertion order, most recent last.
	for i, rec := range got {
		if rec.ID != i+1 {
			t.Fatalf("Recent[%d].ID = %d, want %d", i, rec.ID, i+1)
		}
	}

	got = l.Recent(2)
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("Recent(2) = %v, want records 2 and 3", got)
	}

	if got := l.Recent(0); len(got) != 3 {
		t.Fatalf("Recent(0) should return all, got %d", len(got))
	}
}

func TestAppendSetsTimestamp(t *testing.T) {
	t.Parallel()
	l := New()
	l.Append(DeliveryRecord{})
	if l.Recent(1)[0].Timestamp.IsZero() {
		t.Fatal("zero timestamp should be filled in")
	}

	at := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	l.Append(DeliveryRecord{Timestamp: at})
	if !l.Recent(1)[0].Timestamp.Equal(at) {
		t.Fatal("explicit timestamp should be kept")
	}
}

func TestRecentCopiesRecords(t *testing.T) {
	t.Parallel()
	l := New()
	l.Append(DeliveryRecord{CompanyName: "Acme"})
	got := l.Recent(1)
	got[0].CompanyName = "mutated"
	if l.Recent(1)[0].CompanyName != "Acme" {
		t.Fatal("Recent must return a copy")
	}
}

func TestConcurrentAppends(t *testing.T) {
	t.Parallel()
	l := New()
	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			l.Append(DeliveryRecord{Status: StatusSent})
		}()
	}
	wg.Wait()

	got := l.Recent(0)
	if len(got) != n {
		t.Fatalf("got %d records, want %d", len(got), n)
	}
	seen := map[int]bool{}
	for _, rec := range got {
		if seen[rec.ID] {
			t.Fatalf("duplicate id %d", rec.ID)
		}
		seen[rec.ID] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			t.Fatalf("missing id %d", i)
		}
	}
}
