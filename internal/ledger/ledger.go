// Package ledger keeps the in-memory history of past broadcasts.
//
// The ledger is append-only and bound to the process lifetime: a restart
// discards history. That is deliberate; there is no durability requirement.
package ledger

import (
	"sync"
	"time"
)

// StatusSent is the only status the ledger records. The pipeline does not
// distinguish partial failure in the record; per-channel counts are logged
// instead.
const StatusSent = "sent"

// DeliveryRecord summarizes one completed broadcast run.
type DeliveryRecord struct {
	ID             int       `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	CompanyName    string    `json:"company_name"`
	JobTitle       string    `json:"job_title"`
	RecipientCount int       `json:"student_count"`
	Status         string    `json:"status"`
}

// Ledger serializes appends so IDs stay monotonic even when two admin
// requests broadcast concurrently.
type Ledger struct {
	mu      sync.Mutex
	records []DeliveryRecord
}

func New() *Ledger { return &Ledger{} }

// Append assigns the next monotonic id, stores the record, and returns the id.
// The record's Timestamp is set to now when zero.
func (l *Ledger) Append(rec DeliveryRecord) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.ID = len(l.records) + 1
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	l.records = append(l.records, rec)
	return rec.ID
}

// Recent returns up to n records in insertion order, most recent last.
// n <= 0 returns all records.
func (l *Ledger) Recent(n int) []DeliveryRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := 0
	if n > 0 && len(l.records) > n {
		start = len(l.records) - n
	}
	out := make([]DeliveryRecord, len(l.records)-start)
	copy(out, l.records[start:])
	return out
}

// Len reports how many broadcasts have been recorded.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
