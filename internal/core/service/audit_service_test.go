package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

type stubAuditRepo struct {
	entries   []*domain.AuditEvent
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, event)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int) ([]*domain.AuditEvent, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
	markErr  error
	marks    int
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(patientID, eventType string, ts time.Time) string {
	return patientID + "|" + eventType + "|" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, patientID, eventType string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(patientID, eventType, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, patientID, eventType string, ts time.Time) error {
	d.marks++
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[d.key(patientID, eventType, ts)] = true
	return nil
}

func sampleEvent() domain.PatientEvent {
	return domain.PatientEvent{
		PatientID:  "p-1",
		Name:       "John Doe",
		Email:      "john@example.com",
		EventType:  domain.EventPatientCreated,
		OccurredAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestProcess_RecordsEvent(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(repo.entries))
	}

	entry := repo.entries[0]
	if entry.PatientID != "p-1" || entry.EventType != domain.EventPatientCreated {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.SourceService != "records-service" {
		t.Fatalf("unexpected source service: %q", entry.SourceService)
	}
}

func TestProcess_SkipsDuplicateDelivery(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	event := sampleEvent()
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("duplicate delivery must be silently skipped: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("duplicate was recorded, entries: %d", len(repo.entries))
	}
}

func TestProcess_DistinctTimestampsAreNotDuplicates(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	first := sampleEvent()
	second := sampleEvent()
	second.OccurredAt = first.OccurredAt.Add(time.Second)

	if err := svc.Process(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Process(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.entries) != 2 {
		t.Fatalf("expected two entries, got %d", len(repo.entries))
	}
}

func TestProcess_DedupCheckFailureStillProcesses(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("a dedup outage must not drop events: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected the event to be recorded, got %d entries", len(repo.entries))
	}
}

func TestProcess_MarkFailureStillProcesses(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.markErr = errors.New("redis down")
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("a mark failure must not drop events: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected the event to be recorded, got %d entries", len(repo.entries))
	}
}

func TestProcess_InsertFailureSurfaces(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("mongo unavailable")}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Process(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected the insert failure to surface for redelivery")
	}
}
