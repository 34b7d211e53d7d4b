package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/core/domain"
	"github.com/carebridge/patient-platform/internal/core/ports"
)

// stubPatientRepo keeps patients in a map keyed by id.
type stubPatientRepo struct {
	patients  map[string]*domain.Patient
	createErr error
	nextID    int
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[string]*domain.Patient)}
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	cp := *p
	cp.ID = fmt.Sprintf("p-%d", r.nextID)
	r.patients[cp.ID] = &cp
	return &cp, nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, domain.ErrPatientNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubPatientRepo) List(_ context.Context) ([]*domain.Patient, error) {
	out := make([]*domain.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		if !p.Deleted {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubPatientRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	for _, p := range r.patients {
		if p.Email == email && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPatientRepo) Update(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	if _, ok := r.patients[p.ID]; !ok {
		return nil, domain.ErrPatientNotFound
	}
	cp := *p
	r.patients[p.ID] = &cp
	return &cp, nil
}

type stubBilling struct {
	calls int
	err   error
}

func (b *stubBilling) CreateBillingAccount(_ context.Context, _, _, _ string) error {
	b.calls++
	return b.err
}

type stubPublisher struct {
	events []domain.PatientEvent
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, event domain.PatientEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func newPatientFixture() (*stubPatientRepo, *stubBilling, *stubPublisher, ports.PatientService) {
	repo := newStubPatientRepo()
	billing := &stubBilling{}
	publisher := &stubPublisher{}
	svc := NewPatientService(repo, billing, publisher, zerolog.Nop())
	return repo, billing, publisher, svc
}

func samplePatient() ports.PatientInput {
	return ports.PatientInput{
		Name:        "John Doe",
		Email:       "john@example.com",
		Address:     "12 Main St",
		DateOfBirth: "1980-04-02",
		Gender:      "MALE",
		BloodGroup:  "O+",
	}
}

func TestCreatePatient_PublishesEventAndBills(t *testing.T) {
	_, billing, publisher, svc := newPatientFixture()

	created, err := svc.CreatePatient(context.Background(), samplePatient())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if created.RegisteredDate.IsZero() {
		t.Fatalf("expected registered date to be set")
	}
	if billing.calls != 1 {
		t.Fatalf("expected one billing call, got %d", billing.calls)
	}
	if len(publisher.events) != 1 || publisher.events[0].EventType != domain.EventPatientCreated {
		t.Fatalf("expected a %s event, got %+v", domain.EventPatientCreated, publisher.events)
	}
	if publisher.events[0].PatientID != created.ID {
		t.Fatalf("event carries wrong patient id: %q", publisher.events[0].PatientID)
	}
}

func TestCreatePatient_DuplicateEmail(t *testing.T) {
	_, billing, publisher, svc := newPatientFixture()

	if _, err := svc.CreatePatient(context.Background(), samplePatient()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.CreatePatient(context.Background(), samplePatient())
	if !errors.Is(err, domain.ErrPatientEmailTaken) {
		t.Fatalf("expected ErrPatientEmailTaken, got %v", err)
	}
	if billing.calls != 1 {
		t.Fatalf("billing must not be called for the rejected create")
	}
	if len(publisher.events) != 1 {
		t.Fatalf("no event expected for the rejected create")
	}
}

func TestCreatePatient_BillingFailureIsNotFatal(t *testing.T) {
	repo := newStubPatientRepo()
	billing := &stubBilling{err: errors.New("billing unreachable")}
	publisher := &stubPublisher{}
	svc := NewPatientService(repo, billing, publisher, zerolog.Nop())

	created, err := svc.CreatePatient(context.Background(), samplePatient())
	if err != nil {
		t.Fatalf("billing failure must not fail the create: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); err != nil {
		t.Fatalf("patient should be persisted: %v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("event should still be published")
	}
}

func TestCreatePatient_PublishFailureIsNotFatal(t *testing.T) {
	repo := newStubPatientRepo()
	publisher := &stubPublisher{err: errors.New("broker down")}
	svc := NewPatientService(repo, &stubBilling{}, publisher, zerolog.Nop())

	if _, err := svc.CreatePatient(context.Background(), samplePatient()); err != nil {
		t.Fatalf("publish failure must not fail the create: %v", err)
	}
}

func TestUpdatePatient_EmailTakenByAnother(t *testing.T) {
	_, _, _, svc := newPatientFixture()

	first, _ := svc.CreatePatient(context.Background(), samplePatient())
	other := samplePatient()
	other.Email = "jane@example.com"
	if _, err := svc.CreatePatient(context.Background(), other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := samplePatient()
	in.Email = "jane@example.com"
	_, err := svc.UpdatePatient(context.Background(), first.ID, in)
	if !errors.Is(err, domain.ErrPatientEmailTaken) {
		t.Fatalf("expected ErrPatientEmailTaken, got %v", err)
	}
}

func TestUpdatePatient_KeepingOwnEmail(t *testing.T) {
	_, _, publisher, svc := newPatientFixture()

	created, _ := svc.CreatePatient(context.Background(), samplePatient())

	in := samplePatient()
	in.Address = "99 Elm St"
	updated, err := svc.UpdatePatient(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("updating without changing email must succeed: %v", err)
	}
	if updated.Address != "99 Elm St" {
		t.Fatalf("address not updated: %q", updated.Address)
	}
	last := publisher.events[len(publisher.events)-1]
	if last.EventType != domain.EventPatientUpdated {
		t.Fatalf("expected %s event, got %s", domain.EventPatientUpdated, last.EventType)
	}
}

func TestDeletePatient_SoftDeletes(t *testing.T) {
	repo, _, publisher, svc := newPatientFixture()

	created, _ := svc.CreatePatient(context.Background(), samplePatient())
	if err := svc.DeletePatient(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.patients[created.ID]
	if !stored.Deleted || stored.DeletedAt == nil {
		t.Fatalf("expected a soft delete, got %+v", stored)
	}
	last := publisher.events[len(publisher.events)-1]
	if last.EventType != domain.EventPatientDeleted {
		t.Fatalf("expected %s event, got %s", domain.EventPatientDeleted, last.EventType)
	}

	// A second delete of the same record behaves like a missing record.
	if err := svc.DeletePatient(context.Background(), created.ID); !errors.Is(err, domain.ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound on double delete, got %v", err)
	}
}

func TestRestorePatient(t *testing.T) {
	repo, _, publisher, svc := newPatientFixture()

	created, _ := svc.CreatePatient(context.Background(), samplePatient())

	// Restoring a live record is a conflict.
	if _, err := svc.RestorePatient(context.Background(), created.ID); !errors.Is(err, domain.ErrPatientNotDeleted) {
		t.Fatalf("expected ErrPatientNotDeleted, got %v", err)
	}

	if err := svc.DeletePatient(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored, err := svc.RestorePatient(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Deleted || restored.DeletedAt != nil {
		t.Fatalf("record should be live again: %+v", restored)
	}
	if stored := repo.patients[created.ID]; stored.Deleted {
		t.Fatalf("store still marks the record deleted")
	}
	last := publisher.events[len(publisher.events)-1]
	if last.EventType != domain.EventPatientRestored {
		t.Fatalf("expected %s event, got %s", domain.EventPatientRestored, last.EventType)
	}
}

func TestListPatients_ExcludesDeleted(t *testing.T) {
	_, _, _, svc := newPatientFixture()

	first, _ := svc.CreatePatient(context.Background(), samplePatient())
	other := samplePatient()
	other.Email = "jane@example.com"
	if _, err := svc.CreatePatient(context.Background(), other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeletePatient(context.Background(), first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patients, err := svc.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) != 1 || patients[0].Email != "jane@example.com" {
		t.Fatalf("expected only the live patient, got %+v", patients)
	}
}
