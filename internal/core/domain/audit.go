package domain

import "time"

// Patient lifecycle event types carried on the audit exchange.
const (
	EventPatientCreated  = "PATIENT_CREATED"
	EventPatientUpdated  = "PATIENT_UPDATED"
	EventPatientDeleted  = "PATIENT_DELETED"
	EventPatientRestored = "PATIENT_RESTORED"
)

// PatientEvent is a domain event emitted by the records service whenever a
// patient record changes.
type PatientEvent struct {
	PatientID  string    `json:"patient_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AuditEvent is the persisted audit-trail entry derived from a PatientEvent.
type AuditEvent struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	PatientEmail  string    `json:"patient_email"`
	EventType     string    `json:"event_type"`
	EventTime     time.Time `json:"event_timestamp"`
	SourceService string    `json:"source_service"`
}
