package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository persists audit-trail entries in MongoDB. Entries are
// append-only; nothing updates or deletes them.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID            string `bson:"_id"`
	PatientID     string `bson:"patient_id"`
	PatientName   string `bson:"patient_name"`
	PatientEmail  string `bson:"patient_email"`
	EventType     string `bson:"event_type"`
	EventTime     int64  `bson:"event_timestamp"`
	SourceService string `bson:"source_service"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := mongoAuditEvent{
		ID:            uuid.NewString(),
		PatientID:     event.PatientID,
		PatientName:   event.PatientName,
		PatientEmail:  event.PatientEmail,
		EventType:     event.EventType,
		EventTime:     event.EventTime.Unix(),
		SourceService: event.SourceService,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AuditEvent, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "event_timestamp", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.AuditEvent
	for cursor.Next(ctx) {
		var me mongoAuditEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, &domain.AuditEvent{
			ID:            me.ID,
			PatientID:     me.PatientID,
			PatientName:   me.PatientName,
			PatientEmail:  me.PatientEmail,
			EventType:     me.EventType,
			EventTime:     unixToTime(me.EventTime),
			SourceService: me.SourceService,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
