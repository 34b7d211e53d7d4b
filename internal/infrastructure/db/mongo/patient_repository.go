package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

const patientCollection = "patients"

// PatientRepository persists patient records in MongoDB.
type PatientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{coll: db.Collection(patientCollection)}
}

// EnsureIndexes creates the unique patient email index. Call once at startup.
func (r *PatientRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure patient indexes: %w", err)
	}
	return nil
}

func (r *PatientRepository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	created := *p
	created.ID = uuid.NewString()

	if _, err := r.coll.InsertOne(ctx, &created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPatientEmailTaken
		}
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return &created, nil
}

func (r *PatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	var p domain.Patient
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]*domain.Patient, error) {
	cursor, err := r.coll.Find(ctx,
		bson.M{"deleted": bson.M{"$ne": true}},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []*domain.Patient
	for cursor.Next(ctx) {
		var p domain.Patient
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode patient: %w", err)
		}
		patients = append(patients, &p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	filter := bson.M{"email": email}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count patients by email: %w", err)
	}
	return n > 0, nil
}

func (r *PatientRepository) Update(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPatientEmailTaken
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrPatientNotFound
	}
	return p, nil
}
