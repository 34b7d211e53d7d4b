package domain

import "time"

// Patient is the aggregate managed by the records service.
type Patient struct {
	ID             string     `json:"id" bson:"_id,omitempty"`
	Name           string     `json:"name" bson:"name"`
	Email          string     `json:"email" bson:"email"`
	Address        string     `json:"address" bson:"address"`
	DateOfBirth    string     `json:"date_of_birth" bson:"date_of_birth"`
	Gender         string     `json:"gender" bson:"gender"`
	BloodGroup     string     `json:"blood_group,omitempty" bson:"blood_group,omitempty"`
	RegisteredDate time.Time  `json:"registered_date" bson:"registered_date"`
	Deleted        bool       `json:"deleted" bson:"deleted"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
}
