package resumes

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Repository defines the interface for resumes repository operations.
type Repository interface {
	// Upsert atomically replaces the content of the caller's resume, or
	// inserts a new document when none exists. The filter is keyed on
	// user_id so two racing saves cannot create duplicates. The returned
	// flag is true when a new document was inserted.
	Upsert(ctx context.Context, userID bson.ObjectID, r *Resume) (*Resume, bool, error)

	List(ctx context.Context, userID bson.ObjectID) ([]*Resume, error)
	FindByID(ctx context.Context, userID, resumeID bson.ObjectID) (*Resume, error)
	Delete(ctx context.Context, userID, resumeID bson.ObjectID) error

	// DeleteEmpty removes all of the caller's resumes whose five structural
	// arrays are empty and returns the number removed.
	DeleteEmpty(ctx context.Context, userID bson.ObjectID) (int64, error)
}
