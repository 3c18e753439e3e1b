package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-forge/internal/logger"
	"resume-forge/internal/services/resumes"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ResumesRepo implements the resumes.Repository interface for MongoDB
type ResumesRepo struct {
	collection *mongo.Collection
}

// NewResumesRepo creates a new resumes repository
func NewResumesRepo(parentCtx context.Context, db *mongo.Database) (*ResumesRepo, error) {
	collection := db.Collection("resumes")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "_id", Value: -1},
			},
		},
		// The save route upserts on user_id alone; the unique index makes
		// two racing first saves collapse into one document.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_unique"),
		},
	}

	ctx, cancel := context.WithTimeout(parentCtx, OpTimeout)
	defer cancel()

	for _, indexModel := range indexes {
		_, err := collection.Indexes().CreateOne(ctx, indexModel)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				logger.L().Debug("index already exists, continuing", "collection", "resumes")
			} else {
				logger.L().Error("failed to create index", "collection", "resumes", "error", err)
				return nil, fmt.Errorf("failed to create resumes collection index: %w", err)
			}
		}
	}

	return &ResumesRepo{collection: collection}, nil
}

// translateResumeNotFound maps the driver ErrNoDocuments to the domain-level error.
func translateResumeNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return resumes.ErrResumeNotFound
	}
	return err
}

// Upsert atomically writes the user's single resume, creating it when absent.
// Last write wins. The returned bool is true when a new document was created.
func (r *ResumesRepo) Upsert(ctx context.Context, userID bson.ObjectID, resume *resumes.Resume) (*resumes.Resume, bool, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"personal_details": resume.PersonalDetails,
			"education":        resume.Education,
			"experience":       resume.Experience,
			"skills":           resume.Skills,
			"projects":         resume.Projects,
			"certifications":   resume.Certifications,
			"template":         resume.Template,
			"name":             resume.Name,
			"last_modified":    resume.LastModified,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"user_id":    userID,
			"created_at": now,
		},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return nil, false, err
	}
	created := res.UpsertedID != nil

	var saved resumes.Resume
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&saved); err != nil {
		return nil, created, translateResumeNotFound(err)
	}
	return &saved, created, nil
}

// List returns all resumes owned by userID, newest first.
func (r *ResumesRepo) List(ctx context.Context, userID bson.ObjectID) ([]*resumes.Resume, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*resumes.Resume, 0)
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID returns one resume scoped to its owner.
func (r *ResumesRepo) FindByID(ctx context.Context, userID, resumeID bson.ObjectID) (*resumes.Resume, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var resume resumes.Resume
	err := r.collection.FindOne(ctx, bson.M{"_id": resumeID, "user_id": userID}).Decode(&resume)
	if err != nil {
		return nil, translateResumeNotFound(err)
	}
	return &resume, nil
}

// Delete removes one resume scoped to its owner.
func (r *ResumesRepo) Delete(ctx context.Context, userID, resumeID bson.ObjectID) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": resumeID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return resumes.ErrResumeNotFound
	}
	return nil
}

// DeleteEmpty bulk-removes the user's resumes whose five structural arrays
// are all empty.
func (r *ResumesRepo) DeleteEmpty(ctx context.Context, userID bson.ObjectID) (int64, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"$and": []bson.M{
			{"education": bson.M{"$size": 0}},
			{"experience": bson.M{"$size": 0}},
			{"skills": bson.M{"$size": 0}},
			{"projects": bson.M{"$size": 0}},
			{"certifications": bson.M{"$size": 0}},
		},
	}

	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
