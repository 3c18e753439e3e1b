package mongo

import (
	"context"
	"errors"
	"time"

	"resume-forge/internal/services/auth"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersRepo implements the auth.UsersRepo interface for MongoDB
type UsersRepo struct {
	collection *mongo.Collection
}

// NewUsersRepo creates a new users repository
func NewUsersRepo(db *mongo.Database) *UsersRepo {
	collection := db.Collection("users")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	ctx, cancel := context.WithTimeout(context.Background(), OpTimeout)
	defer cancel()

	// Ignore error if index already exists
	_, _ = collection.Indexes().CreateOne(ctx, indexModel)

	return &UsersRepo{
		collection: collection,
	}
}

// Create creates a new user in the database
func (r *UsersRepo) Create(ctx context.Context, user *auth.User) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrDuplicate
		}
		return err
	}

	return nil
}

// FindByEmail finds a user by email address
func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	return &user, nil
}

// FindByID finds a user by object id
func (r *UsersRepo) FindByID(ctx context.Context, id bson.ObjectID) (*auth.User, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	var user auth.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// FindByEmailAndCode matches a user holding an unexpired verification code.
// The expiry check happens in the filter so a stale code never matches.
func (r *UsersRepo) FindByEmailAndCode(ctx context.Context, email, code string, now time.Time) (*auth.User, error) {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	filter := bson.M{
		"email":             email,
		"verification_code": code,
		"code_expires_at":   bson.M{"$gt": now},
	}

	var user auth.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrInvalidCode
		}
		return nil, err
	}

	return &user, nil
}

// Update replaces the stored user document.
func (r *UsersRepo) Update(ctx context.Context, user *auth.User) error {
	ctx, cancel := repoCtx(ctx)
	defer cancel()

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
