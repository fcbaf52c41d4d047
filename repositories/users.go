package repositories

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Insert inserts a new user document. Emails are stored lowercased so the
// unique index enforces case-insensitive uniqueness.
func (r *UserRepository) Insert(ctx context.Context, u *models.User) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	u.Email = strings.ToLower(u.Email)
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return res, nil
}

// FindByEmail returns a user by email (case-insensitive). Returns
// (nil, nil) when no user matches.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a user by its ObjectID. Returns (nil, nil) when no user
// matches.
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetLastLogin stamps the last_login field.
func (r *UserRepository) SetLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"last_login": at, "updated_at": time.Now()},
	})
	return err
}
