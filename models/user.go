package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
)

// User represents an administrative account
// Collection: users
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Role         string             `bson:"role" json:"role"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar       *Avatar            `bson:"avatar,omitempty" json:"avatar,omitempty"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
}

// Avatar is a hosted profile image reference
type Avatar struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
}
