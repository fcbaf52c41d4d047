package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog post statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ValidStatus reports whether s is a known blog status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Blog represents one post document
// Collection: blogs
type Blog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	Title         string             `bson:"title" json:"title"`
	Slug          string             `bson:"slug" json:"slug"`
	Content       string             `bson:"content" json:"content"`
	Excerpt       string             `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	FeaturedImage *Image             `bson:"featured_image,omitempty" json:"featured_image,omitempty"`
	Images        []Image            `bson:"images" json:"images"`
	AuthorID      primitive.ObjectID `bson:"author" json:"-"`
	Author        *User              `bson:"-" json:"author,omitempty"`
	Status        string             `bson:"status" json:"status"`
	Tags          []string           `bson:"tags" json:"tags"`
	Categories    []string           `bson:"categories" json:"categories"`
	PublishedAt   *time.Time         `bson:"published_at,omitempty" json:"published_at,omitempty"`
	Views         int64              `bson:"views" json:"views"`
	Metadata      BlogMetadata       `bson:"metadata" json:"metadata"`
}

// Image is a hosted image embedded in a blog post
type Image struct {
	URL      string `bson:"url" json:"url"`
	PublicID string `bson:"public_id" json:"public_id"`
	Alt      string `bson:"alt,omitempty" json:"alt,omitempty"`
	Caption  string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// BlogMetadata holds derived presentation metadata
type BlogMetadata struct {
	ReadTime        int      `bson:"read_time" json:"read_time"`
	MetaDescription string   `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	MetaKeywords    []string `bson:"meta_keywords,omitempty" json:"meta_keywords,omitempty"`
}
