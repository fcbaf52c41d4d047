package repositories

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inkpress/models"
)

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection("blogs")}
}

// Insert inserts a new blog document.
func (r *BlogRepository) Insert(ctx context.Context, b *models.Blog) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	if b.Images == nil {
		b.Images = []models.Image{}
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	if b.Categories == nil {
		b.Categories = []string{}
	}
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return res, nil
}

// FindByID returns a blog by its ObjectID. Returns (nil, nil) when no
// document matches.
func (r *BlogRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindBySlug returns a blog by slug. Returns (nil, nil) when no document
// matches.
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var b models.Blog
	err := r.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SlugExists reports whether another document (different from excludeID)
// already uses the given slug.
func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slug}
	if !excludeID.IsZero() {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	err := r.col.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return err == nil, err
}

// ListBlogsOptions is a conjunction of optional store-level predicates.
// Empty fields are skipped. The caller decides the policy (status forcing,
// lowercasing); this layer only translates predicates into a query.
type ListBlogsOptions struct {
	Status   string
	Tag      string
	Category string
	Search   string
	Skip     int64
	Limit    int64
}

func (r *BlogRepository) buildFilter(opt ListBlogsOptions) bson.M {
	filter := bson.M{}
	if opt.Status != "" {
		filter["status"] = opt.Status
	}
	if opt.Tag != "" {
		filter["tags"] = opt.Tag
	}
	if opt.Category != "" {
		filter["categories"] = opt.Category
	}
	if opt.Search != "" {
		// Case-insensitive substring match over title/content/excerpt.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(opt.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"title": re},
			{"content": re},
			{"excerpt": re},
		}
	}
	return filter
}

// List returns blogs matching the options plus the total match count,
// sorted by published_at desc then created_at desc.
func (r *BlogRepository) List(ctx context.Context, opt ListBlogsOptions) ([]models.Blog, int64, error) {
	filter := r.buildFilter(opt)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSkip(opt.Skip).SetLimit(opt.Limit).SetSort(bson.D{
		{Key: "published_at", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var results []models.Blog
	for cur.Next(ctx) {
		var b models.Blog
		if err := cur.Decode(&b); err != nil {
			return nil, 0, err
		}
		results = append(results, b)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Distinct returns the distinct values of a field across documents matching
// the given status ("" matches all statuses).
func (r *BlogRepository) Distinct(ctx context.Context, field, status string) ([]string, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	raw, err := r.col.Distinct(ctx, field, filter)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// UpdateFields applies a partial $set update plus updated_at.
func (r *BlogRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// IncrementViews increments the views counter by 1.
func (r *BlogRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$inc": bson.M{"views": 1},
	})
	return err
}

// DeleteByID removes a blog document.
func (r *BlogRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
