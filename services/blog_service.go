package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/auth"
	"inkpress/internal/logger"
	"inkpress/models"
	"inkpress/repositories"
)

var (
	ErrBlogNotFound    = errors.New("blog not found")
	ErrMissingSelector = errors.New("please provide either an id or slug")
	ErrInvalidStatus   = errors.New("invalid status, must be: draft, published, or archived")
	ErrInvalidInput    = errors.New("invalid input")
)

const (
	titleMaxRunes   = 200
	excerptMaxInput = 500
)

// BlogStore is the persistence surface BlogService needs for blog
// documents. *repositories.BlogRepository satisfies it.
type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) (*mongo.InsertOneResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	SlugExists(ctx context.Context, slug string, excludeID primitive.ObjectID) (bool, error)
	List(ctx context.Context, opt repositories.ListBlogsOptions) ([]models.Blog, int64, error)
	Distinct(ctx context.Context, field, status string) ([]string, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// ImageCleaner removes hosted images in a settled batch; used for the
// cascading cleanup on blog delete.
type ImageCleaner interface {
	DeleteAll(ctx context.Context, publicIDs []string) []ImageDeleteResult
}

// BlogService layers the blog lifecycle rules on top of the repository:
// slug derivation and uniqueness, excerpt/read-time derivation, publish
// timestamping, view counting and cascading image cleanup.
type BlogService struct {
	blogs  BlogStore
	users  UserStore
	images ImageCleaner
}

func NewBlogService(blogs BlogStore, users UserStore, images ImageCleaner) *BlogService {
	return &BlogService{blogs: blogs, users: users, images: images}
}

// MetadataInput carries caller-supplied metadata fields. Nil fields are
// absent; the read time is always derived and never caller-controlled.
type MetadataInput struct {
	MetaDescription *string
	MetaKeywords    *[]string
}

type CreateBlogInput struct {
	Title         string
	Content       string
	Excerpt       string
	Slug          string
	FeaturedImage *models.Image
	Images        []models.Image
	Status        string
	Tags          []string
	Categories    []string
	Metadata      MetadataInput
}

// FeaturedImagePatch is a featured-image replacement. A non-nil patch with
// a nil Image clears the stored image; an absent (nil) patch leaves it
// unchanged.
type FeaturedImagePatch struct {
	Image *models.Image
}

// UpdateBlogInput uses pointer fields so that "absent" and "set to an
// empty value" stay distinguishable: nil fields are left unchanged, non-nil
// fields are applied even when they point at a zero value.
type UpdateBlogInput struct {
	ID            string
	Title         *string
	Content       *string
	Excerpt       *string
	Slug          *string
	FeaturedImage *FeaturedImagePatch
	Images        *[]models.Image
	Status        *string
	Tags          *[]string
	Categories    *[]string
	Metadata      *MetadataInput
}

func validateCreateInput(in CreateBlogInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(in.Title)) > titleMaxRunes {
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrInvalidInput, titleMaxRunes)
	}
	if in.Content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len([]rune(in.Excerpt)) > excerptMaxInput {
		return fmt.Errorf("%w: excerpt cannot exceed %d characters", ErrInvalidInput, excerptMaxInput)
	}
	return nil
}

// Create persists a new blog post authored by authorID and returns it with
// the author populated.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput, authorID string) (*models.Blog, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusDraft
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create blog: invalid author id %q", authorID)
	}

	blog := &models.Blog{
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Slug:          strings.ToLower(in.Slug),
		FeaturedImage: in.FeaturedImage,
		Images:        in.Images,
		AuthorID:      author,
		Status:        status,
		Tags:          lowercaseAll(in.Tags),
		Categories:    lowercaseAll(in.Categories),
	}

	if in.Metadata.MetaDescription != nil {
		blog.Metadata.MetaDescription = *in.Metadata.MetaDescription
	}
	if in.Metadata.MetaKeywords != nil {
		blog.Metadata.MetaKeywords = *in.Metadata.MetaKeywords
	}

	// Publish timestamp is set on initial publish.
	if status == models.StatusPublished {
		now := time.Now()
		blog.PublishedAt = &now
	}

	if blog.Slug == "" {
		blog.Slug = Slugify(blog.Title)
	}
	if blog.Slug == "" {
		return nil, fmt.Errorf("%w: a url slug could not be derived from the title", ErrInvalidInput)
	}
	blog.Metadata.ReadTime = ReadTime(blog.Content)
	if blog.Excerpt == "" {
		blog.Excerpt = DeriveExcerpt(blog.Content)
	}
	if blog.Metadata.MetaDescription == "" {
		blog.Metadata.MetaDescription = DeriveMetaDescription(blog.Excerpt)
	}

	if err := s.ensureUniqueSlug(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	if _, err := s.blogs.Insert(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	if err := s.populateAuthor(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}
	return blog, nil
}

// Update applies a partial update and returns the updated blog with the
// author populated.
func (s *BlogService) Update(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	id, err := primitive.ObjectIDFromHex(in.ID)
	if err != nil {
		return nil, ErrBlogNotFound
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	if in.Status != nil && !models.ValidStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		if len([]rune(*in.Title)) > titleMaxRunes {
			return nil, fmt.Errorf("%w: title cannot exceed %d characters", ErrInvalidInput, titleMaxRunes)
		}
	}
	if in.Excerpt != nil && len([]rune(*in.Excerpt)) > excerptMaxInput {
		return nil, fmt.Errorf("%w: excerpt cannot exceed %d characters", ErrInvalidInput, excerptMaxInput)
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) == "" {
		return nil, fmt.Errorf("%w: slug cannot be empty", ErrInvalidInput)
	}

	titleChanged := in.Title != nil && *in.Title != blog.Title
	contentChanged := in.Content != nil && *in.Content != blog.Content
	slugSupplied := in.Slug != nil
	excerptChanged := in.Excerpt != nil

	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.Excerpt != nil {
		blog.Excerpt = *in.Excerpt
	}
	if in.Slug != nil {
		blog.Slug = strings.ToLower(*in.Slug)
	}
	if in.FeaturedImage != nil {
		blog.FeaturedImage = in.FeaturedImage.Image
	}
	if in.Images != nil {
		blog.Images = *in.Images
	}
	if in.Tags != nil {
		blog.Tags = lowercaseAll(*in.Tags)
	}
	if in.Categories != nil {
		blog.Categories = lowercaseAll(*in.Categories)
	}

	if in.Status != nil {
		wasPublished := blog.Status == models.StatusPublished
		blog.Status = *in.Status

		// The publish timestamp is stamped on the first transition into
		// published and never cleared afterwards.
		if *in.Status == models.StatusPublished && !wasPublished && blog.PublishedAt == nil {
			now := time.Now()
			blog.PublishedAt = &now
		}
	}

	// Metadata merges field by field instead of replacing the object.
	if in.Metadata != nil {
		if in.Metadata.MetaDescription != nil {
			blog.Metadata.MetaDescription = *in.Metadata.MetaDescription
		}
		if in.Metadata.MetaKeywords != nil {
			blog.Metadata.MetaKeywords = *in.Metadata.MetaKeywords
		}
	}

	slugChanged := slugSupplied
	if titleChanged && !slugSupplied {
		derived := Slugify(blog.Title)
		if derived == "" {
			return nil, fmt.Errorf("%w: a url slug could not be derived from the title", ErrInvalidInput)
		}
		// Re-slug from the new title. Existing documents always get a
		// timestamp suffix here, matching the observed behavior even
		// though it produces a new slug on every title edit.
		blog.Slug = timestampSlug(derived)
		slugChanged = true
	}

	if contentChanged {
		blog.Metadata.ReadTime = ReadTime(blog.Content)
		if blog.Excerpt == "" {
			blog.Excerpt = DeriveExcerpt(blog.Content)
			excerptChanged = true
		}
	}
	if excerptChanged && blog.Metadata.MetaDescription == "" {
		blog.Metadata.MetaDescription = DeriveMetaDescription(blog.Excerpt)
	}

	if slugChanged {
		if err := s.ensureUniqueSlug(ctx, blog); err != nil {
			return nil, fmt.Errorf("failed to update blog: %w", err)
		}
	}

	updates := map[string]interface{}{
		"title":          blog.Title,
		"content":        blog.Content,
		"excerpt":        blog.Excerpt,
		"slug":           blog.Slug,
		"featured_image": blog.FeaturedImage,
		"images":         blog.Images,
		"status":         blog.Status,
		"tags":           blog.Tags,
		"categories":     blog.Categories,
		"published_at":   blog.PublishedAt,
		"metadata":       blog.Metadata,
	}
	if err := s.blogs.UpdateFields(ctx, blog.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}

	if err := s.populateAuthor(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return blog, nil
}

// DeleteBlogResult reports the cascading cleanup outcome alongside the
// primary delete. Cleanup failures are logged, not propagated.
type DeleteBlogResult struct {
	Cleanup []ImageDeleteResult
}

// Delete removes a blog and best-effort deletes its hosted images. Image
// deletion failures are logged and swallowed; a failure of the document
// delete itself is fatal.
func (s *BlogService) Delete(ctx context.Context, idHex string) (*DeleteBlogResult, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrBlogNotFound
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete blog: %w", err)
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	var publicIDs []string
	if blog.FeaturedImage != nil && blog.FeaturedImage.PublicID != "" {
		publicIDs = append(publicIDs, blog.FeaturedImage.PublicID)
	}
	for _, img := range blog.Images {
		if img.PublicID != "" {
			publicIDs = append(publicIDs, img.PublicID)
		}
	}

	result := &DeleteBlogResult{}
	if len(publicIDs) > 0 {
		result.Cleanup = s.images.DeleteAll(ctx, publicIDs)
		for _, r := range result.Cleanup {
			if r.Err != nil {
				logger.ErrorWithFields("failed to delete hosted image during blog delete", logger.Fields{
					"blog_id":   blog.ID.Hex(),
					"public_id": r.PublicID,
					"error":     r.Err.Error(),
				})
			}
		}
	}

	if err := s.blogs.DeleteByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete blog: %w", err)
	}
	return result, nil
}

// Get returns a single blog by id or slug. The id wins when both are
// given. Anonymous callers only see published posts and bump the view
// counter; authenticated callers see everything and never count as a view.
func (s *BlogService) Get(ctx context.Context, idHex, slug string, p *auth.Principal) (*models.Blog, error) {
	var blog *models.Blog
	var err error

	switch {
	case idHex != "":
		id, idErr := primitive.ObjectIDFromHex(idHex)
		if idErr != nil {
			return nil, ErrBlogNotFound
		}
		blog, err = s.blogs.FindByID(ctx, id)
	case slug != "":
		blog, err = s.blogs.FindBySlug(ctx, slug)
	default:
		return nil, ErrMissingSelector
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching blog: %w", err)
	}
	if blog == nil {
		return nil, ErrBlogNotFound
	}

	// Unpublished posts are indistinguishable from missing ones for
	// anonymous callers.
	if p == nil && blog.Status != models.StatusPublished {
		return nil, ErrBlogNotFound
	}

	if p == nil && blog.Status == models.StatusPublished {
		if err := s.blogs.IncrementViews(ctx, blog.ID); err != nil {
			return nil, fmt.Errorf("error fetching blog: %w", err)
		}
		blog.Views++
	}

	if err := s.populateAuthor(ctx, blog); err != nil {
		return nil, fmt.Errorf("error fetching blog: %w", err)
	}
	return blog, nil
}

type ListBlogsInput struct {
	Status   string
	Tag      string
	Category string
	Search   string
	Page     int
	Limit    int
}

// BlogPage is a page of blogs plus pagination bookkeeping.
type BlogPage struct {
	Blogs      []models.Blog
	TotalCount int64
	HasMore    bool
	Page       int
	TotalPages int
}

// List returns a filtered, paginated page of blogs. Anonymous callers are
// always restricted to published posts regardless of the requested status.
func (s *BlogService) List(ctx context.Context, in ListBlogsInput, p *auth.Principal) (*BlogPage, error) {
	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 10
	}

	status := in.Status
	if p == nil {
		status = models.StatusPublished
	}

	opt := repositories.ListBlogsOptions{
		Status:   status,
		Tag:      strings.ToLower(in.Tag),
		Category: strings.ToLower(in.Category),
		Search:   in.Search,
		Skip:     int64(page-1) * int64(limit),
		Limit:    int64(limit),
	}

	blogs, total, err := s.blogs.List(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("error fetching blogs: %w", err)
	}

	if err := s.populateAuthors(ctx, blogs); err != nil {
		return nil, fmt.Errorf("error fetching blogs: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &BlogPage{
		Blogs:      blogs,
		TotalCount: total,
		HasMore:    page < totalPages,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Tags returns the distinct non-empty tags, scoped to published posts for
// anonymous callers.
func (s *BlogService) Tags(ctx context.Context, p *auth.Principal) ([]string, error) {
	return s.distinctNonEmpty(ctx, "tags", p)
}

// Categories returns the distinct non-empty categories, scoped to
// published posts for anonymous callers.
func (s *BlogService) Categories(ctx context.Context, p *auth.Principal) ([]string, error) {
	return s.distinctNonEmpty(ctx, "categories", p)
}

func (s *BlogService) distinctNonEmpty(ctx context.Context, field string, p *auth.Principal) ([]string, error) {
	status := ""
	if p == nil {
		status = models.StatusPublished
	}
	values, err := s.blogs.Distinct(ctx, field, status)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", field, err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

// ensureUniqueSlug appends a timestamp suffix when the computed slug
// collides with a different document.
func (s *BlogService) ensureUniqueSlug(ctx context.Context, blog *models.Blog) error {
	exists, err := s.blogs.SlugExists(ctx, blog.Slug, blog.ID)
	if err != nil {
		return err
	}
	if exists {
		blog.Slug = timestampSlug(blog.Slug)
	}
	return nil
}

func (s *BlogService) populateAuthor(ctx context.Context, blog *models.Blog) error {
	user, err := s.users.FindByID(ctx, blog.AuthorID)
	if err != nil {
		return err
	}
	blog.Author = user
	return nil
}

func (s *BlogService) populateAuthors(ctx context.Context, blogs []models.Blog) error {
	cache := map[primitive.ObjectID]*models.User{}
	for i := range blogs {
		user, ok := cache[blogs[i].AuthorID]
		if !ok {
			var err error
			user, err = s.users.FindByID(ctx, blogs[i].AuthorID)
			if err != nil {
				return err
			}
			cache[blogs[i].AuthorID] = user
		}
		blogs[i].Author = user
	}
	return nil
}
