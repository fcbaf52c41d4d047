package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inkpress/auth"
	"inkpress/models"
	"inkpress/repositories"
)

// fakeBlogStore keeps blogs in insertion order so List pagination is
// deterministic.
type fakeBlogStore struct {
	blogs []*models.Blog
}

func (f *fakeBlogStore) Insert(_ context.Context, b *models.Blog) (*mongo.InsertOneResult, error) {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	stored := *b
	f.blogs = append(f.blogs, &stored)
	return &mongo.InsertOneResult{InsertedID: b.ID}, nil
}

func (f *fakeBlogStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Blog, error) {
	for _, b := range f.blogs {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogStore) FindBySlug(_ context.Context, slug string) (*models.Blog, error) {
	for _, b := range f.blogs {
		if b.Slug == slug {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBlogStore) SlugExists(_ context.Context, slug string, excludeID primitive.ObjectID) (bool, error) {
	for _, b := range f.blogs {
		if b.Slug == slug && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBlogStore) List(_ context.Context, opt repositories.ListBlogsOptions) ([]models.Blog, int64, error) {
	var matched []models.Blog
	for _, b := range f.blogs {
		if opt.Status != "" && b.Status != opt.Status {
			continue
		}
		if opt.Tag != "" && !contains(b.Tags, opt.Tag) {
			continue
		}
		if opt.Category != "" && !contains(b.Categories, opt.Category) {
			continue
		}
		if opt.Search != "" {
			needle := strings.ToLower(opt.Search)
			haystack := strings.ToLower(b.Title + " " + b.Content + " " + b.Excerpt)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, *b)
	}

	total := int64(len(matched))
	if opt.Skip >= total {
		return nil, total, nil
	}
	matched = matched[opt.Skip:]
	if int64(len(matched)) > opt.Limit {
		matched = matched[:opt.Limit]
	}
	return matched, total, nil
}

func (f *fakeBlogStore) Distinct(_ context.Context, field, status string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, b := range f.blogs {
		if status != "" && b.Status != status {
			continue
		}
		values := b.Tags
		if field == "categories" {
			values = b.Categories
		}
		for _, v := range values {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func (f *fakeBlogStore) UpdateFields(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	for _, b := range f.blogs {
		if b.ID != id {
			continue
		}
		if v, ok := updates["title"]; ok {
			b.Title = v.(string)
		}
		if v, ok := updates["content"]; ok {
			b.Content = v.(string)
		}
		if v, ok := updates["excerpt"]; ok {
			b.Excerpt = v.(string)
		}
		if v, ok := updates["slug"]; ok {
			b.Slug = v.(string)
		}
		if v, ok := updates["featured_image"]; ok {
			b.FeaturedImage, _ = v.(*models.Image)
		}
		if v, ok := updates["images"]; ok {
			b.Images, _ = v.([]models.Image)
		}
		if v, ok := updates["status"]; ok {
			b.Status = v.(string)
		}
		if v, ok := updates["tags"]; ok {
			b.Tags, _ = v.([]string)
		}
		if v, ok := updates["categories"]; ok {
			b.Categories, _ = v.([]string)
		}
		if v, ok := updates["published_at"]; ok {
			b.PublishedAt, _ = v.(*time.Time)
		}
		if v, ok := updates["metadata"]; ok {
			b.Metadata = v.(models.BlogMetadata)
		}
		b.UpdatedAt = time.Now()
		return nil
	}
	return errors.New("blog not found in store")
}

func (f *fakeBlogStore) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	for _, b := range f.blogs {
		if b.ID == id {
			b.Views++
			return nil
		}
	}
	return errors.New("blog not found in store")
}

func (f *fakeBlogStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	for i, b := range f.blogs {
		if b.ID == id {
			f.blogs = append(f.blogs[:i], f.blogs[i+1:]...)
			return nil
		}
	}
	return errors.New("blog not found in store")
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// fakeImageCleaner records the batch it was asked to delete; failFor ids
// report an error in their settled result.
type fakeImageCleaner struct {
	deleted [][]string
	failFor map[string]bool
}

func (f *fakeImageCleaner) DeleteAll(_ context.Context, publicIDs []string) []ImageDeleteResult {
	f.deleted = append(f.deleted, publicIDs)
	results := make([]ImageDeleteResult, len(publicIDs))
	for i, id := range publicIDs {
		results[i] = ImageDeleteResult{PublicID: id}
		if f.failFor[id] {
			results[i].Err = errors.New("destroy failed")
		}
	}
	return results
}

func newTestBlogService(t *testing.T) (*BlogService, *fakeBlogStore, *fakeUserStore, *fakeImageCleaner, *models.User) {
	t.Helper()

	users := newFakeUserStore()
	author := &models.User{
		Email:    "author@example.com",
		Name:     "Author",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	_, err := users.Insert(context.Background(), author)
	require.NoError(t, err)

	blogs := &fakeBlogStore{}
	images := &fakeImageCleaner{failFor: map[string]bool{}}
	return NewBlogService(blogs, users, images), blogs, users, images, author
}

func adminPrincipal(u *models.User) *auth.Principal {
	return auth.FromUser(u)
}

func TestCreateBlogDerivesFields(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)

	content := "<p>" + strings.TrimSpace(strings.Repeat("word ", 450)) + "</p>"
	blog, err := svc.Create(context.Background(), CreateBlogInput{
		Title:      "My First Post!",
		Content:    content,
		Tags:       []string{"Go", "MongoDB"},
		Categories: []string{"Backend"},
	}, author.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, "my-first-post", blog.Slug)
	assert.Equal(t, models.StatusDraft, blog.Status)
	assert.Nil(t, blog.PublishedAt)
	assert.Equal(t, 3, blog.Metadata.ReadTime)
	assert.Equal(t, []string{"go", "mongodb"}, blog.Tags)
	assert.Equal(t, []string{"backend"}, blog.Categories)
	assert.True(t, strings.HasSuffix(blog.Excerpt, "..."))
	assert.Len(t, []rune(blog.Metadata.MetaDescription), 160)
	require.NotNil(t, blog.Author)
	assert.Equal(t, author.ID, blog.Author.ID)
}

func TestCreateBlogPublishedSetsTimestamp(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)

	blog, err := svc.Create(context.Background(), CreateBlogInput{
		Title:   "Launch",
		Content: "we are live",
		Status:  models.StatusPublished,
	}, author.ID.Hex())
	require.NoError(t, err)

	require.NotNil(t, blog.PublishedAt)
	assert.WithinDuration(t, time.Now(), *blog.PublishedAt, time.Minute)
}

func TestCreateBlogValidation(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBlogInput{Title: "   ", Content: "x"}, author.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateBlogInput{Title: strings.Repeat("t", 201), Content: "x"}, author.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateBlogInput{Title: "ok", Content: ""}, author.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateBlogInput{Title: "ok", Content: "x", Excerpt: strings.Repeat("e", 501)}, author.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, CreateBlogInput{Title: "ok", Content: "x", Status: "pending"}, author.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateBlogDuplicateTitleGetsDistinctSlug(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateBlogInput{Title: "Same Title", Content: "a"}, author.ID.Hex())
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateBlogInput{Title: "Same Title", Content: "b"}, author.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "same-title-"))
}

func TestUpdateBlogPublishTimestampSetOnce(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Draft Post", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)
	require.Nil(t, blog.PublishedAt)

	published := models.StatusPublished
	updated, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	firstPublish := *updated.PublishedAt

	archived := models.StatusArchived
	_, err = svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Status: &archived})
	require.NoError(t, err)

	republished, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Status: &published})
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, republished.PublishedAt.Equal(firstPublish), "republishing must keep the original publish time")
}

func TestUpdateBlogPartialFieldsOnly(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{
		Title:   "Original",
		Content: "original content",
		Tags:    []string{"go"},
	}, author.ID.Hex())
	require.NoError(t, err)

	newContent := "fresh content with more words than before in it"
	updated, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Content: &newContent})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, newContent, updated.Content)
	assert.Equal(t, blog.Slug, updated.Slug, "content-only update must not reslug")
	assert.Equal(t, []string{"go"}, updated.Tags)
}

func TestUpdateBlogEmptyStringPointerClearsField(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Post", Content: "body", Excerpt: "hand-written"}, author.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "hand-written", blog.Excerpt)

	empty := ""
	updated, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Excerpt: &empty})
	require.NoError(t, err)

	assert.Equal(t, "", updated.Excerpt, "a non-nil empty excerpt is applied, not ignored")
}

func TestUpdateBlogTitleChangeReslugsWithSuffix(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Before", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)

	newTitle := "After Rename"
	updated, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Title: &newTitle})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(updated.Slug, "after-rename-"))
}

func TestUpdateBlogExplicitSlugWins(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Before", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)

	newTitle := "After Rename"
	newSlug := "Custom-Slug"
	updated, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Title: &newTitle, Slug: &newSlug})
	require.NoError(t, err)

	assert.Equal(t, "custom-slug", updated.Slug)
}

func TestUpdateBlogFeaturedImagePatch(t *testing.T) {
	svc, blogs, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{
		Title:         "Illustrated",
		Content:       "body",
		FeaturedImage: &models.Image{URL: "http://img/1", PublicID: "featured-1"},
	}, author.ID.Hex())
	require.NoError(t, err)

	// An absent patch leaves the stored image untouched.
	newTitle := "Illustrated Still"
	updated, err := svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Title: &newTitle})
	require.NoError(t, err)
	require.NotNil(t, updated.FeaturedImage)
	assert.Equal(t, "featured-1", updated.FeaturedImage.PublicID)

	// A patch carrying a new image replaces it.
	updated, err = svc.Update(ctx, UpdateBlogInput{
		ID:            blog.ID.Hex(),
		FeaturedImage: &FeaturedImagePatch{Image: &models.Image{URL: "http://img/2", PublicID: "featured-2"}},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.FeaturedImage)
	assert.Equal(t, "featured-2", updated.FeaturedImage.PublicID)

	// A patch with a nil image clears it.
	updated, err = svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), FeaturedImage: &FeaturedImagePatch{}})
	require.NoError(t, err)
	assert.Nil(t, updated.FeaturedImage)

	stored, err := blogs.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.FeaturedImage)
}

func TestCreateBlogUnslugifiableTitle(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)

	_, err := svc.Create(context.Background(), CreateBlogInput{Title: "!!!", Content: "body"}, author.ID.Hex())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateBlogSlugGuards(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Fine Title", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)

	badTitle := "???"
	_, err = svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Title: &badTitle})
	assert.ErrorIs(t, err, ErrInvalidInput)

	emptySlug := "  "
	_, err = svc.Update(ctx, UpdateBlogInput{ID: blog.ID.Hex(), Slug: &emptySlug})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The failed updates must not have touched the stored slug.
	current, err := svc.Get(ctx, blog.ID.Hex(), "", adminPrincipal(author))
	require.NoError(t, err)
	assert.Equal(t, "fine-title", current.Slug)
}

func TestUpdateBlogMetadataMergesFieldWise(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	keywords := []string{"go", "blog"}
	blog, err := svc.Create(ctx, CreateBlogInput{
		Title:    "Post",
		Content:  "body",
		Metadata: MetadataInput{MetaKeywords: &keywords},
	}, author.ID.Hex())
	require.NoError(t, err)

	desc := "a new description"
	updated, err := svc.Update(ctx, UpdateBlogInput{
		ID:       blog.ID.Hex(),
		Metadata: &MetadataInput{MetaDescription: &desc},
	})
	require.NoError(t, err)

	assert.Equal(t, desc, updated.Metadata.MetaDescription)
	assert.Equal(t, keywords, updated.Metadata.MetaKeywords, "keywords must survive a description-only update")
}

func TestUpdateBlogNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestBlogService(t)
	ctx := context.Background()

	title := "x"
	_, err := svc.Update(ctx, UpdateBlogInput{ID: "not-a-hex-id", Title: &title})
	assert.ErrorIs(t, err, ErrBlogNotFound)

	_, err = svc.Update(ctx, UpdateBlogInput{ID: primitive.NewObjectID().Hex(), Title: &title})
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestGetBlogSelectorRules(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()
	admin := adminPrincipal(author)

	published, err := svc.Create(ctx, CreateBlogInput{Title: "Public", Content: "body", Status: models.StatusPublished}, author.ID.Hex())
	require.NoError(t, err)
	draft, err := svc.Create(ctx, CreateBlogInput{Title: "Hidden", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)

	_, err = svc.Get(ctx, "", "", admin)
	assert.ErrorIs(t, err, ErrMissingSelector)

	// Id takes precedence over slug when both are present.
	got, err := svc.Get(ctx, published.ID.Hex(), draft.Slug, admin)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	got, err = svc.Get(ctx, "", published.Slug, admin)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	// Anonymous callers cannot tell a draft from a missing post.
	_, err = svc.Get(ctx, draft.ID.Hex(), "", nil)
	assert.ErrorIs(t, err, ErrBlogNotFound)

	got, err = svc.Get(ctx, draft.ID.Hex(), "", admin)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestGetBlogViewCounting(t *testing.T) {
	svc, blogs, _, _, author := newTestBlogService(t)
	ctx := context.Background()
	admin := adminPrincipal(author)

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Counted", Content: "body", Status: models.StatusPublished}, author.ID.Hex())
	require.NoError(t, err)

	first, err := svc.Get(ctx, blog.ID.Hex(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.Get(ctx, blog.ID.Hex(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)

	authed, err := svc.Get(ctx, blog.ID.Hex(), "", admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), authed.Views, "authenticated reads must not count as views")

	stored, err := blogs.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Views)
}

func TestListBlogsAnonymousForcedToPublished(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBlogInput{Title: "Draft", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateBlogInput{Title: "Live", Content: "body", Status: models.StatusPublished}, author.ID.Hex())
	require.NoError(t, err)

	page, err := svc.List(ctx, ListBlogsInput{Status: models.StatusDraft}, nil)
	require.NoError(t, err)
	require.Len(t, page.Blogs, 1)
	assert.Equal(t, "Live", page.Blogs[0].Title)

	adminPage, err := svc.List(ctx, ListBlogsInput{Status: models.StatusDraft}, adminPrincipal(author))
	require.NoError(t, err)
	require.Len(t, adminPage.Blogs, 1)
	assert.Equal(t, "Draft", adminPage.Blogs[0].Title)
}

func TestListBlogsPagination(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := svc.Create(ctx, CreateBlogInput{Title: title, Content: "body", Status: models.StatusPublished}, author.ID.Hex())
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, ListBlogsInput{Page: 1, Limit: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasMore)
	assert.Len(t, page.Blogs, 2)

	last, err := svc.List(ctx, ListBlogsInput{Page: 2, Limit: 2}, nil)
	require.NoError(t, err)
	assert.False(t, last.HasMore)
	assert.Len(t, last.Blogs, 1)

	defaulted, err := svc.List(ctx, ListBlogsInput{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, defaulted.Page)
	assert.Len(t, defaulted.Blogs, 3)
}

func TestListBlogsFilters(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBlogInput{
		Title: "Go Concurrency", Content: "channels and goroutines",
		Tags: []string{"Go"}, Categories: []string{"Backend"},
		Status: models.StatusPublished,
	}, author.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateBlogInput{
		Title: "CSS Grids", Content: "layout",
		Tags: []string{"css"}, Categories: []string{"frontend"},
		Status: models.StatusPublished,
	}, author.ID.Hex())
	require.NoError(t, err)

	byTag, err := svc.List(ctx, ListBlogsInput{Tag: "GO"}, nil)
	require.NoError(t, err)
	require.Len(t, byTag.Blogs, 1)
	assert.Equal(t, "Go Concurrency", byTag.Blogs[0].Title)

	byCategory, err := svc.List(ctx, ListBlogsInput{Category: "Frontend"}, nil)
	require.NoError(t, err)
	require.Len(t, byCategory.Blogs, 1)
	assert.Equal(t, "CSS Grids", byCategory.Blogs[0].Title)

	bySearch, err := svc.List(ctx, ListBlogsInput{Search: "goroutines"}, nil)
	require.NoError(t, err)
	require.Len(t, bySearch.Blogs, 1)
	assert.Equal(t, "Go Concurrency", bySearch.Blogs[0].Title)
}

func TestTagsAndCategoriesScopedForAnonymous(t *testing.T) {
	svc, _, _, _, author := newTestBlogService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBlogInput{
		Title: "Live", Content: "body", Status: models.StatusPublished,
		Tags: []string{"public-tag"}, Categories: []string{"public-cat"},
	}, author.ID.Hex())
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateBlogInput{
		Title: "Draft", Content: "body",
		Tags: []string{"secret-tag"}, Categories: []string{"secret-cat"},
	}, author.ID.Hex())
	require.NoError(t, err)

	tags, err := svc.Tags(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"public-tag"}, tags)

	allTags, err := svc.Tags(ctx, adminPrincipal(author))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"public-tag", "secret-tag"}, allTags)

	categories, err := svc.Categories(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"public-cat"}, categories)
}

func TestDeleteBlogCascadesImages(t *testing.T) {
	svc, blogs, _, images, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{
		Title:         "With Images",
		Content:       "body",
		FeaturedImage: &models.Image{URL: "http://img/1", PublicID: "featured-1"},
		Images: []models.Image{
			{URL: "http://img/2", PublicID: "gallery-1"},
			{URL: "http://img/3", PublicID: "gallery-2"},
		},
	}, author.ID.Hex())
	require.NoError(t, err)

	images.failFor["gallery-1"] = true

	result, err := svc.Delete(ctx, blog.ID.Hex())
	require.NoError(t, err, "image cleanup failures must not abort the delete")

	require.Len(t, images.deleted, 1)
	assert.Equal(t, []string{"featured-1", "gallery-1", "gallery-2"}, images.deleted[0])

	require.Len(t, result.Cleanup, 3)
	assert.NoError(t, result.Cleanup[0].Err)
	assert.Error(t, result.Cleanup[1].Err)
	assert.NoError(t, result.Cleanup[2].Err)

	stored, err := blogs.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteBlogWithoutImagesSkipsCleanup(t *testing.T) {
	svc, _, _, images, author := newTestBlogService(t)
	ctx := context.Background()

	blog, err := svc.Create(ctx, CreateBlogInput{Title: "Bare", Content: "body"}, author.ID.Hex())
	require.NoError(t, err)

	result, err := svc.Delete(ctx, blog.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, result.Cleanup)
	assert.Empty(t, images.deleted)
}

func TestDeleteBlogNotFound(t *testing.T) {
	svc, _, _, _, _ := newTestBlogService(t)
	ctx := context.Background()

	_, err := svc.Delete(ctx, "nope")
	assert.ErrorIs(t, err, ErrBlogNotFound)

	_, err = svc.Delete(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrBlogNotFound)
}
