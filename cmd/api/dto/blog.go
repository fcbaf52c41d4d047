package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"inkpress/models"
	"inkpress/services"
)

// ImageDTO is a hosted image reference.
type ImageDTO struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Alt      string `json:"alt,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// MetadataDTO is the derived presentation metadata of a post.
type MetadataDTO struct {
	ReadTime        int      `json:"read_time" example:"3"`
	MetaDescription string   `json:"meta_description,omitempty"`
	MetaKeywords    []string `json:"meta_keywords,omitempty"`
}

// BlogDTO exposes a blog post to API consumers.
type BlogDTO struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Content       string      `json:"content"`
	Excerpt       string      `json:"excerpt,omitempty"`
	FeaturedImage *ImageDTO   `json:"featured_image,omitempty"`
	Images        []ImageDTO  `json:"images"`
	Author        *UserDTO    `json:"author,omitempty"`
	Status        string      `json:"status" example:"published"`
	Tags          []string    `json:"tags"`
	Categories    []string    `json:"categories"`
	PublishedAt   *time.Time  `json:"published_at,omitempty"`
	Views         int64       `json:"views"`
	Metadata      MetadataDTO `json:"metadata"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// BlogPageDTO is the paginated blog list envelope.
type BlogPageDTO struct {
	Blogs      []BlogDTO `json:"blogs"`
	TotalCount int64     `json:"total_count"`
	HasMore    bool      `json:"has_more"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
}

func imageToModel(d *ImageDTO) *models.Image {
	if d == nil {
		return nil
	}
	return &models.Image{URL: d.URL, PublicID: d.PublicID, Alt: d.Alt, Caption: d.Caption}
}

func imagesToModel(ds []ImageDTO) []models.Image {
	out := make([]models.Image, len(ds))
	for i, d := range ds {
		out[i] = *imageToModel(&d)
	}
	return out
}

func imageFromModel(m *models.Image) *ImageDTO {
	if m == nil {
		return nil
	}
	return &ImageDTO{URL: m.URL, PublicID: m.PublicID, Alt: m.Alt, Caption: m.Caption}
}

// FromBlog maps a blog model into its DTO.
func FromBlog(b *models.Blog) BlogDTO {
	images := make([]ImageDTO, len(b.Images))
	for i := range b.Images {
		images[i] = *imageFromModel(&b.Images[i])
	}
	return BlogDTO{
		ID:            b.ID.Hex(),
		Title:         b.Title,
		Slug:          b.Slug,
		Content:       b.Content,
		Excerpt:       b.Excerpt,
		FeaturedImage: imageFromModel(b.FeaturedImage),
		Images:        images,
		Author:        FromUser(b.Author),
		Status:        b.Status,
		Tags:          b.Tags,
		Categories:    b.Categories,
		PublishedAt:   b.PublishedAt,
		Views:         b.Views,
		Metadata: MetadataDTO{
			ReadTime:        b.Metadata.ReadTime,
			MetaDescription: b.Metadata.MetaDescription,
			MetaKeywords:    b.Metadata.MetaKeywords,
		},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromBlogPage maps a page of blogs into its DTO.
func FromBlogPage(p *services.BlogPage) BlogPageDTO {
	blogs := make([]BlogDTO, len(p.Blogs))
	for i := range p.Blogs {
		blogs[i] = FromBlog(&p.Blogs[i])
	}
	return BlogPageDTO{
		Blogs:      blogs,
		TotalCount: p.TotalCount,
		HasMore:    p.HasMore,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	}
}

// MetadataInputDTO carries optional caller-supplied metadata.
type MetadataInputDTO struct {
	MetaDescription *string   `json:"meta_description"`
	MetaKeywords    *[]string `json:"meta_keywords"`
}

func metadataInput(d *MetadataInputDTO) services.MetadataInput {
	if d == nil {
		return services.MetadataInput{}
	}
	return services.MetadataInput{
		MetaDescription: d.MetaDescription,
		MetaKeywords:    d.MetaKeywords,
	}
}

// CreateBlogRequest is the blog creation payload.
type CreateBlogRequest struct {
	Title         string            `json:"title" binding:"required"`
	Content       string            `json:"content" binding:"required"`
	Excerpt       string            `json:"excerpt"`
	Slug          string            `json:"slug"`
	FeaturedImage *ImageDTO         `json:"featured_image"`
	Images        []ImageDTO        `json:"images"`
	Status        string            `json:"status"`
	Tags          []string          `json:"tags"`
	Categories    []string          `json:"categories"`
	Metadata      *MetadataInputDTO `json:"metadata"`
}

// ToCreateInput converts the request into the service input.
func (r CreateBlogRequest) ToCreateInput() services.CreateBlogInput {
	return services.CreateBlogInput{
		Title:         r.Title,
		Content:       r.Content,
		Excerpt:       r.Excerpt,
		Slug:          r.Slug,
		FeaturedImage: imageToModel(r.FeaturedImage),
		Images:        imagesToModel(r.Images),
		Status:        r.Status,
		Tags:          r.Tags,
		Categories:    r.Categories,
		Metadata:      metadataInput(r.Metadata),
	}
}

// NullableImage distinguishes an absent "featured_image" key from an
// explicit null: Set is true whenever the key appeared at all, and Image
// stays nil for null. A plain pointer cannot express "clear this field".
type NullableImage struct {
	Set   bool
	Image *ImageDTO
}

func (n *NullableImage) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Image = nil
		return nil
	}
	return json.Unmarshal(data, &n.Image)
}

// UpdateBlogRequest is the blog update payload. Pointer fields
// distinguish "absent" from "set to empty": omitted JSON keys stay nil and
// leave the stored value unchanged.
type UpdateBlogRequest struct {
	Title         *string           `json:"title"`
	Content       *string           `json:"content"`
	Excerpt       *string           `json:"excerpt"`
	Slug          *string           `json:"slug"`
	FeaturedImage NullableImage     `json:"featured_image"`
	Images        *[]ImageDTO       `json:"images"`
	Status        *string           `json:"status"`
	Tags          *[]string         `json:"tags"`
	Categories    *[]string         `json:"categories"`
	Metadata      *MetadataInputDTO `json:"metadata"`
}

// ToUpdateInput converts the request into the service input for the given
// blog id.
func (r UpdateBlogRequest) ToUpdateInput(id string) services.UpdateBlogInput {
	in := services.UpdateBlogInput{
		ID:         id,
		Title:      r.Title,
		Content:    r.Content,
		Excerpt:    r.Excerpt,
		Slug:       r.Slug,
		Status:     r.Status,
		Tags:       r.Tags,
		Categories: r.Categories,
	}
	if r.FeaturedImage.Set {
		in.FeaturedImage = &services.FeaturedImagePatch{Image: imageToModel(r.FeaturedImage.Image)}
	}
	if r.Images != nil {
		images := imagesToModel(*r.Images)
		in.Images = &images
	}
	if r.Metadata != nil {
		meta := metadataInput(r.Metadata)
		in.Metadata = &meta
	}
	return in
}
