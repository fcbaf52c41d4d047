package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkpress/auth"
	"inkpress/cmd/api/dto"
	"inkpress/cmd/api/middleware"
	"inkpress/services"
)

// ListBlogsHandler godoc
// @Summary      List blogs
// @Description  List blogs with filters and pagination. Anonymous callers only see published posts.
// @Tags         blogs
// @Param        status    query  string  false  "Status filter (authenticated callers only)"
// @Param        tag       query  string  false  "Tag filter"
// @Param        category  query  string  false  "Category filter"
// @Param        search    query  string  false  "Case-insensitive substring search over title/content/excerpt"
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        limit     query  int     false  "Page size"
// @Produce      json
// @Success      200  {object}  dto.BlogPageDTO
// @Router       /blogs [get]
func ListBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListBlogsInput
		in.Status = c.Query("status")
		in.Tag = c.Query("tag")
		in.Category = c.Query("category")
		in.Search = c.Query("search")
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

		page, err := svc.List(c.Request.Context(), in, middleware.PrincipalFromContext(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromBlogPage(page))
	}
}

// GetBlogHandler godoc
// @Summary      Get blog by id
// @Description  Returns a single blog. Anonymous reads of published posts increment the view counter.
// @Tags         blogs
// @Param        id   path   string  true  "Blog ObjectID"
// @Produce      json
// @Success      200  {object}  dto.BlogDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [get]
func GetBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blog, err := svc.Get(c.Request.Context(), c.Param("id"), "", middleware.PrincipalFromContext(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromBlog(blog))
	}
}

// GetBlogBySlugHandler godoc
// @Summary      Get blog by slug
// @Tags         blogs
// @Param        slug  path  string  true  "Blog slug"
// @Produce      json
// @Success      200  {object}  dto.BlogDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/slug/{slug} [get]
func GetBlogBySlugHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blog, err := svc.Get(c.Request.Context(), "", c.Param("slug"), middleware.PrincipalFromContext(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromBlog(blog))
	}
}

// CreateBlogHandler godoc
// @Summary      Create a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.CreateBlogRequest  true  "Blog payload"
// @Produce      json
// @Success      201  {object}  dto.BlogDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /blogs [post]
func CreateBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := middleware.PrincipalFromContext(c)
		if err := auth.RequireAdmin(principal); err != nil {
			writeError(c, err)
			return
		}

		var req dto.CreateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}

		blog, err := svc.Create(c.Request.Context(), req.ToCreateInput(), principal.User.ID.Hex())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.FromBlog(blog))
	}
}

// UpdateBlogHandler godoc
// @Summary      Update a blog post
// @Description  Partial update; omitted fields stay unchanged, fields set to an empty value are applied.
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Param        id       path  string                 true  "Blog ObjectID"
// @Param        request  body  dto.UpdateBlogRequest  true  "Fields to update"
// @Produce      json
// @Success      200  {object}  dto.BlogDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [put]
func UpdateBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(middleware.PrincipalFromContext(c)); err != nil {
			writeError(c, err)
			return
		}

		var req dto.UpdateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}

		blog, err := svc.Update(c.Request.Context(), req.ToUpdateInput(c.Param("id")))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromBlog(blog))
	}
}

// DeleteBlogHandler godoc
// @Summary      Delete a blog post
// @Description  Deletes the post and best-effort removes its hosted images.
// @Tags         blogs
// @Security     BearerAuth
// @Param        id  path  string  true  "Blog ObjectID"
// @Produce      json
// @Success      200  {object}  dto.SuccessResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{id} [delete]
func DeleteBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(middleware.PrincipalFromContext(c)); err != nil {
			writeError(c, err)
			return
		}

		if _, err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponseDTO{Success: true, Message: "Blog deleted successfully"})
	}
}

// ListTagsHandler godoc
// @Summary      List all tags
// @Tags         blogs
// @Produce      json
// @Success      200  {array}  string
// @Router       /tags [get]
func ListTagsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := svc.Tags(c.Request.Context(), middleware.PrincipalFromContext(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

// ListCategoriesHandler godoc
// @Summary      List all categories
// @Tags         blogs
// @Produce      json
// @Success      200  {array}  string
// @Router       /categories [get]
func ListCategoriesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context(), middleware.PrincipalFromContext(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
