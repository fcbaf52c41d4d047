package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inkpress/auth"
	"inkpress/cmd/api/dto"
	"inkpress/cmd/api/middleware"
	"inkpress/services"
)

// UploadImageHandler godoc
// @Summary      Upload an image
// @Description  Uploads a base64 data-URI image to the image host.
// @Tags         images
// @Security     BearerAuth
// @Accept       json
// @Param        request  body  dto.UploadImageRequest  true  "Image payload"
// @Produce      json
// @Success      200  {object}  dto.UploadImageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /images [post]
func UploadImageHandler(svc *services.ImageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(middleware.PrincipalFromContext(c)); err != nil {
			writeError(c, err)
			return
		}

		var req dto.UploadImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}

		result, err := svc.Upload(c.Request.Context(), req.ImageData, req.Folder)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromUploadResult(result))
	}
}

// DeleteImageHandler godoc
// @Summary      Delete an image
// @Description  Deletes a hosted image by public id. Deleting an already-missing image succeeds.
// @Tags         images
// @Security     BearerAuth
// @Param        publicId  path  string  true  "Image public id (may contain slashes)"
// @Produce      json
// @Success      200  {object}  dto.SuccessResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /images/{publicId} [delete]
func DeleteImageHandler(svc *services.ImageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAdmin(middleware.PrincipalFromContext(c)); err != nil {
			writeError(c, err)
			return
		}

		// Public ids carry folder prefixes, so the route uses a wildcard.
		publicID := strings.TrimPrefix(c.Param("publicId"), "/")
		if publicID == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "public id is required"})
			return
		}

		if err := svc.Delete(c.Request.Context(), publicID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponseDTO{Success: true, Message: "Image deleted successfully"})
	}
}
