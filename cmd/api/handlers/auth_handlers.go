package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/cmd/api/dto"
	"inkpress/cmd/api/middleware"
	"inkpress/services"
)

// RegisterHandler godoc
// @Summary      Register a new admin account
// @Description  Creates an admin user and returns a bearer token plus the user
// @Tags         auth
// @Accept       json
// @Param        request  body  dto.RegisterRequest  true  "Registration payload"
// @Produce      json
// @Success      200  {object}  dto.AuthResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Router       /auth/register [post]
func RegisterHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}

		result, err := svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.AuthResponseDTO{Token: result.Token, User: dto.FromUser(result.User)})
	}
}

// LoginHandler godoc
// @Summary      Login with email and password
// @Description  Verifies credentials and returns a fresh bearer token plus the user
// @Tags         auth
// @Accept       json
// @Param        request  body  dto.LoginRequest  true  "Login payload"
// @Produce      json
// @Success      200  {object}  dto.AuthResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /auth/login [post]
func LoginHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindError(c, err)
			return
		}

		result, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.AuthResponseDTO{Token: result.Token, User: dto.FromUser(result.User)})
	}
}

// MeHandler godoc
// @Summary      Current user
// @Description  Returns the authenticated user behind the bearer token
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.UserDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/me [get]
func MeHandler(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := svc.CurrentUser(middleware.PrincipalFromContext(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.FromUser(user))
	}
}
