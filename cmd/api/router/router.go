package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"inkpress/auth"
	"inkpress/cmd/api/handlers"
	"inkpress/cmd/api/middleware"
	"inkpress/services"
	_ "inkpress/docs"
)

// Deps carries the constructed dependencies of the API. The entry point
// owns their lifecycle; the router only wires them to routes.
type Deps struct {
	Mongo    *mongo.Client
	JWT      *auth.JWTManager
	Users    middleware.UserLoader
	AuthSvc  *services.AuthService
	BlogSvc  *services.BlogService
	ImageSvc *services.ImageService
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.PrincipalMiddleware(deps.JWT, deps.Users))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := deps.Mongo.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Inkpress Blog API", "version": "1.0.0", "api": "/api/v1"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.POST("/auth/register", handlers.RegisterHandler(deps.AuthSvc))
		api.POST("/auth/login", handlers.LoginHandler(deps.AuthSvc))
		api.GET("/auth/me", handlers.MeHandler(deps.AuthSvc))

		api.GET("/blogs", handlers.ListBlogsHandler(deps.BlogSvc))
		api.GET("/blogs/slug/:slug", handlers.GetBlogBySlugHandler(deps.BlogSvc))
		api.GET("/blogs/:id", handlers.GetBlogHandler(deps.BlogSvc))
		api.POST("/blogs", handlers.CreateBlogHandler(deps.BlogSvc))
		api.PUT("/blogs/:id", handlers.UpdateBlogHandler(deps.BlogSvc))
		api.DELETE("/blogs/:id", handlers.DeleteBlogHandler(deps.BlogSvc))

		api.GET("/tags", handlers.ListTagsHandler(deps.BlogSvc))
		api.GET("/categories", handlers.ListCategoriesHandler(deps.BlogSvc))

		api.POST("/images", handlers.UploadImageHandler(deps.ImageSvc))
		api.DELETE("/images/*publicId", handlers.DeleteImageHandler(deps.ImageSvc))
	}

	return r
}
