package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"inkpress/auth"
	"inkpress/cmd/api/router"
	"inkpress/config"
	"inkpress/db"
	"inkpress/imagehost"
	"inkpress/internal/logger"
	"inkpress/repositories"
	"inkpress/services"
)

// @title           Inkpress Blog API
// @version         1.0
// @description     Content API for authoring and reading blog posts
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	config.InitApp()
	logger.Init(config.GetConfig().Logging.Level)

	ctx := context.Background()
	client, database, err := db.Connect(ctx, config.MongoURI(), config.MongoDBName())
	if err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		os.Exit(1)
	}
	defer client.Disconnect(ctx)

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		logger.Log.Errorf("failed to init JWTManager: %v", err)
		os.Exit(1)
	}

	provider, err := imagehost.NewCloudinaryFromEnv()
	if err != nil {
		logger.Log.Errorf("failed to init image host: %v", err)
		os.Exit(1)
	}

	users := repositories.NewUserRepository(database)
	blogs := repositories.NewBlogRepository(database)

	imageSvc := services.NewImageService(provider)
	authSvc := services.NewAuthService(users, jwtManager)
	blogSvc := services.NewBlogService(blogs, users, imageSvc)

	r := router.New(router.Deps{
		Mongo:    client,
		JWT:      jwtManager,
		Users:    users,
		AuthSvc:  authSvc,
		BlogSvc:  blogSvc,
		ImageSvc: imageSvc,
	})

	addr := ":" + config.GetConfig().Server.Port
	logger.Log.Infof("listening on %s", addr)

	handler := cors.AllowAll().Handler(r)
	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}
