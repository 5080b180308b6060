package http

import (
	"github.com/gin-gonic/gin"

	"sentinel-ds/internal/bootstrap"
	"sentinel-ds/internal/transport/http/handler"
	"sentinel-ds/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Log), gin.Recovery())
	router.MaxMultipartMemory = app.Config.MaxUploadBytes()

	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(app.Auth)
	searchHandler := handler.NewSearchHandler(app.Search)
	documentHandler := handler.NewDocumentHandler(app.Documents, app.Ingest, app.Config.MaxUploadBytes())
	lawHandler := handler.NewLawHandler(app.Ingest)

	router.GET("/healthz", healthHandler.Check)

	requireOperator := middleware.RequireOperator(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/pin", authHandler.Login)
	v1.GET("/search", searchHandler.Search)

	docs := v1.Group("/documents")
	docs.GET("", documentHandler.List)
	docs.GET("/:id", documentHandler.Get)
	docs.POST("/upload", requireOperator, documentHandler.Upload)
	docs.DELETE("/:id", requireOperator, documentHandler.Delete)

	laws := v1.Group("/laws")
	laws.GET("", lawHandler.List)
	laws.GET("/runs", lawHandler.Runs)
	laws.POST("/refresh", requireOperator, lawHandler.Refresh)

	return router
}
