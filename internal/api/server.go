package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yizeng/gab/gin/vitrine/docs"
	v1 "github.com/yizeng/gab/gin/vitrine/internal/api/handler/v1"
	"github.com/yizeng/gab/gin/vitrine/internal/api/middleware"
	"github.com/yizeng/gab/gin/vitrine/internal/api/templates"
	"github.com/yizeng/gab/gin/vitrine/internal/config"
	"github.com/yizeng/gab/gin/vitrine/internal/repository"
	"github.com/yizeng/gab/gin/vitrine/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, productDAO repository.ProductDAO) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	engine.SetHTMLTemplate(templates.Load())

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	productHandler := s.initProductHandler(productDAO)
	s.MountHandlers(productHandler)

	return s
}

func (s *Server) initProductHandler(productDAO repository.ProductDAO) *v1.ProductHandler {
	repo := repository.NewProductRepository(productDAO)
	svc := service.NewShowcaseService(repo)
	handler := v1.NewProductHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(productHandler *v1.ProductHandler) {
	const basePath = "/api/v1"

	s.Router.GET("/", productHandler.HandleListPage)
	s.Router.GET("/ping", v1.HandlePing)

	produtos := s.Router.Group(basePath)
	{
		produtos.GET("/produtos", productHandler.HandleListProducts)
	}

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Vitrine API"
	docs.SwaggerInfo.Description = "Rendered product lines read from the catalog backend."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
