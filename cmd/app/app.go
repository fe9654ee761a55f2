package app

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/vitrine/internal/api"
	"github.com/yizeng/gab/gin/vitrine/internal/config"
	"github.com/yizeng/gab/gin/vitrine/internal/logger"
	"github.com/yizeng/gab/gin/vitrine/internal/repository/dao"
)

func Start() error {
	src, err := config.Open("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to open config -> %w", err)
	}

	conf, err := src.Config()
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	productDAO := dao.NewProductDAO(&http.Client{}, conf.Backend.ProductsURL)
	productDAO.SetTimeout(conf.Backend.Timeout)
	src.Watch(func(next *config.AppConfig) {
		applyBackend(productDAO, next.Backend)
	})

	s := api.NewServer(conf, productDAO)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr), zap.String("backend", conf.Backend.ProductsURL))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// applyBackend pushes a reloaded backend section onto the live DAO. The URL
// and the timeout both apply from the next fetch on.
func applyBackend(productDAO *dao.ProductDAO, backend *config.BackendConfig) {
	if backend.ProductsURL != productDAO.Endpoint() {
		productDAO.SetEndpoint(backend.ProductsURL)
		zap.L().Info("products backend changed", zap.String("url", backend.ProductsURL))
	}

	if backend.Timeout != productDAO.Timeout() {
		productDAO.SetTimeout(backend.Timeout)
		zap.L().Info("products backend timeout changed", zap.Duration("timeout", backend.Timeout))
	}
}
