package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/vitrine/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/vitrine/internal/render"
	"github.com/yizeng/gab/gin/vitrine/internal/service"
)

const (
	ListTemplate = "produtos.html"

	loadErrorMessage = "Não foi possível carregar os produtos."
)

type ShowcaseService interface {
	Lines(ctx context.Context) ([]render.Line, error)
}

type ProductHandler struct {
	svc ShowcaseService
}

func NewProductHandler(svc ShowcaseService) *ProductHandler {
	return &ProductHandler{
		svc: svc,
	}
}

// HandleListPage renders the product list as HTML. A failed load shows an
// error message instead of an empty list: 502 when the backend failed, 500
// otherwise.
func (h *ProductHandler) HandleListPage(ctx *gin.Context) {
	lines, err := h.svc.Lines(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListPage -> h.svc.Lines -> %w", err)
		zap.L().Error("failed to load products",
			zap.String("request_id", requestid.Get(ctx)),
			zap.Error(err),
		)

		status := http.StatusInternalServerError
		if isBackendErr(err) {
			status = http.StatusBadGateway
		}
		ctx.HTML(status, ListTemplate, gin.H{"Error": loadErrorMessage})
		return
	}

	ctx.HTML(http.StatusOK, ListTemplate, gin.H{"Lines": lines})
}

// HandleListProducts godoc
// @Summary      List rendered products
// @Description  Fetches the products from the backend once and returns one rendered line per product, in backend order
// @Tags         produtos
// @Produce      json
// @Success      200  {array}   render.Line
// @Failure      500  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Router       /produtos [get]
func (h *ProductHandler) HandleListProducts(ctx *gin.Context) {
	lines, err := h.svc.Lines(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListProducts -> h.svc.Lines -> %w", err)
		if isBackendErr(err) {
			response.RenderErr(ctx, response.ErrBadGateway(err))
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lines)
}

func isBackendErr(err error) bool {
	return errors.Is(err, service.ErrBackendUnavailable) ||
		errors.Is(err, service.ErrUnexpectedStatus) ||
		errors.Is(err, service.ErrMalformedResponse)
}
