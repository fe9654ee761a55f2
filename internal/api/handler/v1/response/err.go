package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON error body. The wrapped error is logged, never sent.
type Err struct {
	HTTPStatusCode int   `json:"-"`
	Err            error `json:"-"`

	StatusText string `json:"status"`
	ErrorMsg   string `json:"error,omitempty"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.StatusText
	}

	return e.StatusText + ": " + e.Err.Error()
}

func (e *Err) Unwrap() error {
	return e.Err
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.StatusText,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadGateway(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadGateway,
		Err:            err,
		StatusText:     http.StatusText(http.StatusBadGateway),
		ErrorMsg:       "products backend could not be read",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Err:            err,
		StatusText:     http.StatusText(http.StatusInternalServerError),
	}
}
