package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HandlePing(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}
