package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows read-only cross-origin access from the given origins.
// An empty list allows every origin.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	if len(allowedDomains) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = allowedDomains
	}
	conf.AllowMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}
	conf.ExposeHeaders = []string{"X-Request-ID"}
	conf.MaxAge = 12 * time.Hour

	return cors.New(conf)
}
