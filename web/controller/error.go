package controller

import (
	"net/http"
	"runtime/debug"

	"github.com/confetti-cuisine/confetti/logger"

	"github.com/gin-gonic/gin"
)

// NotFound answers unknown routes and missing records.
func NotFound(c *gin.Context) {
	renderError(c, http.StatusNotFound, "errors.notFound")
}

// InternalError logs err and answers with the generic 500 page.
func InternalError(c *gin.Context, err error) {
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	renderError(c, http.StatusInternalServerError, "errors.internal")
}

// Recovery is the gin recovery handler; it logs the panic with its stack.
func Recovery(c *gin.Context, recovered any) {
	logger.Errorf("panic serving %s %s: %v\n%s", c.Request.Method, c.Request.URL.Path, recovered, debug.Stack())
	renderError(c, http.StatusInternalServerError, "errors.internal")
}

func renderError(c *gin.Context, status int, key string) {
	msg := I18nWeb(c, key)
	if wantsJSON(c) || isAjax(c) {
		c.AbortWithStatusJSON(status, gin.H{"status": status, "message": msg})
		return
	}
	html(c, status, "errors/error", key, gin.H{"message": msg, "status": status})
	c.Abort()
}
