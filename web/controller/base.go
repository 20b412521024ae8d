// Package controller holds the gin handlers of the site: pages, forms and
// the JSON API.
package controller

import (
	"errors"
	"net/http"

	"github.com/confetti-cuisine/confetti/web/locale"
	"github.com/confetti-cuisine/confetti/web/service"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the helpers shared by every page controller.
type BaseController struct{}

func (a *BaseController) flash(c *gin.Context, kind, key string, params ...string) {
	session.AddFlash(c, kind, I18nWeb(c, key, params...))
}

func (a *BaseController) flashText(c *gin.Context, kind, msg string) {
	session.AddFlash(c, kind, msg)
}

// fail answers a lookup or storage error with the 404 or 500 page.
func (a *BaseController) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	}
	InternalError(c, err)
}

// respond writes obj as JSON for ?format=json and renders the page otherwise.
func (a *BaseController) respond(c *gin.Context, obj any, name, titleKey string, data gin.H) {
	if wantsJSON(c) {
		c.JSON(http.StatusOK, obj)
		return
	}
	html(c, http.StatusOK, name, titleKey, data)
}

// I18nWeb translates key for the language of the request.
func I18nWeb(c *gin.Context, key string, params ...string) string {
	return locale.I18n(c, key, params...)
}
