package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/web/entity"
	"github.com/confetti-cuisine/confetti/web/locale"
	"github.com/confetti-cuisine/confetti/web/middleware"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the client address, honouring proxy headers.
func getRemoteIp(c *gin.Context) string {
	if value := c.GetHeader("X-Real-IP"); value != "" {
		return value
	}
	if value := c.GetHeader("X-Forwarded-For"); value != "" {
		return strings.TrimSpace(strings.Split(value, ",")[0])
	}
	ip, _, _ := net.SplitHostPort(c.Request.RemoteAddr)
	return ip
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders the named template with the layout data every page needs:
// the pending flashes, the current user and a translate func bound to the
// request language.
func html(c *gin.Context, status int, name string, titleKey string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = locale.I18n(c, titleKey)
	data["t"] = func(key string, params ...string) string {
		return locale.I18n(c, key, params...)
	}
	data["flashes"] = session.Flashes(c)
	data["currentUser"] = middleware.GetCurrentUser(c)
	data["loggedIn"] = middleware.GetCurrentUser(c) != nil
	data["request_uri"] = c.Request.RequestURI
	c.HTML(status, name, getContext(data))
}

func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// wantsJSON reports whether a list or show page was asked for as JSON.
func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json"
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

func paramId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

// errorReason turns a save error into the text shown to the visitor.
func errorReason(err error) string {
	if ve, ok := database.IsValidation(err); ok {
		return strings.Join(ve.Messages(), ", ")
	}
	if database.IsDuplicate(err) {
		return "a record with the given email or title is already registered"
	}
	return err.Error()
}
