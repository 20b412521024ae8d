package middleware

import (
	"net/http"

	"github.com/confetti-cuisine/confetti/web/entity"
	"github.com/confetti-cuisine/confetti/web/locale"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

const loginPath = "/users/login"

// RequireLogin stops anonymous visitors. Pages redirect to the login form
// with a flash; AJAX and JSON callers get a 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) != nil {
			c.Next()
			return
		}
		msg := locale.I18n(c, "flash.loginRequired")
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{Success: false, Msg: msg})
			return
		}
		session.AddFlash(c, session.FlashError, msg)
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
	}
}

// RedirectIfAuthenticated sends logged-in users away from the login and
// sign-up forms.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) != nil {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func wantsJSON(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest" ||
		c.Query("format") == "json" ||
		c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
