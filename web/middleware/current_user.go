package middleware

import (
	"errors"

	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/service"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

const (
	ContextLoggedIn    = "loggedIn"
	ContextCurrentUser = "currentUser"
)

// CurrentUser loads the user stored in the session into the context. An id
// that no longer exists logs the visitor out.
func CurrentUser() gin.HandlerFunc {
	userService := service.UserService{}
	return func(c *gin.Context) {
		c.Set(ContextLoggedIn, false)
		if id := session.GetLoginUserId(c); id != 0 {
			user, err := userService.Get(id)
			switch {
			case err == nil:
				c.Set(ContextCurrentUser, user)
				c.Set(ContextLoggedIn, true)
			case errors.Is(err, service.ErrNotFound):
				_ = session.ClearSession(c)
			default:
				logger.Warning("load current user:", err)
			}
		}
		c.Next()
	}
}

// GetCurrentUser returns the user loaded by CurrentUser or APIAuth, if any.
func GetCurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextCurrentUser); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
