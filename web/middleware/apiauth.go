package middleware

import (
	"errors"
	"net/http"

	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/entity"
	"github.com/confetti-cuisine/confetti/web/locale"
	"github.com/confetti-cuisine/confetti/web/service"

	"github.com/gin-gonic/gin"
)

// APIAuth authenticates API calls with a JWT in the token header or the
// user's api token in the apiToken query parameter.
func APIAuth() gin.HandlerFunc {
	authService := service.NewAuthService()
	userService := service.UserService{}

	return func(c *gin.Context) {
		if token := c.GetHeader("token"); token != "" {
			id, err := authService.VerifyToken(token)
			if err != nil {
				abortAPI(c, http.StatusUnauthorized, "api.cannotVerify")
				return
			}
			user, err := userService.Get(id)
			if err != nil {
				apiUserError(c, err, http.StatusForbidden, "api.noUser")
				return
			}
			setAPIUser(c, user)
			return
		}

		if apiToken := c.Query("apiToken"); apiToken != "" {
			user, err := userService.FindByApiToken(apiToken)
			if err == nil {
				user, err = userService.Get(user.Id)
			}
			if err != nil {
				apiUserError(c, err, http.StatusUnauthorized, "api.invalidToken")
				return
			}
			setAPIUser(c, user)
			return
		}

		abortAPI(c, http.StatusUnauthorized, "api.provideToken")
	}
}

func setAPIUser(c *gin.Context, user *model.User) {
	c.Set(ContextCurrentUser, user)
	c.Set(ContextLoggedIn, true)
	c.Next()
}

func apiUserError(c *gin.Context, err error, status int, key string) {
	if errors.Is(err, service.ErrNotFound) {
		abortAPI(c, status, key)
		return
	}
	logger.Warning("api auth:", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, entity.APIResponse{
		Status:  http.StatusInternalServerError,
		Message: err.Error(),
	})
}

func abortAPI(c *gin.Context, status int, key string) {
	c.AbortWithStatusJSON(status, entity.APIError{Error: true, Message: locale.I18n(c, key)})
}
