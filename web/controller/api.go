package controller

import (
	"errors"
	"net/http"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/entity"
	"github.com/confetti-cuisine/confetti/web/middleware"
	"github.com/confetti-cuisine/confetti/web/service"

	"github.com/gin-gonic/gin"
)

// APIController serves the JSON API under /api.
type APIController struct {
	authService   *service.AuthService
	userService   service.UserService
	courseService service.CourseService
}

func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{authService: service.NewAuthService()}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", middleware.RateLimit(middleware.DefaultRateLimitConfig(config.GetLoginRateLimit())), a.login)

	authed := g.Group("", middleware.APIAuth())
	authed.GET("/courses", a.courses)
	authed.GET("/courses/:id/join", a.join)
}

func (a *APIController) login(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warning("bind api login:", err)
		c.JSON(http.StatusUnauthorized, entity.LoginResult{Success: false, Message: I18nWeb(c, "api.authFailed")})
		return
	}

	user, err := a.userService.Authenticate(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warning("api login:", err)
		}
		c.JSON(http.StatusUnauthorized, entity.LoginResult{Success: false, Message: I18nWeb(c, "api.authFailed")})
		return
	}
	token, err := a.authService.IssueToken(user)
	if err != nil {
		a.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.LoginResult{Success: true, Token: token})
}

func (a *APIController) courses(c *gin.Context) {
	courses, err := a.courseService.List()
	if err != nil {
		a.apiError(c, err)
		return
	}
	views := a.courseService.MarkJoined(courses, middleware.GetCurrentUser(c))
	c.JSON(http.StatusOK, entity.APIResponse{
		Status: http.StatusOK,
		Data:   gin.H{"courses": views},
	})
}

func (a *APIController) join(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		a.apiError(c, service.ErrNotFound)
		return
	}
	user := middleware.GetCurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Status: http.StatusUnauthorized, Message: I18nWeb(c, "api.loginRequired")})
		return
	}
	if err := a.userService.JoinCourse(user.Id, id); err != nil {
		a.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.APIResponse{
		Status: http.StatusOK,
		Data:   gin.H{"success": true},
	})
}

// apiError answers with the status matching err.
func (a *APIController) apiError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCourseFull):
		status = http.StatusConflict
	default:
		logger.Warning("api error:", err)
	}
	c.JSON(status, entity.APIResponse{Status: status, Message: err.Error()})
}
