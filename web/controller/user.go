package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/entity"
	"github.com/confetti-cuisine/confetti/web/middleware"
	"github.com/confetti-cuisine/confetti/web/service"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

// UserController handles sign-up, login and the user pages under /users.
type UserController struct {
	BaseController

	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	requireLogin := middleware.RequireLogin()
	guest := middleware.RedirectIfAuthenticated()
	loginLimit := middleware.RateLimit(middleware.DefaultRateLimitConfig(config.GetLoginRateLimit()))

	g.GET("", requireLogin, a.index)
	g.GET("/new", guest, a.newUser)
	g.POST("/create", a.create)
	g.GET("/login", guest, a.loginPage)
	g.POST("/login", loginLimit, a.login)
	g.GET("/logout", a.logout)
	g.GET("/:id/edit", requireLogin, a.edit)
	g.PUT("/:id/update", requireLogin, a.update)
	g.DELETE("/:id/delete", requireLogin, a.delete)
	g.GET("/:id", a.show)
}

func (a *UserController) index(c *gin.Context) {
	users, err := a.userService.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	a.respond(c, users, "users/index", "pages.users", gin.H{"users": users})
}

func (a *UserController) newUser(c *gin.Context) {
	html(c, http.StatusOK, "users/new", "pages.signUp", nil)
}

func (a *UserController) create(c *gin.Context) {
	var form entity.UserForm
	if err := c.ShouldBind(&form); err != nil {
		a.flash(c, session.FlashError, "flash.userCreateFailed", "Reason=="+err.Error())
		redirect(c, "/users/new")
		return
	}
	form.Normalize()
	if msgs := entity.Validate(&form); len(msgs) > 0 {
		a.flashText(c, session.FlashError, strings.Join(msgs, " and "))
		redirect(c, "/users/new")
		return
	}

	params := form.Params()
	user := &model.User{
		Name:    model.Name{First: params.First, Last: params.Last},
		Email:   params.Email,
		ZipCode: params.ZipCode,
	}
	if err := a.userService.Create(user, params.Password); err != nil {
		logger.Warning("create user:", err)
		a.flash(c, session.FlashError, "flash.userCreateFailed", "Reason=="+errorReason(err))
		redirect(c, "/users/new")
		return
	}
	logger.Infof("%s signed up", user.Email)
	a.flash(c, session.FlashSuccess, "flash.userCreated", "Name=="+user.FullName())
	redirect(c, "/users")
}

func (a *UserController) loginPage(c *gin.Context) {
	html(c, http.StatusOK, "users/login", "pages.login", nil)
}

func (a *UserController) login(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		logger.Warning("bind login form:", err)
		a.flash(c, session.FlashError, "flash.loginFailed")
		redirect(c, "/users/login")
		return
	}

	user, err := a.userService.Authenticate(form.Email, form.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			logger.Warning("login:", err)
		}
		logger.Warningf("failed login for \"%s\" from %s", form.Email, getRemoteIp(c))
		a.flash(c, session.FlashError, "flash.loginFailed")
		redirect(c, "/users/login")
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("Unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user.Id); err != nil {
		logger.Warning("Unable to save session:", err)
		InternalError(c, err)
		return
	}
	logger.Infof("%s logged in successfully, Ip Address: %s", user.Email, getRemoteIp(c))
	a.flash(c, session.FlashSuccess, "flash.loggedIn")
	redirect(c, "/")
}

func (a *UserController) logout(c *gin.Context) {
	if user := middleware.GetCurrentUser(c); user != nil {
		logger.Infof("%s logged out successfully", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	a.flash(c, session.FlashSuccess, "flash.loggedOut")
	redirect(c, "/")
}

func (a *UserController) show(c *gin.Context) {
	user, ok := a.load(c)
	if !ok {
		return
	}
	a.respond(c, user, "users/show", "pages.users", gin.H{"user": user})
}

func (a *UserController) edit(c *gin.Context) {
	user, ok := a.load(c)
	if !ok {
		return
	}
	html(c, http.StatusOK, "users/edit", "pages.edit", gin.H{"user": user})
}

func (a *UserController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}
	editPath := "/users/" + strconv.Itoa(id) + "/edit"

	var form entity.UserForm
	if err := c.ShouldBind(&form); err != nil {
		a.flash(c, session.FlashError, "flash.userUpdateFailed", "Reason=="+err.Error())
		redirect(c, editPath)
		return
	}
	form.Normalize()
	if msgs := entity.Validate(&form, "Password"); len(msgs) > 0 {
		a.flashText(c, session.FlashError, strings.Join(msgs, " and "))
		redirect(c, editPath)
		return
	}

	user, err := a.userService.Update(id, form.Params())
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		a.flash(c, session.FlashError, "flash.userUpdateFailed", "Reason=="+errorReason(err))
		redirect(c, editPath)
		return
	}
	a.flash(c, session.FlashSuccess, "flash.userUpdated", "Name=="+user.FullName())
	redirect(c, "/users/"+strconv.Itoa(id))
}

func (a *UserController) delete(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}
	if err := a.userService.Delete(id); err != nil {
		a.fail(c, err)
		return
	}
	if current := middleware.GetCurrentUser(c); current != nil && current.Id == id {
		_ = session.ClearSession(c)
	}
	a.flash(c, session.FlashSuccess, "flash.userDeleted")
	redirect(c, "/users")
}

// load fetches the user named by :id or answers 404.
func (a *UserController) load(c *gin.Context) (*model.User, bool) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return nil, false
	}
	user, err := a.userService.Get(id)
	if err != nil {
		a.fail(c, err)
		return nil, false
	}
	return user, true
}
