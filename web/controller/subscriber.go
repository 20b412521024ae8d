package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/web/entity"
	"github.com/confetti-cuisine/confetti/web/middleware"
	"github.com/confetti-cuisine/confetti/web/service"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

// SubscriberController is the admin CRUD for newsletter subscribers.
type SubscriberController struct {
	BaseController

	subscriberService service.SubscriberService
}

func NewSubscriberController(g *gin.RouterGroup) *SubscriberController {
	a := &SubscriberController{}
	a.initRouter(g)
	return a
}

func (a *SubscriberController) initRouter(g *gin.RouterGroup) {
	g.Use(middleware.RequireLogin())

	g.GET("", a.index)
	g.GET("/new", a.newSubscriber)
	g.POST("/create", a.create)
	g.GET("/:id/edit", a.edit)
	g.PUT("/:id/update", a.update)
	g.GET("/:id", a.show)
	g.DELETE("/:id/delete", a.delete)
}

func (a *SubscriberController) index(c *gin.Context) {
	subscribers, err := a.subscriberService.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	a.respond(c, subscribers, "subscribers/index", "pages.subscribers", gin.H{"subscribers": subscribers})
}

func (a *SubscriberController) newSubscriber(c *gin.Context) {
	html(c, http.StatusOK, "subscribers/new", "pages.newSubscriber", nil)
}

func (a *SubscriberController) create(c *gin.Context) {
	form, msg := bindSubscriber(c)
	if form == nil {
		a.flashText(c, session.FlashError, msg)
		redirect(c, "/subscribers/new")
		return
	}
	if _, err := a.subscriberService.Create(form.Params()); err != nil {
		a.flashText(c, session.FlashError, subscriberError(c, err))
		redirect(c, "/subscribers/new")
		return
	}
	a.flash(c, session.FlashSuccess, "flash.subscriberCreated")
	redirect(c, "/subscribers")
}

func (a *SubscriberController) show(c *gin.Context) {
	sub, ok := a.load(c)
	if !ok {
		return
	}
	local, err := a.subscriberService.FindLocal(sub)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.respond(c, sub, "subscribers/show", "pages.subscribers", gin.H{"subscriber": sub, "local": local})
}

func (a *SubscriberController) edit(c *gin.Context) {
	sub, ok := a.load(c)
	if !ok {
		return
	}
	html(c, http.StatusOK, "subscribers/edit", "pages.edit", gin.H{"subscriber": sub})
}

func (a *SubscriberController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}
	editPath := "/subscribers/" + strconv.Itoa(id) + "/edit"

	form, msg := bindSubscriber(c)
	if form == nil {
		a.flashText(c, session.FlashError, msg)
		redirect(c, editPath)
		return
	}
	_, err := a.subscriberService.Update(id, form.Params())
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		a.flashText(c, session.FlashError, subscriberError(c, err))
		redirect(c, editPath)
		return
	}
	a.flash(c, session.FlashSuccess, "flash.subscriberUpdated")
	redirect(c, "/subscribers/"+strconv.Itoa(id))
}

func (a *SubscriberController) delete(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}
	if err := a.subscriberService.Delete(id); err != nil {
		a.fail(c, err)
		return
	}
	a.flash(c, session.FlashSuccess, "flash.subscriberDeleted")
	redirect(c, "/subscribers")
}

func (a *SubscriberController) load(c *gin.Context) (*model.Subscriber, bool) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return nil, false
	}
	sub, err := a.subscriberService.Get(id)
	if err != nil {
		a.fail(c, err)
		return nil, false
	}
	return sub, true
}

// bindSubscriber reads and checks the subscriber form. On failure it returns
// the message to flash.
func bindSubscriber(c *gin.Context) (*entity.SubscriberForm, string) {
	var form entity.SubscriberForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, subscriberError(c, err)
	}
	form.Normalize()
	if msgs := entity.Validate(&form); len(msgs) > 0 {
		return nil, strings.Join(msgs, ", ")
	}
	return &form, ""
}
