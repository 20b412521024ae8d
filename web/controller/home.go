package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/web/service"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-gonic/gin"
)

// HomeController serves the landing page and the public contact form.
type HomeController struct {
	BaseController

	subscriberService service.SubscriberService
}

func NewHomeController(g *gin.RouterGroup) *HomeController {
	a := &HomeController{}
	a.initRouter(g)
	return a
}

func (a *HomeController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/contact", a.contact)
	g.POST("/subscribers/subscribe", a.subscribe)
}

func (a *HomeController) index(c *gin.Context) {
	html(c, http.StatusOK, "home/index", "pages.brand", nil)
}

func (a *HomeController) contact(c *gin.Context) {
	html(c, http.StatusOK, "home/contact", "pages.contact", nil)
}

func (a *HomeController) subscribe(c *gin.Context) {
	sub, msg := a.saveSubscriber(c)
	if sub == nil {
		a.flashText(c, session.FlashError, msg)
		redirect(c, "/contact")
		return
	}
	logger.Infof("new subscriber %s from %s", sub.Email, getRemoteIp(c))
	html(c, http.StatusOK, "home/thanks", "pages.thanks", gin.H{"subscriber": sub})
}

// saveSubscriber stores the contact form. On failure it returns the message
// to flash.
func (a *HomeController) saveSubscriber(c *gin.Context) (*model.Subscriber, string) {
	form, msg := bindSubscriber(c)
	if form == nil {
		return nil, msg
	}
	sub, err := a.subscriberService.Create(form.Params())
	if err != nil {
		return nil, subscriberError(c, err)
	}
	return sub, ""
}

// subscriberError explains why a subscriber could not be saved.
func subscriberError(c *gin.Context, err error) string {
	if database.IsDuplicate(err) {
		return I18nWeb(c, "flash.subscriberDuplicate")
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return strings.Join(ve.Messages(), ", ")
	}
	return I18nWeb(c, "flash.subscriberFailed", "Reason=="+err.Error())
}
