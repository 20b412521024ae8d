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

// CourseController lists courses publicly and lets logged-in users manage them.
type CourseController struct {
	BaseController

	courseService service.CourseService
}

func NewCourseController(g *gin.RouterGroup) *CourseController {
	a := &CourseController{}
	a.initRouter(g)
	return a
}

func (a *CourseController) initRouter(g *gin.RouterGroup) {
	requireLogin := middleware.RequireLogin()

	g.GET("", a.index)
	g.GET("/new", requireLogin, a.newCourse)
	g.POST("/create", requireLogin, a.create)
	g.GET("/:id/edit", requireLogin, a.edit)
	g.PUT("/:id/update", requireLogin, a.update)
	g.DELETE("/:id/delete", requireLogin, a.delete)
	g.GET("/:id", a.show)
}

func (a *CourseController) index(c *gin.Context) {
	courses, err := a.courseService.List()
	if err != nil {
		a.fail(c, err)
		return
	}
	views := a.courseService.MarkJoined(courses, middleware.GetCurrentUser(c))
	a.respond(c, views, "courses/index", "pages.courses", gin.H{"courses": views})
}

func (a *CourseController) newCourse(c *gin.Context) {
	html(c, http.StatusOK, "courses/new", "pages.newCourse", nil)
}

func (a *CourseController) create(c *gin.Context) {
	params, msg := a.bind(c)
	if params == nil {
		a.flashText(c, session.FlashError, msg)
		redirect(c, "/courses/new")
		return
	}
	course, err := a.courseService.Create(*params)
	if err != nil {
		a.flash(c, session.FlashError, "flash.courseSaveFailed", "Reason=="+errorReason(err))
		redirect(c, "/courses/new")
		return
	}
	a.flash(c, session.FlashSuccess, "flash.courseCreated", "Title=="+course.Title)
	redirect(c, "/courses")
}

func (a *CourseController) show(c *gin.Context) {
	course, ok := a.load(c)
	if !ok {
		return
	}
	user := middleware.GetCurrentUser(c)
	view := a.courseService.MarkJoined([]model.Course{*course}, user)[0]
	a.respond(c, view, "courses/show", "pages.courses", gin.H{"course": view})
}

func (a *CourseController) edit(c *gin.Context) {
	course, ok := a.load(c)
	if !ok {
		return
	}
	html(c, http.StatusOK, "courses/edit", "pages.edit", gin.H{
		"course": course,
		"items":  strings.Join(course.Items, ", "),
	})
}

func (a *CourseController) update(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}
	editPath := "/courses/" + strconv.Itoa(id) + "/edit"

	params, msg := a.bind(c)
	if params == nil {
		a.flashText(c, session.FlashError, msg)
		redirect(c, editPath)
		return
	}
	course, err := a.courseService.Update(id, *params)
	if errors.Is(err, service.ErrNotFound) {
		NotFound(c)
		return
	} else if err != nil {
		a.flash(c, session.FlashError, "flash.courseSaveFailed", "Reason=="+errorReason(err))
		redirect(c, editPath)
		return
	}
	a.flash(c, session.FlashSuccess, "flash.courseUpdated", "Title=="+course.Title)
	redirect(c, "/courses/"+strconv.Itoa(id))
}

func (a *CourseController) delete(c *gin.Context) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return
	}
	if err := a.courseService.Delete(id); err != nil {
		a.fail(c, err)
		return
	}
	a.flash(c, session.FlashSuccess, "flash.courseDeleted")
	redirect(c, "/courses")
}

func (a *CourseController) load(c *gin.Context) (*model.Course, bool) {
	id, ok := paramId(c)
	if !ok {
		NotFound(c)
		return nil, false
	}
	course, err := a.courseService.Get(id)
	if err != nil {
		a.fail(c, err)
		return nil, false
	}
	return course, true
}

// bind reads the course form. On failure it returns the message to flash.
func (a *CourseController) bind(c *gin.Context) (*service.CourseParams, string) {
	var form entity.CourseForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, I18nWeb(c, "flash.courseSaveFailed", "Reason=="+err.Error())
	}
	form.Normalize()
	if msgs := entity.Validate(&form); len(msgs) > 0 {
		return nil, strings.Join(msgs, ", ")
	}
	params := form.Params(a.courseService.ParseItems(form.Items))
	return &params, ""
}
