// Package session keeps the logged-in user id and pending flash messages in
// the gin-contrib session.
package session

import (
	"encoding/gob"
	"net/http"

	"github.com/confetti-cuisine/confetti/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUser = "LOGIN_USER"
	// CookieName is the name of the session cookie.
	CookieName = "confetti"

	saverKey = "session_saver"
	dirtyKey = "session_dirty"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

var flashKinds = []string{FlashSuccess, FlashError}

func init() {
	// flashes are stored as []any
	gob.Register([]any{})
}

// Saver writes the session at most once per request, right before the
// response headers go out. Without it every helper saves on its own.
func Saver() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(saverKey, true)
		c.Writer = &saveWriter{ResponseWriter: c.Writer, c: c}
		c.Next()
		if !c.Writer.Written() {
			save(c)
		}
	}
}

type saveWriter struct {
	gin.ResponseWriter
	c *gin.Context
}

func (w *saveWriter) WriteHeader(code int) {
	save(w.c)
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveWriter) WriteHeaderNow() {
	save(w.c)
	w.ResponseWriter.WriteHeaderNow()
}

func (w *saveWriter) Write(data []byte) (int, error) {
	save(w.c)
	return w.ResponseWriter.Write(data)
}

func (w *saveWriter) WriteString(s string) (int, error) {
	save(w.c)
	return w.ResponseWriter.WriteString(s)
}

func save(c *gin.Context) {
	if !c.GetBool(dirtyKey) {
		return
	}
	c.Set(dirtyKey, false)
	if err := sessions.Default(c).Save(); err != nil {
		logger.Warning("save session err:", err)
	}
}

// stage marks the session for the Saver, or saves it right away when the
// Saver is not installed.
func stage(c *gin.Context, s sessions.Session) error {
	if c.GetBool(saverKey) {
		c.Set(dirtyKey, true)
		return nil
	}
	return s.Save()
}

func SetLoginUser(c *gin.Context, userId int) error {
	s := sessions.Default(c)
	s.Set(loginUser, userId)
	return stage(c, s)
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return stage(c, s)
}

// GetLoginUserId returns the id stored at login, or 0.
func GetLoginUserId(c *gin.Context) int {
	s := sessions.Default(c)
	if id, ok := s.Get(loginUser).(int); ok {
		return id
	}
	return 0
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUserId(c) != 0
}

// ClearSession logs the user out. Pending flashes survive so the logout
// message can still be shown.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUser)
	return stage(c, s)
}

// AddFlash queues msg for the next rendered page.
func AddFlash(c *gin.Context, kind, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg, kind)
	_ = stage(c, s)
}

// Flashes returns and clears the pending messages, keyed by kind.
func Flashes(c *gin.Context) map[string][]string {
	s := sessions.Default(c)
	out := make(map[string][]string)
	for _, kind := range flashKinds {
		for _, f := range s.Flashes(kind) {
			if msg, ok := f.(string); ok {
				out[kind] = append(out[kind], msg)
			}
		}
	}
	if len(out) > 0 {
		_ = stage(c, s)
	}
	return out
}
