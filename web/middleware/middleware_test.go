package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/database"
	"github.com/confetti-cuisine/confetti/database/model"
	"github.com/confetti-cuisine/confetti/web/cache"
	"github.com/confetti-cuisine/confetti/web/locale"
	"github.com/confetti-cuisine/confetti/web/service"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := locale.InitLocalizer(os.DirFS("..")); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupDB(t *testing.T) {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Type:   config.DatabaseTypeSQLite,
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")},
	}
	require.NoError(t, database.InitDB(cfg))
	t.Cleanup(func() { _ = database.CloseDB() })
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(session.CookieName, cookie.NewStore([]byte("test-secret"))))
	return r
}

func TestMethodOverride(t *testing.T) {
	var got string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method
	}))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		ctype  string
		want   string
	}{
		{"query on post", http.MethodPost, "/x?_method=DELETE", "", "", http.MethodDelete},
		{"form field on post", http.MethodPost, "/x", "_method=put&email=a", "application/x-www-form-urlencoded", http.MethodPut},
		{"query on get", http.MethodGet, "/x?_method=patch", "", "", http.MethodPatch},
		{"json body ignored", http.MethodPost, "/x", `{"_method":"DELETE"}`, "application/json", http.MethodPost},
		{"unsupported target", http.MethodPost, "/x?_method=TRACE", "", "", http.MethodPost},
		{"put untouched", http.MethodPut, "/x?_method=DELETE", "", "", http.MethodPut},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMethodOverrideKeepsForm(t *testing.T) {
	r := newEngine()
	r.PUT("/users/:id/update", func(c *gin.Context) {
		c.String(http.StatusOK, c.PostForm("email"))
	})
	form := url.Values{"_method": {"PUT"}, "email": {"jon@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/users/1/update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	MethodOverride(r).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jon@example.com", w.Body.String())
}

func TestRequireLogin(t *testing.T) {
	r := newEngine()
	r.GET("/private", RequireLogin(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })
	r.GET("/private-as-user", func(c *gin.Context) {
		c.Set(ContextCurrentUser, &model.User{Id: 1})
	}, RequireLogin(), func(c *gin.Context) { c.String(http.StatusOK, "secret") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/users/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private-as-user", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}

func TestRedirectIfAuthenticated(t *testing.T) {
	r := newEngine()
	r.GET("/login", RedirectIfAuthenticated(), func(c *gin.Context) { c.String(http.StatusOK, "form") })
	r.GET("/login-as-user", func(c *gin.Context) {
		c.Set(ContextCurrentUser, &model.User{Id: 1})
	}, RedirectIfAuthenticated(), func(c *gin.Context) { c.String(http.StatusOK, "form") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login-as-user", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCurrentUser(t *testing.T) {
	setupDB(t)
	u := &model.User{Email: "jon@example.com", ZipCode: 12345}
	require.NoError(t, (&service.UserService{}).Create(u, "pass123"))

	r := newEngine()
	r.Use(CurrentUser())
	r.GET("/login/:id", func(c *gin.Context) {
		id := 999
		if c.Param("id") == "real" {
			id = u.Id
		}
		_ = session.SetLoginUser(c, id)
	})
	r.GET("/me", func(c *gin.Context) {
		email := ""
		if user := GetCurrentUser(c); user != nil {
			email = user.Email
		}
		c.JSON(http.StatusOK, gin.H{"loggedIn": c.GetBool(ContextLoggedIn), "email": email, "session": session.GetLoginUserId(c)})
	})

	visit := func(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := visit("/me", nil)
	assert.JSONEq(t, `{"loggedIn":false,"email":"","session":0}`, w.Body.String())

	cookies := visit("/login/real", nil).Result().Cookies()
	w = visit("/me", cookies)
	assert.JSONEq(t, `{"loggedIn":true,"email":"jon@example.com","session":`+strconv.Itoa(u.Id)+`}`, w.Body.String())

	// a session pointing at a deleted user is cleared
	cookies = visit("/login/stale", nil).Result().Cookies()
	w = visit("/me", cookies)
	assert.JSONEq(t, `{"loggedIn":false,"email":"","session":0}`, w.Body.String())
}

func TestAPIAuth(t *testing.T) {
	setupDB(t)
	u := &model.User{Email: "jon@example.com", ZipCode: 12345}
	require.NoError(t, (&service.UserService{}).Create(u, "pass123"))

	auth := service.NewAuthService()
	valid, err := auth.IssueToken(u)
	require.NoError(t, err)
	ghost, err := auth.IssueToken(&model.User{Id: 999})
	require.NoError(t, err)

	r := newEngine()
	r.GET("/api/me", APIAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, GetCurrentUser(c).Email)
	})

	tests := []struct {
		name   string
		header string
		query  string
		status int
		body   string
	}{
		{"no token", "", "", http.StatusUnauthorized, `{"error":true,"message":"Provide Token"}`},
		{"bad jwt", "garbage", "", http.StatusUnauthorized, `{"error":true,"message":"Cannot verify API token."}`},
		{"unknown user", ghost, "", http.StatusForbidden, `{"error":true,"message":"No User account found."}`},
		{"bad api token", "", "nope", http.StatusUnauthorized, `{"error":true,"message":"Invalid API token."}`},
		{"jwt", valid, "", http.StatusOK, ""},
		{"api token", "", u.ApiToken, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/me"
			if tt.query != "" {
				target += "?apiToken=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("token", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, w.Body.String())
			} else {
				assert.Equal(t, "jon@example.com", w.Body.String())
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	r := newEngine()
	r.Use(RequestLogger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestRateLimit(t *testing.T) {
	r := newEngine()
	r.POST("/api/login", RateLimit(DefaultRateLimitConfig(2)), func(c *gin.Context) { c.Status(http.StatusOK) })

	post := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", nil))
		return w.Code
	}

	// no redis: unlimited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post())
	}

	require.NoError(t, cache.InitRedis(cache.EmbeddedAddr))
	defer cache.Close()
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}
