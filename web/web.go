// Package web assembles the gin engine of the site and runs it together with
// its background jobs.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/confetti-cuisine/confetti/config"
	"github.com/confetti-cuisine/confetti/logger"
	"github.com/confetti-cuisine/confetti/util/common"
	"github.com/confetti-cuisine/confetti/web/cache"
	"github.com/confetti-cuisine/confetti/web/controller"
	"github.com/confetti-cuisine/confetti/web/job"
	"github.com/confetti-cuisine/confetti/web/locale"
	"github.com/confetti-cuisine/confetti/web/middleware"
	"github.com/confetti-cuisine/confetti/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

const shutdownTimeout = 5 * time.Second

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo pins ModTime so embedded assets get a stable Last-Modified.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the site's HTTP server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	home        *controller.HomeController
	users       *controller.UserController
	subscribers *controller.SubscriberController
	courses     *controller.CourseController
	api         *controller.APIController

	cron *cron.Cron
}

func NewServer() *Server {
	return &Server{}
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// newSessionStore keeps sessions in signed cookies, or in redis when
// CC_REDIS_ADDR is set.
func (s *Server) newSessionStore() (sessions.Store, error) {
	secret := []byte(config.GetSessionSecret())
	var store sessions.Store
	if addr := config.GetRedisAddr(); addr != "" {
		if err := cache.InitRedis(addr); err != nil {
			return nil, err
		}
		store = cache.NewRedisStore(cache.GetClient(), secret)
	} else {
		store = cookie.NewStore(secret)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// initRouter builds the engine: middleware, templates, assets and routes.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	store, err := s.newSessionStore()
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Logger())
	engine.Use(gin.CustomRecovery(controller.Recovery))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/"})))
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(session.Saver())
	engine.Use(locale.LocalizerMiddleware())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.CurrentUser())

	funcMap := template.FuncMap{
		"i18n": func(key string, params ...string) string {
			return locale.I18n(nil, key, params...)
		},
		"join": strings.Join,
	}
	engine.SetFuncMap(funcMap)
	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)
	engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsFS}))

	s.home = controller.NewHomeController(engine.Group("/"))
	s.users = controller.NewUserController(engine.Group("/users"))
	s.subscribers = controller.NewSubscriberController(engine.Group("/subscribers"))
	s.courses = controller.NewCourseController(engine.Group("/courses"))
	s.api = controller.NewAPIController(engine.Group("/api"))

	engine.NoRoute(controller.NotFound)

	return engine, nil
}

// Handler returns the engine wrapped with the _method override.
func (s *Server) Handler() (http.Handler, error) {
	engine, err := s.initRouter()
	if err != nil {
		return nil, err
	}
	return middleware.MethodOverride(engine), nil
}

func (s *Server) startTask() {
	spec := config.GetLinkCron()
	if _, err := s.cron.AddJob(spec, job.NewLinkSubscribersJob()); err != nil {
		logger.Warningf("Add LinkSubscribersJob error[%s], Runtime[%s] invalid, will run default", err, spec)
		s.cron.AddJob("@every 5m", job.NewLinkSubscribersJob())
	}
}

// Start builds the router, starts the cron jobs and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	for _, name := range config.DefaultSecrets() {
		logger.Warningf("%s is not set, using the built-in default; set it before going to production", name)
	}

	s.cron = cron.New()
	s.cron.Start()

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server stopped:", err)
		}
	}()

	s.startTask()
	return nil
}

// Stop shuts down the HTTP server, the cron jobs and redis.
func (s *Server) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			err2 = err
		}
	}
	return common.Combine(err1, err2, cache.Close())
}
