package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/gate"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	cachesvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/cache"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		StaticDir      string // built front-end, served behind the gate when set
		SessionTTL     time.Duration
		CookieSecure   bool

		Logger   core.Logger
		Actions  *actions.Actions
		Sessions core.SessionStore
		Gate     *gate.Gate
		Views    *cachesvc.Views
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		api      *webApi
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = s.opts.Debug

	s.api = &webApi{
		acts:         s.opts.Actions,
		views:        s.opts.Views,
		sessions:     s.opts.Sessions,
		logger:       s.opts.Logger,
		sessionTTL:   s.opts.SessionTTL,
		cookieSecure: s.opts.CookieSecure,
	}
	s.app.Use(sessionMiddleware(s.opts.Sessions))
	if s.opts.Gate != nil {
		s.app.Use(gate.Middleware(s.opts.Gate, getContextSession))
	}

	g := s.app.Group("/api")
	registerAuthAPI(g, s.api)
	registerCatalogAPI(g, s.api)
	registerStudentAPI(g, s.api)
	registerTeacherAPI(g, s.api)
	registerAdminAPI(g, s.api)

	if s.opts.StaticDir != "" {
		s.app.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:    s.opts.StaticDir,
			HTML5:   true,
			Skipper: func(ctx echo.Context) bool { return strings.HasPrefix(ctx.Request().URL.Path, "/api/") },
		}))
	} else {
		s.app.GET("/*", s.page)
	}
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Stop(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Errors() <-chan error { return s.errors }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

// page answers navigations the gate let through when no front-end build is served.
func (s *server) page(ctx echo.Context) error {
	sess := getContextSession(ctx)
	return ctx.JSON(http.StatusOK, echo.Map{
		"app":           s.opts.AppName,
		"path":          ctx.Request().URL.Path,
		"authenticated": !sess.IsAnonymous(),
		"role":          sess.Role,
	})
}
