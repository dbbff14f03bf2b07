// Package echoapi is the local development server: it exposes the ITMS REST
// surface over the same simulated tables the mock facade uses, so the
// network client has something to talk to without the production backend.
package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/itmsdev/itms-client/core"
	"github.com/itmsdev/itms-client/storage/kv"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		Conf           *core.Config
		Log            core.Logger
		Store          kv.Store
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Log == nil {
		opts.Log = core.NopLogger{}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Log)
	s.app.HideBanner = true
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	registerAuthAPI(s.app, conf, s.opts.Log, s.opts.Store)
	registerResourceAPI(s.app, conf, s.opts.Store)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "ITMS mock API")
}

// respond wraps every payload in the {data, message} envelope the clients
// expect.
func respond(ctx echo.Context, status int, data interface{}, message string) error {
	return ctx.JSON(status, echo.Map{"data": data, "message": message})
}
