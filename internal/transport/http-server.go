package transport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/flashcards/internal/config"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/models"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/service"
	"github.com/Rogue-Bear-Innovations/flashcards/internal/ui"
)

const (
	msgInvalidBody    = "Invalid request body"
	msgMissingFields  = "Missing required fields"
	msgInvalidID      = "Invalid id"
	msgInternalServer = "Internal server error"
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		svc    *service.StudyTools
		api    ui.API
		logger *zap.SugaredLogger
		e      *echo.Echo
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, svc *service.StudyTools, api ui.API, logger *zap.SugaredLogger) (*HTTPServer, error) {
	instance, err := newServer(svc, api, logger)
	if err != nil {
		return nil, err
	}
	e := instance.e

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				logger.Infow("Starting HTTP server.", "listen", listen)
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("shutting down the server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return instance, nil
}

func newServer(svc *service.StudyTools, api ui.API, logger *zap.SugaredLogger) (*HTTPServer, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := HTTPServer{
		svc:    svc,
		api:    api,
		logger: logger,
		e:      e,
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	apiG := e.Group("/api/study-tools")
	apiG.GET("", instance.StudyToolList)
	apiG.POST("", instance.StudyToolCreate)
	apiG.DELETE("", instance.StudyToolDelete)

	e.GET("/", instance.Home)
	e.POST("/tools", instance.ToolCreate)
	e.POST("/tools/:id/flashcards", instance.FlashcardCreate)
	e.POST("/tools/:id/delete", instance.ToolDelete)
	e.POST("/flashcards/:id/delete", instance.FlashcardDelete)
	e.POST("/reset", instance.Reset)
	e.StaticFS("/static", ui.Assets())

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.errorHandler

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	return &instance, nil
}

// ServeHTTP lets tests drive the router without a listener.
func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// errorHandler renders every failure as {"error": "..."} and logs its cause.
func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = echo.NewHTTPError(http.StatusInternalServerError, msgInternalServer).SetInternal(err)
	}

	if he.Internal != nil {
		fields := []interface{}{
			"error", he.Internal,
			"status", he.Code,
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		}
		if he.Code >= http.StatusInternalServerError {
			s.logger.Errorw(fmt.Sprint(he.Message), fields...)
		} else {
			s.logger.Warnw(fmt.Sprint(he.Message), fields...)
		}
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, models.ErrorResp{Error: fmt.Sprint(he.Message)})
	}
	if err != nil {
		s.logger.Errorw("write error response", "error", err)
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return errors.Wrap(err, "validate")
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidBody).SetInternal(err)
	}
	if err := c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgMissingFields).SetInternal(err)
	}
	return nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	return parseID(v)
}

// parseID accepts positive decimal ids only.
func parseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msgInvalidID).SetInternal(err)
	}
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msgInvalidID)
	}
	return id, nil
}
