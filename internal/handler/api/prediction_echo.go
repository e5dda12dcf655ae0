package api

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"NextWorth/internal/domain/models"
	xhttp "NextWorth/pkg/http"
	xlogger "NextWorth/pkg/logger"
)

// PredictionService is the pipeline the handler drives.
type PredictionService interface {
	Run(ctx context.Context, req models.PredictRequest) (*models.ForecastResponse, error)
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
}

// ServiceInfo is reported by the index and health endpoints.
type ServiceInfo struct {
	Model   string
	Version string
}

// PredictionEchoHandler serves the prediction API over Echo.
type PredictionEchoHandler struct {
	logger  *xlogger.Logger
	svc     PredictionService
	info    ServiceInfo
	timeout time.Duration
}

func NewPredictionEchoHandler(logger *xlogger.Logger, svc PredictionService, info ServiceInfo, timeout time.Duration) *PredictionEchoHandler {
	return &PredictionEchoHandler{logger: logger, svc: svc, info: info, timeout: timeout}
}

func (h *PredictionEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)

	g := e.Group("/api")
	g.POST("/predict", h.Predict)
	g.POST("/analyze", h.Analyze)
}

// Index describes the service.
func (h *PredictionEchoHandler) Index(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"service":     "NextWorth ML Service",
		"description": "Time-series price forecasting service",
		"endpoints": map[string]string{
			"health":  "/health",
			"predict": "/api/predict (POST)",
			"analyze": "/api/analyze (POST)",
		},
	})
}

// Health reports liveness. It never touches the pipeline.
func (h *PredictionEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, models.HealthResponse{
		Status:  "ok",
		Model:   h.info.Model,
		Version: h.info.Version,
	})
}

// Predict runs the forecast pipeline.
func (h *PredictionEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		h.logger.Warn("rejected predict request", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.logger.Info("prediction request",
		xlogger.String("symbol", req.Symbol),
		xlogger.String("horizon", req.Horizon),
	)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.svc.Run(ctx, *req)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// Analyze returns descriptive statistics for a history.
func (h *PredictionEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		h.logger.Warn("rejected analyze request", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.svc.Analyze(ctx, *req)
	if err != nil {
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionEchoHandler) requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Request().Context())
	}
	return context.WithTimeout(c.Request().Context(), h.timeout)
}

// toAppError maps pipeline errors to HTTP errors. Only client input reasons
// are shown to the caller.
func toAppError(err error) *xhttp.AppError {
	switch {
	case errors.Is(err, models.ErrClientInput):
		return xhttp.BadRequestError(models.ReasonOf(err)).WithError(err)
	case errors.Is(err, models.ErrForecaster):
		return xhttp.InternalError("prediction generation failed").WithError(err)
	default:
		return xhttp.InternalError(xhttp.MsgInternal).WithError(err)
	}
}
