package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domsvc "NextWorth/internal/domain/service"
)

// ErrBadArguments is returned before any call when the forecast arguments are unusable.
var ErrBadArguments = errors.New("invalid forecast arguments")

// HTTPForecaster delegates inference to a model server exposing POST /predict.
type HTTPForecaster struct {
	base  *HTTPServiceBase
	model string
}

// NewHTTPForecaster creates a forecaster for the named model behind base.
func NewHTTPForecaster(base *HTTPServiceBase, model string) *HTTPForecaster {
	return &HTTPForecaster{base: base, model: model}
}

type predictReq struct {
	Context          []float64 `json:"context"`
	PredictionLength int       `json:"prediction_length"`
	NumSamples       int       `json:"num_samples"`
	Model            string    `json:"model"`
}

type predictResp struct {
	Predictions []float64 `json:"predictions"`
}

// Predict sends the context window and returns the server's point forecasts
// unchanged. Length checks are left to the caller.
func (f *HTTPForecaster) Predict(ctx context.Context, series []float64, horizon, samples int) ([]float64, error) {
	if err := checkArgs(series, horizon, samples); err != nil {
		return nil, err
	}
	var pr predictResp
	err := f.base.PostJSON(ctx, "/predict", predictReq{
		Context:          series,
		PredictionLength: horizon,
		NumSamples:       samples,
		Model:            f.model,
	}, &pr)
	if err != nil {
		return nil, fmt.Errorf("model server predict: %w", err)
	}
	if pr.Predictions == nil {
		return nil, fmt.Errorf("model server predict: response has no predictions")
	}
	return pr.Predictions, nil
}

// Model returns the configured model identifier.
func (f *HTTPForecaster) Model() string { return f.model }

func checkArgs(series []float64, horizon, samples int) error {
	var problems []string
	if len(series) == 0 {
		problems = append(problems, "empty context")
	}
	if horizon <= 0 {
		problems = append(problems, fmt.Sprintf("horizon %d", horizon))
	}
	if samples <= 0 {
		problems = append(problems, fmt.Sprintf("samples %d", samples))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrBadArguments, strings.Join(problems, ", "))
	}
	return nil
}

var _ domsvc.Forecaster = (*HTTPForecaster)(nil)
