package models

// Prediction is one forecast period.
type Prediction struct {
	Date           string  `json:"date"`
	PredictedClose float64 `json:"predicted_close"`
}

// ForecastResponse is the successful result of a prediction request.
type ForecastResponse struct {
	Symbol          string       `json:"symbol"`
	Horizon         string       `json:"horizon"`
	Predictions     []Prediction `json:"predictions"`
	ModelVersion    string       `json:"model_version"`
	InferenceTimeMS int64        `json:"inference_time_ms"`
	InputDataPoints int          `json:"input_data_points"`
	Currency        string       `json:"currency"`
}

// Statistics summarizes a price sequence. Derived on demand, never stored.
type Statistics struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Count  int     `json:"count"`
}

// AnalyzeResponse is the result of POST /api/analyze.
type AnalyzeResponse struct {
	Symbol        string     `json:"symbol"`
	Statistics    Statistics `json:"statistics"`
	Outliers      []int      `json:"outliers"`
	Chronological bool       `json:"chronological"`
}

// HealthResponse is served by the liveness endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Version string `json:"version"`
}
