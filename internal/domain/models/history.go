package models

import "encoding/json"

// HistoryPoint is one historical observation as submitted by the caller.
// Close is kept as raw JSON so the history validator can tell a missing close
// from a non-numeric one and report the exact index.
type HistoryPoint struct {
	Date  string          `json:"date,omitempty"`
	Close json.RawMessage `json:"close,omitempty"`
}

// PredictRequest is the inbound body of POST /api/predict.
type PredictRequest struct {
	Symbol   string         `json:"symbol" validate:"required"`
	History  []HistoryPoint `json:"history" validate:"required"`
	Horizon  string         `json:"horizon" validate:"required"`
	Currency string         `json:"currency" default:"USD"`
}

// AnalyzeRequest is the inbound body of POST /api/analyze.
type AnalyzeRequest struct {
	Symbol  string         `json:"symbol" validate:"required"`
	History []HistoryPoint `json:"history" validate:"required"`
}

// Point builds a HistoryPoint from a date and a numeric close.
func Point(date string, price float64) HistoryPoint {
	b, _ := json.Marshal(price)
	return HistoryPoint{Date: date, Close: b}
}
