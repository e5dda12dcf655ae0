package analytics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	xhttp "NextWorth/pkg/http"
	applogger "NextWorth/pkg/logger"
)

// BreakerConfig configures the circuit breaker in front of a model server.
type BreakerConfig struct {
	Enabled     bool
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	ReadyToTrip uint32
}

// HTTPServiceBase provides a shared foundation for model server clients.
// It centralizes client construction, the circuit breaker and JSON POSTs.
type HTTPServiceBase struct {
	baseURL string
	client  *xhttp.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPServiceBase builds an HTTP client with timeout and base URL. A nil
// logger disables breaker state logging.
func NewHTTPServiceBase(name, baseURL string, timeout time.Duration, bc BreakerConfig, l *applogger.Logger, opts ...xhttp.ClientOption) *HTTPServiceBase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	b := &HTTPServiceBase{
		baseURL: baseURL,
		client:  xhttp.NewClient(append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)...),
	}
	if bc.Enabled {
		b.breaker = newBreaker(name, bc, l)
	}
	return b
}

func newBreaker(name string, bc BreakerConfig, l *applogger.Logger) *gobreaker.CircuitBreaker {
	trip := bc.ReadyToTrip
	if trip == 0 {
		trip = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= trip
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			if l != nil {
				l.Warn("circuit breaker state changed",
					applogger.String("breaker", name),
					applogger.String("from", from.String()),
					applogger.String("to", to.String()),
				)
			}
		},
	})
}

// isBreakerSuccess keeps caller cancellations and 4xx rejections from
// counting against the model server.
func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.StatusCode < http.StatusInternalServerError
	}
	return false
}

// PostJSON posts the given payload to `path` under baseURL and decodes JSON into dest.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("model server client not initialized")
	}
	call := func() (interface{}, error) {
		return nil, b.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodPost,
			URL:    b.baseURL + path,
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
			Body: payload,
		}, dest)
	}

	var err error
	if b.breaker != nil {
		_, err = b.breaker.Execute(call)
	} else {
		_, err = call()
	}
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// State reports the breaker state, or "disabled".
func (b *HTTPServiceBase) State() string {
	if b.breaker == nil {
		return "disabled"
	}
	return b.breaker.State().String()
}
