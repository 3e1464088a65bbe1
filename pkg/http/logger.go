package http

import (
	"strings"

	"go.uber.org/zap"

	"weather-notifier/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses
type HTTPLogger interface {
	// LogRequest is called before the request is sent with all request data formed
	LogRequest(method, url string, headers map[string]string, body string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called immediately after receiving an error response or a transport failure
	LogResponseError(method, url string, headers map[string]string, body string, httpStatus int, responseBody string, latency int64, err error)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) LogRequest(string, string, map[string]string, string) {}

func (NopLogger) LogResponseSuccess(string, string, map[string]string, string, int, string, int64) {}

func (NopLogger) LogResponseError(string, string, map[string]string, string, int, string, int64, error) {
}

// ZapLogger writes outbound calls through pkg/log. Query strings are dropped from the logged
// url since they can carry api keys.
type ZapLogger struct{}

func (ZapLogger) LogRequest(method, url string, _ map[string]string, _ string) {
	log.Debug("Outbound request", zap.String("method", method), zap.String("url", stripQuery(url)))
}

func (ZapLogger) LogResponseSuccess(method, url string, _ map[string]string, _ string, httpStatus int, _ string, latency int64) {
	log.Info("Outbound request finished",
		zap.String("method", method),
		zap.String("url", stripQuery(url)),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
}

func (ZapLogger) LogResponseError(method, url string, _ map[string]string, _ string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("Outbound request failed",
		zap.String("method", method),
		zap.String("url", stripQuery(url)),
		zap.Int("status", httpStatus),
		zap.String("response_body", responseBody),
		zap.Int64("latency_ms", latency),
		zap.Error(err))
}

func stripQuery(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		return url[:i]
	}
	return url
}
