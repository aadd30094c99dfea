package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hirable/webgate/internal/audit"
	"github.com/hirable/webgate/internal/authz"
	"github.com/hirable/webgate/internal/guard"
	"github.com/hirable/webgate/internal/handler"
	"github.com/hirable/webgate/internal/storage/token"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, RequestDuration)
}

// SetupRouter mounts every gateway route behind the metrics and role guard
// middleware. Routes absent from the permission table are unrestricted;
// the backend still enforces its own authentication on them.
func SetupRouter(h *handler.Handler, table *authz.Table, decoder *token.Decoder, auditor audit.Publisher, metricsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)
	r.Use(mux.MiddlewareFunc(guard.Middleware(table, decoder, auditor)))

	h.RegisterAuthRoutes(r)
	h.RegisterCandidateRoutes(r)
	h.RegisterEmployerRoutes(r)

	r.Handle("/metrics", metricsHandler).Methods("GET")
	return r
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		endpoint := r.URL.Path
		method := r.Method

		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		status := fmt.Sprintf("%d", recorder.status)
		RequestCounter.WithLabelValues(method, endpoint, status).Inc()
		RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	})
}

// statusRecorder captures the response status for the metrics labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}
