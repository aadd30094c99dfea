package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Login attempts by result (success / failure).
	SessionLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	// Route accesses denied by the guard, by request path.
	AccessDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_denials_total",
			Help: "Total number of denied route accesses",
		},
		[]string{"path"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(SessionLogins, AccessDenials)
}
