package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Logins = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "blogsphere", Name: "logins_total", Help: "Number of successful logins."},
	)
	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogsphere", Name: "auth_failures_total", Help: "Number of rejected authentications by reason."},
		[]string{"reason"},
	)
	PostOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogsphere", Name: "post_operations_total", Help: "Number of completed post operations by type."},
		[]string{"op"},
	)
	PostOperationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "blogsphere", Name: "post_operation_errors_total", Help: "Number of failed post operations by type."},
		[]string{"op"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Logins)
	reg.MustRegister(AuthFailures)
	reg.MustRegister(PostOperations)
	reg.MustRegister(PostOperationErrors)
}
