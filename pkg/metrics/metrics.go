package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics métricas Prometheus de la aplicación. Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	ClientsCreated     prometheus.Counter
	ClientsUpdated     prometheus.Counter
	ClientsDeleted     prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
}

// New crea y registra las métricas en reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "clients_created_total",
			Help: "Total de clientes cadastrados",
		}),
		ClientsUpdated: f.NewCounter(prometheus.CounterOpts{
			Name: "clients_updated_total",
			Help: "Total de clientes editados",
		}),
		ClientsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "clients_deleted_total",
			Help: "Total de solicitudes de exclusión de clientes",
		}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "client_validation_failures_total",
			Help: "Errores de validación de formulario por campo",
		}, []string{"field"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Solicitudes HTTP atendidas",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las solicitudes HTTP",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.ClientsCreated.Inc()
	}
}

func (m *Metrics) IncrementUpdated() {
	if m != nil {
		m.ClientsUpdated.Inc()
	}
}

func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.ClientsDeleted.Inc()
	}
}

// IncrementValidationFailure cuenta un error de validación del campo dado.
func (m *Metrics) IncrementValidationFailure(field string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(field).Inc()
	}
}

// ObserveRequest registra una solicitud HTTP. Llamar con time.Now() tomado al inicio.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
