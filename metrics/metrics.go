package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the registry
type Metrics struct {
	RegistrationsTotal  prometheus.Counter
	LoginsTotal         *prometheus.CounterVec
	ProfileUpsertsTotal prometheus.Counter
	HospitalWritesTotal *prometheus.CounterVec
	ApplicationsTotal   *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_registrations_total",
			Help: "Total number of user accounts registered",
		}),
		LoginsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_logins_total",
			Help: "Total number of login attempts by result",
		}, []string{"result"}),
		ProfileUpsertsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "bloodlink_profile_upserts_total",
			Help: "Total number of donor profiles created or updated",
		}),
		HospitalWritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_hospital_writes_total",
			Help: "Total number of hospital directory writes by operation",
		}, []string{"operation"}),
		ApplicationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodlink_donor_applications_total",
			Help: "Total number of donor application transitions by resulting status",
		}, []string{"status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bloodlink_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementRegistrations() {
	m.RegistrationsTotal.Inc()
}

// ObserveLogin records a login attempt
func (m *Metrics) ObserveLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.LoginsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementProfileUpserts() {
	m.ProfileUpsertsTotal.Inc()
}

// IncrementHospitalWrites counts a hospital create or update
func (m *Metrics) IncrementHospitalWrites(operation string) {
	m.HospitalWritesTotal.WithLabelValues(operation).Inc()
}

// IncrementApplications counts an application entering status
func (m *Metrics) IncrementApplications(status string) {
	m.ApplicationsTotal.WithLabelValues(status).Inc()
}

// ObserveRequest records the latency of one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
