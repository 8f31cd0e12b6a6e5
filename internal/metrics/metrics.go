// Package metrics exposes Prometheus collectors for the interview room.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services and handlers report to.
type Recorder interface {
	RecordTokenIssued()
	RecordTokenFailure(reason string)
	RecordCommentSubmitted(rating int)
	RecordCommentRejected(reason string)
	RecordLiveSubscribers(delta int)
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	tokensIssued     prometheus.Counter
	tokenFailures    *prometheus.CounterVec
	commentsAdded    *prometheus.CounterVec
	commentsRejected *prometheus.CounterVec
	liveSubscribers  prometheus.Gauge
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "interview_room_stream_tokens_issued_total",
			Help: "Video service tokens issued.",
		}),
		tokenFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_room_stream_token_failures_total",
			Help: "Video service token requests that failed, by reason.",
		}, []string{"reason"}),
		commentsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_room_comments_submitted_total",
			Help: "Comments stored, by rating.",
		}, []string{"rating"}),
		commentsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_room_comments_rejected_total",
			Help: "Comment submissions that were not stored, by reason.",
		}, []string{"reason"}),
		liveSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "interview_room_live_subscribers",
			Help: "Open live comment streams.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_room_http_requests_total",
			Help: "HTTP requests, by method and status code.",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interview_room_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(
		c.tokensIssued,
		c.tokenFailures,
		c.commentsAdded,
		c.commentsRejected,
		c.liveSubscribers,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

func (c *Collector) RecordTokenFailure(reason string) {
	c.tokenFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordCommentSubmitted(rating int) {
	c.commentsAdded.WithLabelValues(strconv.Itoa(rating)).Inc()
}

func (c *Collector) RecordCommentRejected(reason string) {
	c.commentsRejected.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordLiveSubscribers(delta int) {
	c.liveSubscribers.Add(float64(delta))
}

// Middleware counts requests and observes their latency.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		c.httpRequests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		c.httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Flush keeps server-sent event streams working through the wrapper.
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordTokenIssued()           {}
func (Nop) RecordTokenFailure(string)    {}
func (Nop) RecordCommentSubmitted(int)   {}
func (Nop) RecordCommentRejected(string) {}
func (Nop) RecordLiveSubscribers(int)    {}
