// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type Recorder interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordScribeCreated()
	RecordEntryCreated()
	RecordAuthFailure()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestDuration prometheus.Histogram
	scribesCreated  prometheus.Counter
	entriesCreated  prometheus.Counter
	authFailures    prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "logbook_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "logbook_request_duration_seconds",
			Help:    "リクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		scribesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logbook_scribes_created_total",
			Help: "登録されたScribeの合計数",
		}),
		entriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logbook_entries_created_total",
			Help: "作成されたEntryの合計数",
		}),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logbook_auth_failures_total",
			Help: "Basic認証の検証失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.scribesCreated,
		c.entriesCreated,
		c.authFailures,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordScribeCreated はScribe登録を記録する。
func (c *Collector) RecordScribeCreated() {
	c.scribesCreated.Inc()
}

// RecordEntryCreated はEntry作成を記録する。
func (c *Collector) RecordEntryCreated() {
	c.entriesCreated.Inc()
}

// RecordAuthFailure は認証失敗を記録する。
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
