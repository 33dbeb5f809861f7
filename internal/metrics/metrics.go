// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// author/postサービスのMetricsRecorderインターフェースを満たす。
type Collector struct {
	signups        prometheus.Counter
	draftsCreated  prometheus.Counter
	postsPublished prometheus.Counter
	viewIncrements prometheus.Counter
	postsDeleted   prometheus.Counter
	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_signups_total",
			Help: "著者サインアップの合計数",
		}),
		draftsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_drafts_created_total",
			Help: "作成されたドラフトの合計数",
		}),
		postsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_posts_published_total",
			Help: "公開された投稿の合計数",
		}),
		viewIncrements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_post_views_total",
			Help: "投稿閲覧数インクリメントの合計数",
		}),
		postsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogd_posts_deleted_total",
			Help: "削除された投稿の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogd_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogd_request_latency_seconds",
			Help:    "HTTPリクエストのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.signups,
		c.draftsCreated,
		c.postsPublished,
		c.viewIncrements,
		c.postsDeleted,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordSignup はサインアップを記録する。
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordDraftCreated はドラフト作成を記録する。
func (c *Collector) RecordDraftCreated() {
	c.draftsCreated.Inc()
}

// RecordPostPublished は投稿公開を記録する。
func (c *Collector) RecordPostPublished() {
	c.postsPublished.Inc()
}

// RecordViewIncrement は閲覧数インクリメントを記録する。
func (c *Collector) RecordViewIncrement() {
	c.viewIncrements.Inc()
}

// RecordPostDeleted は投稿削除を記録する。
func (c *Collector) RecordPostDeleted() {
	c.postsDeleted.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエストのレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
