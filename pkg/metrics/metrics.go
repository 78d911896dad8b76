package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KV 存储调用延迟（秒）
	KVOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kv_op_duration_seconds",
			Help:    "Key-value backend call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"op", "driver", "status"},
	)

	// 存储错误计数（按错误类型）
	KVErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_errors_total",
			Help: "Total number of failed key-value backend calls by error type",
		},
		[]string{"driver", "error_type"},
	)

	// 快照保存计数
	SnapshotSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_snapshot_saves_total",
			Help: "Total number of habit snapshot saves",
		},
		[]string{"status"}, // status: success, failed
	)

	// 习惯变更计数
	HabitMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_mutations_total",
			Help: "Total number of applied habit mutations",
		},
		[]string{"op"}, // op: add, toggle, delete
	)

	// 事件发布计数
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_events_published_total",
			Help: "Total number of habit change events published",
		},
		[]string{"kind", "status"},
	)

	// 慢查询计数
	SlowQueryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of storage queries slower than the threshold",
		},
		[]string{"sql"},
	)

	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordKVOp 记录一次存储调用
func RecordKVOp(op, driver string, err error, duration time.Duration) {
	KVOpDuration.WithLabelValues(op, driver, statusOf(err)).Observe(duration.Seconds())
}

// IncrementKVError 增加存储错误计数
func IncrementKVError(driver, errorType string) {
	KVErrors.WithLabelValues(driver, errorType).Inc()
}

// IncrementSnapshotSave 增加快照保存计数
func IncrementSnapshotSave(err error) {
	SnapshotSaves.WithLabelValues(statusOf(err)).Inc()
}

// IncrementMutation 增加变更计数
func IncrementMutation(op string) {
	HabitMutations.WithLabelValues(op).Inc()
}

// IncrementEventPublished 增加事件发布计数
func IncrementEventPublished(kind string, err error) {
	EventsPublished.WithLabelValues(kind, statusOf(err)).Inc()
}

// IncrementSlowQuery 增加慢查询计数
func IncrementSlowQuery(sql string) {
	SlowQueryCount.WithLabelValues(sql).Inc()
}

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}
