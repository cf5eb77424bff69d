package models

import "time"

// SystemMetrics represents system level instrumentation exposed for
// operational monitoring of the dashboard service.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	ComputeCount             uint64    `json:"compute_count"`
	AverageComputeDurationMs float64   `json:"average_compute_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
