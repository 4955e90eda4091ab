package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP latency per route.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "rclinic_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.2,   // slow request threshold
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
			},
		},
		[]string{"method", "route", "status"},
	)

	CouponVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rclinic_coupon_verifications_total",
			Help: "Coupon verifications by resulting status",
		},
		[]string{"status"}, // valid, redeemed, expired, invalid
	)

	CouponRedemptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rclinic_coupon_redemptions_total",
			Help: "Coupon redemption attempts by result",
		},
		[]string{"result"}, // redeemed, rejected, locked, error
	)

	RemindersSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rclinic_reminders_total",
			Help: "Appointment reminders by channel and delivery status",
		},
		[]string{"channel", "status"},
	)
)

func ObserveRequest(method, route string, status int, d time.Duration) {
	RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func RecordVerification(status string) {
	CouponVerifications.WithLabelValues(status).Inc()
}

func RecordRedemption(result string) {
	CouponRedemptions.WithLabelValues(result).Inc()
}

func RecordReminder(channel, status string) {
	RemindersSent.WithLabelValues(channel, status).Inc()
}
