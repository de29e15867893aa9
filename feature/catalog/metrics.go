package catalog

import (
	"catalog-sync/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReloadsTotal counts finished reloads by backend kind and outcome
// (ok, critical, failed or skipped).
var ReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_sync_reloads_total",
	Help: "Number of catalog reloads",
}, []string{"kind", "outcome"})

// ReloadDuration tracks how long reloads take per backend kind.
var ReloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "catalog_sync_reload_duration_seconds",
	Help:    "Duration of catalog reloads",
	Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
}, []string{"kind"})

// FetchedChannels is the channel count seen by the last reload of each account.
var FetchedChannels = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "catalog_sync_fetched_channels",
	Help: "Channels fetched by the last reload of an account",
}, []string{"account"})

func observe(result *reconcile.Result) {
	if result == nil {
		return
	}
	kind := string(result.Kind)
	ReloadsTotal.WithLabelValues(kind, outcome(result)).Inc()
	if result.Skipped {
		return
	}
	ReloadDuration.WithLabelValues(kind).Observe(result.Duration.Seconds())
	if result.Err == nil {
		FetchedChannels.WithLabelValues(result.AccountID).Set(float64(result.FetchedChannels))
	}
}

func outcome(result *reconcile.Result) string {
	switch {
	case result.Skipped:
		return "skipped"
	case result.Err != nil:
		return "failed"
	case result.CriticalFailure:
		return "critical"
	default:
		return "ok"
	}
}
