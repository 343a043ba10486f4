// Package telemetry provides Prometheus metrics and the ops HTTP router.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons a chat message did not produce a track import.
const (
	ReasonOutOfScope    = "out_of_scope"
	ReasonNoLink        = "no_link"
	ReasonMalformedLink = "malformed_link"
)

var (
	once sync.Once

	// Counters
	TracksImported      prometheus.Counter
	TrackImportsFailed  prometheus.Counter
	PlaylistsCreated    prometheus.Counter
	PlaylistCacheHits   prometheus.Counter
	PlaylistPagesListed prometheus.Counter
	MessagesIgnored     *prometheus.CounterVec

	// Histograms (seconds)
	AddTrackDuration prometheus.Observer
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		TracksImported = promauto.NewCounter(prometheus.CounterOpts{
			Name: "musicow_tracks_imported_total",
			Help: "Number of tracks appended to the managed playlist",
		})
		TrackImportsFailed = promauto.NewCounter(prometheus.CounterOpts{
			Name: "musicow_track_imports_failed_total",
			Help: "Number of track imports that failed at the playlist service",
		})
		PlaylistsCreated = promauto.NewCounter(prometheus.CounterOpts{
			Name: "musicow_playlists_created_total",
			Help: "Number of playlists created",
		})
		PlaylistCacheHits = promauto.NewCounter(prometheus.CounterOpts{
			Name: "musicow_playlist_cache_hits_total",
			Help: "Number of playlist resolutions served from the in-memory cache",
		})
		PlaylistPagesListed = promauto.NewCounter(prometheus.CounterOpts{
			Name: "musicow_playlist_pages_listed_total",
			Help: "Number of playlist listing pages fetched",
		})
		MessagesIgnored = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "musicow_messages_ignored_total",
			Help: "Number of chat messages that produced no import",
		}, []string{"reason"})
		AddTrackDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "musicow_add_track_duration_seconds",
			Help:    "Duration of resolve-and-append calls in seconds",
			Buckets: prometheus.DefBuckets,
		})
	})
}

// Inc increments c if metrics have been initialized.
func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// IncIgnored records an ignored message for the given reason.
func IncIgnored(reason string) {
	if MessagesIgnored != nil {
		MessagesIgnored.WithLabelValues(reason).Inc()
	}
}

// ObserveSince records the time elapsed since start in obs if non-nil.
func ObserveSince(obs prometheus.Observer, start time.Time) {
	if obs != nil {
		obs.Observe(time.Since(start).Seconds())
	}
}
