// Package metrics defines all custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry via
// promauto at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// SignupsTotal counts successfully created credentials.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// IdentityResolutionsTotal counts completed role resolutions.
// Labels:
//   - role: the resolved role ("client" or "consultant")
//   - next_route: the navigational decision produced
var IdentityResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_resolutions_total",
		Help:      "Total number of successful identity resolutions, by role and route.",
	},
	[]string{"role", "next_route"},
)

// RoleConflictsTotal counts resolutions rejected because the claimed role
// differed from the stored one.
var RoleConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_conflicts_total",
		Help:      "Total number of identity resolutions rejected with a role conflict.",
	},
)

// ProfileSavesTotal counts profile upserts.
// Label:
//   - role: "client" or "consultant"
var ProfileSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_saves_total",
		Help:      "Total number of profile saves, by role.",
	},
	[]string{"role"},
)

// PictureUploadsTotal counts consultant picture uploads.
// Label:
//   - result: "success" or "failure"
var PictureUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picture_uploads_total",
		Help:      "Total number of picture uploads, by result.",
	},
	[]string{"result"},
)

// DirectoryReadsTotal counts directory listings.
// Label:
//   - source: "cache" or "store"
var DirectoryReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_reads_total",
		Help:      "Total number of consultant directory reads, by data source.",
	},
	[]string{"source"},
)
