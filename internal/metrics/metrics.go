package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// User Activity Metrics
	NewUsersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_new_users_total",
		Help: "Total number of first-time OAuth sign-ins.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts (successful and failed).",
	}, []string{"status"}) // status: "success" or "failed"

	// Feature Usage Metrics
	ItemCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_item_created_total",
		Help: "Total number of items saved, by content type.",
	}, []string{"type"})
	FolderCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_folder_created_total",
		Help: "Total number of folders created.",
	})
	FolderDeleteConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_folder_delete_conflicts_total",
		Help: "Total number of folder deletions rejected because subfolders exist.",
	})
)
