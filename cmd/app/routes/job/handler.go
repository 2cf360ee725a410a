package job

import (
	"github.com/wanoverlay/manager/cmd/app/router"
	"github.com/wanoverlay/manager/internal/controller/job"
)

// RegisterRoutes registers deployment job routes.
// This function must be called after router.Init() to ensure router.StoreIns is initialized.
func RegisterRoutes() {
	jobController := job.NewJobController(router.StoreIns)

	authed := router.Authed()
	authed.GET("/jobs", jobController.ListJobs)
	authed.GET("/jobs/:id", jobController.GetJob)
	authed.GET("/jobs/:id/logs", jobController.ListApiCallLogs)
	authed.POST("/jobs/:id/cancel", jobController.CancelJob)
	authed.POST("/jobs/:id/retry", jobController.RetryJob)
	authed.DELETE("/jobs/:id", jobController.DeleteJob)
}
