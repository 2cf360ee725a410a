package job

import (
	srv "github.com/wanoverlay/manager/internal/service"
	"github.com/wanoverlay/manager/internal/store"
)

// JobController handles requests for deployment job records — background
// apply/revert runs executed by the Deployment Engine against peers.
type JobController struct {
	srv srv.Service
}

// NewJobController creates a deployment job controller.
func NewJobController(store store.Factory) *JobController {
	return &JobController{
		srv: srv.NewService(store),
	}
}
