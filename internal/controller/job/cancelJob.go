package job

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/pkg/core"
)

// CancelJob requests cancellation of a running deployment job.
// @Summary Cancel deployment job
// @Description Cancel a pending or running deployment job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} core.SuccessResponse "Job cancelled successfully"
// @Failure 404 {object} core.ErrResponse "Job not found"
// @Router /api/v1/jobs/{id}/cancel [post]
func (j *JobController) CancelJob(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceJob, authz.ScopeAny), authz.ActionJobCancel)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := j.srv.Jobs().CancelJob(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}
