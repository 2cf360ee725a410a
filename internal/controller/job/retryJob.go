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

// RetryJob creates and enqueues a fresh deployment job against the same
// peer as a previously failed one.
// @Summary Retry deployment job
// @Description Re-run a failed deployment job as a new job against the same peer
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} v1.JobResponse "Retry job created successfully"
// @Failure 400 {object} core.ErrResponse "Only failed jobs may be retried"
// @Failure 404 {object} core.ErrResponse "Job not found"
// @Router /api/v1/jobs/{id}/retry [post]
func (j *JobController) RetryJob(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceJob, authz.ScopeAny), authz.ActionJobRetry)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	newJob, err := j.srv.Jobs().RetryJob(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toJobResponse(newJob))
}

// DeleteJob removes a deployment job record. Only terminal jobs may be deleted.
// @Summary Delete deployment job
// @Description Delete a deployment job record; the job must be in a terminal state
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} core.SuccessResponse "Job deleted successfully"
// @Failure 400 {object} core.ErrResponse "Non-terminal jobs cannot be deleted"
// @Failure 404 {object} core.ErrResponse "Job not found"
// @Router /api/v1/jobs/{id} [delete]
func (j *JobController) DeleteJob(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceJob, authz.ScopeAny), authz.ActionJobDelete)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := j.srv.Jobs().DeleteJob(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}
