package job

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/core"
)

func toJobResponse(j *model.DeploymentJob) v1.JobResponse {
	return v1.JobResponse{
		ID:              j.ID,
		PeerID:          j.PeerID,
		JobType:         j.JobType,
		Status:          j.Status,
		ProgressPercent: j.ProgressPercent,
		StartedAt:       j.StartedAt,
		CompletedAt:     j.CompletedAt,
		ErrorMessage:    j.ErrorMessage,
		OperationsLog:   j.OperationsLog,
	}
}

// GetJob returns a single deployment job by id.
// @Summary Get deployment job
// @Description Get a deployment job by id
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} v1.JobResponse "Job retrieved successfully"
// @Failure 404 {object} core.ErrResponse "Job not found"
// @Router /api/v1/jobs/{id} [get]
func (j *JobController) GetJob(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceJob, authz.ScopeAny), authz.ActionJobRead)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	jobModel, err := j.srv.Jobs().GetJob(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toJobResponse(jobModel))
}

// ListJobs lists deployment jobs, optionally filtered by peer, type, or status.
// @Summary List deployment jobs
// @Description List deployment jobs with optional filters and pagination
// @Tags jobs
// @Produce json
// @Param peer_id query string false "Filter by peer ID"
// @Param job_type query string false "Filter by job type"
// @Param status query string false "Filter by status"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} v1.ListJobsResponse "Jobs retrieved successfully"
// @Router /api/v1/jobs [get]
func (j *JobController) ListJobs(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceJob, authz.ScopeAny), authz.ActionJobList)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	offset, limit, err := core.ParsePagination(c)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	opt := store.DeploymentJobListOptions{
		PeerID:  c.Query("peer_id"),
		JobType: c.Query("job_type"),
		Status:  c.Query("status"),
		Offset:  offset,
		Limit:   limit,
	}

	jobs, total, err := j.srv.Jobs().ListJobs(context.Background(), opt)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	items := make([]v1.JobResponse, 0, len(jobs))
	for _, jobModel := range jobs {
		items = append(items, toJobResponse(jobModel))
	}

	core.WriteResponse(c, nil, v1.ListJobsResponse{Items: items, Total: total})
}

// ListApiCallLogs returns the ordered Router API Client call log for a job.
// @Summary List job API call logs
// @Description List the Router API Client calls recorded under a deployment job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} v1.ListApiCallLogsResponse "Call logs retrieved successfully"
// @Router /api/v1/jobs/{id}/logs [get]
func (j *JobController) ListApiCallLogs(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceJob, authz.ScopeAny), authz.ActionJobRead)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	logs, err := j.srv.Jobs().ListApiCallLogs(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	items := make([]v1.ApiCallLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, v1.ApiCallLogResponse{
			ID:           l.ID,
			JobID:        l.JobID,
			Method:       l.Method,
			Endpoint:     l.Endpoint,
			ResponseCode: l.ResponseCode,
			Error:        l.Error,
			Timestamp:    l.Timestamp,
		})
	}

	core.WriteResponse(c, nil, v1.ListApiCallLogsResponse{Items: items})
}
