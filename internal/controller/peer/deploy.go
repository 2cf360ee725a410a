package peer

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/deploy"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/pkg/core"
)

// Plan previews the create/delete set an apply would perform, without
// writing anything.
// @Summary Plan a peer deployment
// @Description Read-only diff between a managed peer's current and desired configuration
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.PlanResponse "Plan computed successfully"
// @Failure 400 {object} core.ErrResponse "Peer is not managed"
// @Router /api/v1/peers/{id}/plan [get]
func (p *PeerController) Plan(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	result, err := p.srv.Peers().Plan(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toPlanResponse(result))
}

// Preflight surfaces collisions with foreign router resources before an
// apply, without writing anything.
// @Summary Preflight a peer deployment
// @Description Detect collisions with non-managed resources on the router before deploying
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.PreflightResponse "Preflight completed"
// @Failure 400 {object} core.ErrResponse "Peer is not managed"
// @Router /api/v1/peers/{id}/preflight [get]
func (p *PeerController) Preflight(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	result, err := p.srv.Peers().Preflight(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	issues := make([]v1.PreflightIssueResponse, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, v1.PreflightIssueResponse{
			Family:     issue.Family,
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
		})
	}

	core.WriteResponse(c, nil, v1.PreflightResponse{Success: result.Success, Issues: issues})
}

// Deploy enqueues an apply against a managed peer. Without approve=true
// it returns the pending plan and performs no writes.
// @Summary Deploy a peer
// @Description Enqueue (or, without approve, preview) an apply against a managed peer
// @Tags peers
// @Accept json
// @Produce json
// @Param id path string true "Peer ID"
// @Param body body v1.DeployRequest true "Deploy confirmation"
// @Success 200 {object} v1.JobResponse "Deployment job enqueued"
// @Failure 400 {object} core.ErrResponse "Approval required or peer is not managed"
// @Router /api/v1/peers/{id}/deploy [post]
func (p *PeerController) Deploy(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	var req v1.DeployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	job, plan, err := p.srv.Peers().StartDeploy(context.Background(), id, req.Approve)
	if err != nil {
		if !req.Approve && plan != nil && errors.ParseCoder(err).Code() == code.ErrDeployApprovalRequired {
			coder := errors.ParseCoder(err)
			c.JSON(coder.HTTPStatus(), gin.H{
				"code":    coder.Code(),
				"message": coder.String(),
				"plan":    toPlanResponse(*plan),
			})
			return
		}
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toJobResponse(job))
}

// Revert re-applies the most recently recorded configuration snapshot.
// @Summary Revert a peer's configuration
// @Description Re-apply the peer's last recorded configuration history entry
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.JobResponse "Revert job enqueued"
// @Failure 400 {object} core.ErrResponse "No history to revert to"
// @Router /api/v1/peers/{id}/revert [post]
func (p *PeerController) Revert(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	job, err := p.srv.Peers().StartRevert(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toJobResponse(job))
}

// Clear removes every managed resource this system has pushed to the peer.
// @Summary Clear a peer's managed resources
// @Description Remove every resource this system owns on the router, leaving foreign configuration untouched
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} core.SuccessResponse "Managed resources cleared"
// @Router /api/v1/peers/{id}/clear [post]
func (p *PeerController) Clear(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := p.srv.Peers().ClearManaged(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}

// Verify reports drift between a managed peer's router state and its
// freshly computed desired state, without writing anything.
// @Summary Verify a peer's deployed configuration
// @Description Diff the router's current managed resources against the desired state
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.VerifyResponse "Verify completed"
// @Failure 400 {object} core.ErrResponse "Peer is not managed"
// @Router /api/v1/peers/{id}/mikrotik/verify [get]
func (p *PeerController) Verify(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	result, err := p.srv.Peers().Verify(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.VerifyResponse{InSync: result.InSync, Issues: result.Issues})
}

// TestConnection reaches a managed peer's router API and reports its
// identity and RouterOS version.
// @Summary Test a managed peer's router connection
// @Description Read back the router's identity and RouterOS version over its API
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.TestConnectionResponse "Connection succeeded"
// @Failure 400 {object} core.ErrResponse "Peer is not managed or unreachable"
// @Router /api/v1/peers/{id}/mikrotik/test-connection [post]
func (p *PeerController) TestConnection(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDeploy)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	identity, err := p.srv.Peers().TestConnection(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.TestConnectionResponse{RouterIdentity: identity.Name, RouterOSVer: identity.RouterOSVersion})
}

func toPlanResponse(result deploy.PlanResult) v1.PlanResponse {
	families := make(map[string]v1.FamilyDiffResponse, len(result.Families))
	for kind, diff := range result.Families {
		families[kind] = v1.FamilyDiffResponse{
			ToCreate: toMaps(diff.ToCreate),
			ToDelete: toMaps(diff.ToDelete),
		}
	}
	return v1.PlanResponse{Families: families}
}

func toMaps(resources []routerapi.Resource) []map[string]any {
	out := make([]map[string]any, 0, len(resources))
	for _, r := range resources {
		out = append(out, map[string]any(r))
	}
	return out
}

func toJobResponse(job *model.DeploymentJob) v1.JobResponse {
	return v1.JobResponse{
		ID:              job.ID,
		PeerID:          job.PeerID,
		JobType:         job.JobType,
		Status:          job.Status,
		ProgressPercent: job.ProgressPercent,
		StartedAt:       job.StartedAt,
		CompletedAt:     job.CompletedAt,
		ErrorMessage:    job.ErrorMessage,
		OperationsLog:   job.OperationsLog,
	}
}
