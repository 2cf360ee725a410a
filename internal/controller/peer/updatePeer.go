package peer

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/pkg/core"
)

// UpdatePeer partially updates a peer's mutable fields.
// @Summary Update peer
// @Description Partially update an overlay peer. wan_id, type, and tunnel_ip are immutable.
// @Tags peers
// @Accept json
// @Produce json
// @Param id path string true "Peer ID"
// @Param peer body v1.UpdatePeerRequest true "Fields to update"
// @Success 200 {object} v1.PeerResponse "Peer updated successfully"
// @Failure 404 {object} core.ErrResponse "Peer not found"
// @Router /api/v1/peers/{id} [put]
func (p *PeerController) UpdatePeer(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerUpdate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	existing, err := p.srv.Peers().GetPeer(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	var req v1.UpdatePeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Endpoint != nil {
		existing.Endpoint = *req.Endpoint
	}
	if req.ListenPort != nil {
		existing.ListenPort = *req.ListenPort
	}
	if req.PersistentKeepalive != nil {
		existing.PersistentKeepalive = *req.PersistentKeepalive
	}
	if req.RouteAllTraffic != nil {
		existing.Metadata.RouteAllTraffic = *req.RouteAllTraffic
	}
	if req.ManagementIP != nil {
		existing.ManagementIP = *req.ManagementIP
	}
	if req.APIPort != nil {
		existing.APIPort = *req.APIPort
	}
	if req.AuthMethod != nil {
		existing.AuthMethod = *req.AuthMethod
	}
	if req.Username != nil {
		existing.Username = *req.Username
	}
	if req.UseSSL != nil {
		existing.UseSSL = *req.UseSSL
	}
	if req.VerifyCert != nil {
		existing.VerifyCert = *req.VerifyCert
	}
	if req.AutoDeploy != nil {
		existing.AutoDeploy = *req.AutoDeploy
	}
	if req.InterfaceName != nil {
		existing.InterfaceName = *req.InterfaceName
	}

	if err := p.srv.Peers().UpdatePeer(context.Background(), existing, req.Password, req.Token); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toPeerResponse(existing))
}

// DeletePeer deletes a peer.
// @Summary Delete peer
// @Description Delete an overlay peer
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} core.SuccessResponse "Peer deleted successfully"
// @Failure 404 {object} core.ErrResponse "Peer not found"
// @Router /api/v1/peers/{id} [delete]
func (p *PeerController) DeletePeer(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDelete)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := p.srv.Peers().DeletePeer(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}
