package peer

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/core"
)

// GetPeer returns a single peer by id.
// @Summary Get peer
// @Description Get an overlay peer by id
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.PeerResponse "Peer retrieved successfully"
// @Failure 404 {object} core.ErrResponse "Peer not found"
// @Router /api/v1/peers/{id} [get]
func (p *PeerController) GetPeer(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerRead)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	peerModel, err := p.srv.Peers().GetPeer(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toPeerResponse(peerModel))
}

// ListPeers lists peers, optionally filtered by WAN, type, or status.
// @Summary List peers
// @Description List overlay peers with optional filters and pagination
// @Tags peers
// @Produce json
// @Param wan_id query string false "Filter by WAN ID"
// @Param type query string false "Filter by peer type"
// @Param api_status query string false "Filter by API status"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} v1.ListPeersResponse "Peers retrieved successfully"
// @Router /api/v1/peers [get]
func (p *PeerController) ListPeers(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerList)
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

	opt := store.PeerListOptions{
		WANID:     c.Query("wan_id"),
		Type:      c.Query("type"),
		APIStatus: c.Query("api_status"),
		Offset:    offset,
		Limit:     limit,
	}

	peers, total, err := p.srv.Peers().ListPeers(context.Background(), opt)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	items := make([]v1.PeerResponse, 0, len(peers))
	for _, peerModel := range peers {
		items = append(items, toPeerResponse(peerModel))
	}

	core.WriteResponse(c, nil, v1.ListPeersResponse{Items: items, Total: total})
}
