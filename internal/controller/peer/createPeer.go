package peer

import (
	"context"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	srv "github.com/wanoverlay/manager/internal/service"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/pkg/core"
)

// CreatePeer registers a new peer on a WAN, generating its WireGuard
// keypair and, for managed peers, encrypting any submitted credentials.
// @Summary Create peer
// @Description Register a new overlay peer, generating its WireGuard keypair server-side
// @Tags peers
// @Accept json
// @Produce json
// @Param peer body v1.CreatePeerRequest true "Peer information"
// @Success 200 {object} v1.PeerResponse "Peer created successfully"
// @Failure 400 {object} core.ErrResponse "Bad request - invalid input"
// @Failure 500 {object} core.ErrResponse "Internal server error"
// @Router /api/v1/peers [post]
func (p *PeerController) CreatePeer(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerCreate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	var req v1.CreatePeerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	peerModel := &model.Peer{
		WANID:               req.WANID,
		Name:                req.Name,
		Type:                req.Type,
		Endpoint:            req.Endpoint,
		ListenPort:          req.ListenPort,
		PersistentKeepalive: req.PersistentKeepalive,
		ManagementIP:        req.ManagementIP,
		APIPort:             req.APIPort,
		AuthMethod:          req.AuthMethod,
		Username:            req.Username,
		UseSSL:              req.UseSSL,
		VerifyCert:          req.VerifyCert,
		AutoDeploy:          req.AutoDeploy,
		InterfaceName:       req.InterfaceName,
		Metadata:            model.PeerMetadata{RouteAllTraffic: req.RouteAllTraffic},
	}

	created, err := p.srv.Peers().CreatePeer(context.Background(), srv.CreatePeerParams{
		Peer:      peerModel,
		Password:  req.Password,
		Token:     req.Token,
		PreferTIP: req.TunnelIP,
	})
	if err != nil {
		klog.V(1).InfoS("failed to create peer", "name", req.Name, "error", err)
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toPeerResponse(created))
}

func toPeerResponse(p *model.Peer) v1.PeerResponse {
	return v1.PeerResponse{
		ID:                  p.ID,
		WANID:               p.WANID,
		Name:                p.Name,
		Type:                p.Type,
		PublicKey:           p.PublicKey,
		TunnelIP:            p.TunnelIP,
		Endpoint:            p.Endpoint,
		ListenPort:          p.ListenPort,
		PersistentKeepalive: p.PersistentKeepalive,
		RouteAllTraffic:     p.Metadata.RouteAllTraffic,
		NeedsConfigRefresh:  p.Metadata.NeedsConfigRefresh,
		ManagementIP:        p.ManagementIP,
		APIPort:             p.APIPort,
		AuthMethod:          p.AuthMethod,
		Username:            p.Username,
		UseSSL:              p.UseSSL,
		VerifyCert:          p.VerifyCert,
		AutoDeploy:          p.AutoDeploy,
		InterfaceName:       p.InterfaceName,
		APIStatus:           p.APIStatus,
		RouterIdentity:      p.RouterIdentity,
		RouterOSVer:         p.RouterOSVer,
		LastAPICheck:        p.LastAPICheck,
		IsOnline:            p.IsOnline,
		LastSeen:            p.LastSeen,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
