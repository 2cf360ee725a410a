package peer

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/pkg/core"
)

// GetPeerConfig renders a peer's configuration in the requested format.
// @Summary Download peer configuration
// @Description Render a peer's WireGuard or RouterOS configuration
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Param config_type query string false "wireguard (default), mikrotik-script, or mikrotik-api"
// @Success 200 {object} v1.PeerConfigResponse "Configuration rendered successfully"
// @Failure 404 {object} core.ErrResponse "Peer not found"
// @Router /api/v1/peers/{id}/config [get]
func (p *PeerController) GetPeerConfig(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourcePeer, authz.ScopeAny), authz.ActionPeerDownloadConfig)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	configType := c.DefaultQuery("config_type", model.ConfigTypeWireGuard)

	text, err := p.srv.Peers().GetConfig(context.Background(), id, configType)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.PeerConfigResponse{ConfigType: configType, ConfigText: text})
}

// RegenerateKeys rotates a peer's WireGuard keypair in place.
// @Summary Regenerate peer keys
// @Description Rotate a peer's WireGuard keypair, flagging every sibling peer for a config refresh
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Success 200 {object} v1.RegenerateKeysResponse "Keys regenerated successfully"
// @Failure 404 {object} core.ErrResponse "Peer not found"
// @Router /api/v1/peers/{id}/regenerate-keys [post]
func (p *PeerController) RegenerateKeys(c *gin.Context) {
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
	publicKey, err := p.srv.Peers().RegenerateKeys(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.RegenerateKeysResponse{PublicKey: publicKey})
}
