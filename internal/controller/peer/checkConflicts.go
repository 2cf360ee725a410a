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

// CheckConflicts previews the conflicts a candidate CIDR would produce
// if routed through this peer, without persisting anything.
// @Summary Check subnet conflicts for a peer
// @Description Preview the conflicts a candidate CIDR would produce against the overlay
// @Tags peers
// @Produce json
// @Param id path string true "Peer ID"
// @Param cidr query string true "Candidate CIDR"
// @Success 200 {object} v1.SubnetConflictResponse "Conflicts computed successfully"
// @Router /api/v1/peers/{id}/check-conflicts [get]
func (p *PeerController) CheckConflicts(c *gin.Context) {
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
	cidr := c.Query("cidr")
	if cidr == "" {
		core.WriteResponse(c, errors.WithCode(code.ErrValidation, "cidr is required"), nil)
		return
	}

	conflicts, err := p.srv.Subnets().CheckConflicts(context.Background(), id, cidr)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	summaries := make([]v1.SubnetConflictSummary, 0, len(conflicts))
	hasCritical := false
	for _, conf := range conflicts {
		if conf.Severity == "critical" {
			hasCritical = true
		}
		resolutions := make([]string, 0, len(conf.SuggestedResolutions))
		for _, r := range conf.SuggestedResolutions {
			resolutions = append(resolutions, string(r))
		}
		summaries = append(summaries, v1.SubnetConflictSummary{
			Subnet:               conf.Subnet,
			ConflictType:         string(conf.ConflictType),
			Severity:             string(conf.Severity),
			ConflictingWith:      conf.ConflictingWith,
			ConflictingSubnet:    conf.ConflictingSubnet,
			Description:          conf.Description,
			SuggestedResolutions: resolutions,
		})
	}

	core.WriteResponse(c, nil, v1.SubnetConflictResponse{HasCritical: hasCritical, Conflicts: summaries})
}
