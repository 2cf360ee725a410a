package wan

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/ipalloc"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/pkg/core"
)

// IPInfo reports occupancy of a WAN's tunnel and shared-services
// address pools.
// @Summary Get WAN pool occupancy
// @Description Report the network, host range and allocation counts of a WAN's two address pools
// @Tags wans
// @Produce json
// @Param id path string true "WAN ID"
// @Success 200 {object} v1.WANIPInfoResponse "Pool snapshot computed successfully"
// @Router /api/v1/wans/{id}/ip-info [get]
func (w *WANController) IPInfo(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANRead)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	info, err := w.srv.WANs().PoolInfo(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, v1.WANIPInfoResponse{
		TunnelRange:         toPoolSnapshotResponse(info.TunnelRange),
		SharedServicesRange: toPoolSnapshotResponse(info.SharedServicesRange),
	})
}

func toPoolSnapshotResponse(s ipalloc.Snapshot) v1.PoolSnapshotResponse {
	return v1.PoolSnapshotResponse{
		Network:        s.Network.String(),
		Broadcast:      s.Broadcast.String(),
		Netmask:        s.Netmask,
		PrefixLength:   s.PrefixLength,
		TotalHosts:     s.TotalHosts,
		FirstHost:      s.FirstHost.String(),
		LastHost:       s.LastHost.String(),
		AllocatedCount: s.AllocatedCount,
		AvailableCount: s.AvailableCount,
	}
}

// Conflicts aggregates the subnet conflicts of every peer on the WAN.
// @Summary Get every subnet conflict on a WAN
// @Description Aggregate the subnet conflicts of every peer against the WAN's ranges and each other
// @Tags wans
// @Produce json
// @Param id path string true "WAN ID"
// @Success 200 {object} v1.SubnetConflictResponse "Conflicts computed successfully"
// @Router /api/v1/wans/{id}/conflicts [get]
func (w *WANController) Conflicts(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANRead)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	conflicts, err := w.srv.WANs().Conflicts(context.Background(), id)
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

// Topology renders a WAN's topology type and every peer's role within it.
// @Summary Get WAN topology
// @Description Render a WAN's topology type and its peers' roles for diagramming
// @Tags wans
// @Produce json
// @Param id path string true "WAN ID"
// @Success 200 {object} v1.WANTopologyResponse "Topology computed successfully"
// @Router /api/v1/wans/{id}/topology [get]
func (w *WANController) Topology(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANRead)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	wanModel, peers, err := w.srv.WANs().Topology(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	nodes := make([]v1.TopologyNodeResponse, 0, len(peers))
	for _, peer := range peers {
		nodes = append(nodes, v1.TopologyNodeResponse{
			PeerID:    peer.ID,
			Name:      peer.Name,
			Type:      peer.Type,
			TunnelIP:  peer.TunnelIP,
			IsManaged: peer.IsManaged(),
			IsOnline:  peer.IsOnline,
		})
	}

	core.WriteResponse(c, nil, v1.WANTopologyResponse{TopologyType: wanModel.TopologyType, Nodes: nodes})
}
