package subnet

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

// GetSubnet returns a single subnet by id.
// @Summary Get subnet
// @Description Get a local subnet by id
// @Tags subnets
// @Produce json
// @Param id path string true "Subnet ID"
// @Success 200 {object} v1.SubnetResponse "Subnet retrieved successfully"
// @Failure 404 {object} core.ErrResponse "Subnet not found"
// @Router /api/v1/subnets/{id} [get]
func (s *SubnetController) GetSubnet(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceSubnet, authz.ScopeAny), authz.ActionSubnetList)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	subnetModel, err := s.srv.Subnets().GetSubnet(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toSubnetResponse(subnetModel))
}

// ListSubnets lists subnets, optionally filtered by peer.
// @Summary List subnets
// @Description List local subnets with optional filters and pagination
// @Tags subnets
// @Produce json
// @Param peer_id query string false "Filter by peer ID"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} v1.ListSubnetsResponse "Subnets retrieved successfully"
// @Router /api/v1/subnets [get]
func (s *SubnetController) ListSubnets(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceSubnet, authz.ScopeAny), authz.ActionSubnetList)
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

	opt := store.LocalSubnetListOptions{
		PeerID: c.Query("peer_id"),
		Offset: offset,
		Limit:  limit,
	}

	subnets, total, err := s.srv.Subnets().ListSubnets(context.Background(), opt)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	items := make([]v1.SubnetResponse, 0, len(subnets))
	for _, subnetModel := range subnets {
		items = append(items, toSubnetResponse(subnetModel))
	}

	core.WriteResponse(c, nil, v1.ListSubnetsResponse{Items: items, Total: total})
}

// CheckConflicts previews the conflicts a candidate CIDR would produce
// for a peer, without persisting anything.
// @Summary Check subnet conflicts
// @Description Preview the conflicts a candidate CIDR would produce against the overlay
// @Tags subnets
// @Produce json
// @Param peer_id query string true "Peer ID"
// @Param cidr query string true "Candidate CIDR"
// @Success 200 {object} v1.SubnetConflictResponse "Conflicts computed successfully"
// @Router /api/v1/subnets/check-conflicts [get]
func (s *SubnetController) CheckConflicts(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceSubnet, authz.ScopeAny), authz.ActionSubnetList)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	peerID := c.Query("peer_id")
	cidr := c.Query("cidr")
	if peerID == "" || cidr == "" {
		core.WriteResponse(c, errors.WithCode(code.ErrValidation, "peer_id and cidr are required"), nil)
		return
	}

	conflicts, err := s.srv.Subnets().CheckConflicts(context.Background(), peerID, cidr)
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
