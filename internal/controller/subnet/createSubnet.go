package subnet

import (
	"context"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/authz"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	v1 "github.com/wanoverlay/manager/internal/pkg/types/v1"
	"github.com/wanoverlay/manager/pkg/core"
)

// CreateSubnet advertises a local CIDR from a peer into the overlay,
// rejecting candidates that critically conflict with the WAN's own ranges.
// @Summary Create subnet
// @Description Advertise a local CIDR from a peer into the overlay
// @Tags subnets
// @Accept json
// @Produce json
// @Param subnet body v1.CreateSubnetRequest true "Subnet information"
// @Success 200 {object} v1.SubnetResponse "Subnet created successfully"
// @Failure 400 {object} core.ErrResponse "Critical conflict or invalid input"
// @Router /api/v1/subnets [post]
func (s *SubnetController) CreateSubnet(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceSubnet, authz.ScopeAny), authz.ActionSubnetCreate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	var req v1.CreateSubnetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	subnetModel := &model.LocalSubnet{
		PeerID:            req.PeerID,
		CIDR:              req.CIDR,
		IsRouted:          req.IsRouted,
		NATEnabled:        req.NATEnabled,
		NATTranslatedCIDR: req.NATTranslatedCIDR,
		Description:       req.Description,
	}

	if err := s.srv.Subnets().CreateSubnet(context.Background(), subnetModel); err != nil {
		klog.V(1).InfoS("failed to create subnet", "cidr", req.CIDR, "error", err)
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toSubnetResponse(subnetModel))
}

func toSubnetResponse(s *model.LocalSubnet) v1.SubnetResponse {
	return v1.SubnetResponse{
		ID:                s.ID,
		PeerID:            s.PeerID,
		CIDR:              s.CIDR,
		IsRouted:          s.IsRouted,
		NATEnabled:        s.NATEnabled,
		NATTranslatedCIDR: s.NATTranslatedCIDR,
		Description:       s.Description,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
