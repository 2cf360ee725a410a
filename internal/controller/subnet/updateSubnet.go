package subnet

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

// UpdateSubnet partially updates a local subnet.
// @Summary Update subnet
// @Description Partially update a local subnet's routing/NAT flags
// @Tags subnets
// @Accept json
// @Produce json
// @Param id path string true "Subnet ID"
// @Param subnet body v1.UpdateSubnetRequest true "Fields to update"
// @Success 200 {object} v1.SubnetResponse "Subnet updated successfully"
// @Failure 404 {object} core.ErrResponse "Subnet not found"
// @Router /api/v1/subnets/{id} [put]
func (s *SubnetController) UpdateSubnet(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceSubnet, authz.ScopeAny), authz.ActionSubnetUpdate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	existing, err := s.srv.Subnets().GetSubnet(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	var req v1.UpdateSubnetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	if req.IsRouted != nil {
		existing.IsRouted = *req.IsRouted
	}
	if req.NATEnabled != nil {
		existing.NATEnabled = *req.NATEnabled
	}
	if req.NATTranslatedCIDR != nil {
		existing.NATTranslatedCIDR = *req.NATTranslatedCIDR
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	if err := s.srv.Subnets().UpdateSubnet(context.Background(), existing); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toSubnetResponse(existing))
}

// DeleteSubnet deletes a local subnet.
// @Summary Delete subnet
// @Description Delete a local subnet
// @Tags subnets
// @Produce json
// @Param id path string true "Subnet ID"
// @Success 200 {object} core.SuccessResponse "Subnet deleted successfully"
// @Failure 404 {object} core.ErrResponse "Subnet not found"
// @Router /api/v1/subnets/{id} [delete]
func (s *SubnetController) DeleteSubnet(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceSubnet, authz.ScopeAny), authz.ActionSubnetDelete)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := s.srv.Subnets().DeleteSubnet(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}
