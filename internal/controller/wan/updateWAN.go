package wan

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

// UpdateWAN partially updates a WAN's name, topology, or description.
// @Summary Update WAN
// @Description Partially update an overlay network
// @Tags wans
// @Accept json
// @Produce json
// @Param id path string true "WAN ID"
// @Param wan body v1.UpdateWANRequest true "Fields to update"
// @Success 200 {object} v1.WANResponse "WAN updated successfully"
// @Failure 404 {object} core.ErrResponse "WAN not found"
// @Router /api/v1/wans/{id} [put]
func (w *WANController) UpdateWAN(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANUpdate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	existing, err := w.srv.WANs().GetWAN(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	var req v1.UpdateWANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.TopologyType != nil {
		existing.TopologyType = *req.TopologyType
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	if err := w.srv.WANs().UpdateWAN(context.Background(), existing); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toWANResponse(existing))
}

// DeleteWAN deletes a WAN and cascades to its peers.
// @Summary Delete WAN
// @Description Delete an overlay network and every peer registered on it
// @Tags wans
// @Produce json
// @Param id path string true "WAN ID"
// @Success 200 {object} core.SuccessResponse "WAN deleted successfully"
// @Failure 404 {object} core.ErrResponse "WAN not found"
// @Router /api/v1/wans/{id} [delete]
func (w *WANController) DeleteWAN(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANDelete)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := w.srv.WANs().DeleteWAN(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}
