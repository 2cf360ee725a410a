package pubservice

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

// UpdateService partially updates a published service.
// @Summary Update published service
// @Description Partially update a published service
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param service body v1.UpdatePublishedServiceRequest true "Fields to update"
// @Success 200 {object} v1.PublishedServiceResponse "Service updated successfully"
// @Failure 404 {object} core.ErrResponse "Service not found"
// @Router /api/v1/services/{id} [put]
func (s *ServiceController) UpdateService(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceService, authz.ScopeAny), authz.ActionServiceUpdate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	existing, err := s.srv.Services().GetService(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	var req v1.UpdatePublishedServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.LocalIP != nil {
		existing.LocalIP = *req.LocalIP
	}
	if req.LocalPort != nil {
		existing.LocalPort = *req.LocalPort
	}
	if req.SharedPort != nil {
		existing.SharedPort = *req.SharedPort
	}
	if req.Protocol != nil {
		existing.Protocol = *req.Protocol
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.srv.Services().UpdateService(context.Background(), existing); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toServiceResponse(existing))
}

// DeleteService deletes a published service.
// @Summary Delete published service
// @Description Delete a published service
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} core.SuccessResponse "Service deleted successfully"
// @Failure 404 {object} core.ErrResponse "Service not found"
// @Router /api/v1/services/{id} [delete]
func (s *ServiceController) DeleteService(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceService, authz.ScopeAny), authz.ActionServiceDelete)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	if err := s.srv.Services().DeleteService(context.Background(), id); err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, nil)
}
