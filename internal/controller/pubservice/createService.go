package pubservice

import (
	"context"
	"strconv"

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

// CreateService maps a peer's private endpoint onto an address drawn
// from the WAN's shared-services range.
// @Summary Create published service
// @Description Publish a peer's local service onto a shared-services address
// @Tags services
// @Accept json
// @Produce json
// @Param service body v1.CreatePublishedServiceRequest true "Service information"
// @Param auto_deploy query bool false "enqueue an apply against every auto-deploy-enabled managed peer on the WAN"
// @Success 200 {object} v1.PublishedServiceResponse "Service created successfully"
// @Failure 400 {object} core.ErrResponse "Invalid input"
// @Router /api/v1/services [post]
func (s *ServiceController) CreateService(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceService, authz.ScopeAny), authz.ActionServiceCreate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	var req v1.CreatePublishedServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	svcModel := &model.PublishedService{
		PeerID:     req.PeerID,
		Name:       req.Name,
		LocalIP:    req.LocalIP,
		LocalPort:  req.LocalPort,
		SharedPort: req.SharedPort,
		Protocol:   req.Protocol,
	}

	autoDeploy, _ := strconv.ParseBool(c.Query("auto_deploy"))

	if err := s.srv.Services().CreateService(context.Background(), svcModel, req.SharedIP, autoDeploy); err != nil {
		klog.V(1).InfoS("failed to create service", "name", req.Name, "error", err)
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toServiceResponse(svcModel))
}

func toServiceResponse(s *model.PublishedService) v1.PublishedServiceResponse {
	return v1.PublishedServiceResponse{
		ID:         s.ID,
		PeerID:     s.PeerID,
		Name:       s.Name,
		LocalIP:    s.LocalIP,
		LocalPort:  s.LocalPort,
		SharedIP:   s.SharedIP,
		SharedPort: s.SharedPort,
		Protocol:   s.Protocol,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
