package pubservice

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

// GetService returns a single published service by id.
// @Summary Get published service
// @Description Get a published service by id
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} v1.PublishedServiceResponse "Service retrieved successfully"
// @Failure 404 {object} core.ErrResponse "Service not found"
// @Router /api/v1/services/{id} [get]
func (s *ServiceController) GetService(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceService, authz.ScopeAny), authz.ActionServiceList)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	id := c.Param("id")
	svcModel, err := s.srv.Services().GetService(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toServiceResponse(svcModel))
}

// ListServices lists published services, optionally filtered by peer.
// @Summary List published services
// @Description List published services with optional filters and pagination
// @Tags services
// @Produce json
// @Param peer_id query string false "Filter by peer ID"
// @Param protocol query string false "Filter by protocol"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} v1.ListPublishedServicesResponse "Services retrieved successfully"
// @Router /api/v1/services [get]
func (s *ServiceController) ListServices(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceService, authz.ScopeAny), authz.ActionServiceList)
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

	opt := store.PublishedServiceListOptions{
		PeerID:   c.Query("peer_id"),
		Protocol: c.Query("protocol"),
		Offset:   offset,
		Limit:    limit,
	}

	services, total, err := s.srv.Services().ListServices(context.Background(), opt)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	items := make([]v1.PublishedServiceResponse, 0, len(services))
	for _, svcModel := range services {
		items = append(items, toServiceResponse(svcModel))
	}

	core.WriteResponse(c, nil, v1.ListPublishedServicesResponse{Items: items, Total: total})
}
