package wan

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

// GetWAN returns a single WAN by id.
// @Summary Get WAN
// @Description Get an overlay network by id
// @Tags wans
// @Produce json
// @Param id path string true "WAN ID"
// @Success 200 {object} v1.WANResponse "WAN retrieved successfully"
// @Failure 404 {object} core.ErrResponse "WAN not found"
// @Router /api/v1/wans/{id} [get]
func (w *WANController) GetWAN(c *gin.Context) {
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
	wanModel, err := w.srv.WANs().GetWAN(context.Background(), id)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toWANResponse(wanModel))
}

// ListWANs returns every WAN, optionally filtered by name/topology.
// @Summary List WANs
// @Description List overlay networks
// @Tags wans
// @Produce json
// @Param name query string false "Filter by name"
// @Param topology_type query string false "Filter by topology type"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} v1.ListWANsResponse "WANs retrieved successfully"
// @Router /api/v1/wans [get]
func (w *WANController) ListWANs(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANList)
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

	opt := store.WANListOptions{
		Name:         c.Query("name"),
		TopologyType: c.Query("topology_type"),
		Offset:       offset,
		Limit:        limit,
	}

	wans, total, err := w.srv.WANs().ListWANs(context.Background(), opt)
	if err != nil {
		core.WriteResponse(c, err, nil)
		return
	}

	items := make([]v1.WANResponse, 0, len(wans))
	for _, wanModel := range wans {
		items = append(items, toWANResponse(wanModel))
	}

	core.WriteResponse(c, nil, v1.ListWANsResponse{Items: items, Total: total})
}
