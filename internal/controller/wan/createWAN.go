package wan

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

// CreateWAN creates a new overlay network.
// @Summary Create WAN
// @Description Create a new overlay network with a tunnel address pool and a shared-services address pool
// @Tags wans
// @Accept json
// @Produce json
// @Param wan body v1.CreateWANRequest true "WAN information"
// @Success 200 {object} v1.WANResponse "WAN created successfully"
// @Failure 400 {object} core.ErrResponse "Bad request - invalid input"
// @Failure 403 {object} core.ErrResponse "Forbidden - permission denied"
// @Failure 500 {object} core.ErrResponse "Internal server error"
// @Router /api/v1/wans [post]
func (w *WANController) CreateWAN(c *gin.Context) {
	requesterRole, _ := c.Get(middleware.UserRoleKey)
	role, _ := requesterRole.(string)

	allowed, err := authz.Enforce(role, authz.Obj(authz.ResourceWAN, authz.ScopeAny), authz.ActionWANCreate)
	if err != nil {
		core.WriteResponse(c, errors.WithCode(code.ErrUnknown, "authorization engine error"), nil)
		return
	}
	if !allowed {
		core.WriteResponse(c, errors.WithCode(code.ErrPermissionDenied, "%s", code.Message(code.ErrPermissionDenied)), nil)
		return
	}

	var req v1.CreateWANRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponseBindErr(c, err, nil)
		return
	}

	wanModel := model.WAN{
		Name:                req.Name,
		TunnelIPRange:       req.TunnelIPRange,
		SharedServicesRange: req.SharedServicesRange,
		TopologyType:        req.TopologyType,
		Description:         req.Description,
	}

	if err := w.srv.WANs().CreateWAN(context.Background(), &wanModel); err != nil {
		klog.V(1).InfoS("failed to create wan", "name", req.Name, "error", err)
		core.WriteResponse(c, err, nil)
		return
	}

	core.WriteResponse(c, nil, toWANResponse(&wanModel))
}

func toWANResponse(w *model.WAN) v1.WANResponse {
	return v1.WANResponse{
		ID:                  w.ID,
		Name:                w.Name,
		TunnelIPRange:       w.TunnelIPRange,
		SharedServicesRange: w.SharedServicesRange,
		TopologyType:        w.TopologyType,
		Description:         w.Description,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}
