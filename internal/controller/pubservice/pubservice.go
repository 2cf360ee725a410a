package pubservice

import (
	srv "github.com/wanoverlay/manager/internal/service"
	"github.com/wanoverlay/manager/internal/store"
)

// ServiceController handles requests for published services, which map a
// private peer endpoint onto a shared-services address reachable by
// every other peer.
type ServiceController struct {
	srv srv.Service
}

// NewServiceController creates a published-service controller.
func NewServiceController(store store.Factory) *ServiceController {
	return &ServiceController{
		srv: srv.NewService(store),
	}
}
