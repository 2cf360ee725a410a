package subnet

import (
	srv "github.com/wanoverlay/manager/internal/service"
	"github.com/wanoverlay/manager/internal/store"
)

// SubnetController handles requests for local subnets advertised by peers.
type SubnetController struct {
	srv srv.Service
}

// NewSubnetController creates a subnet controller.
func NewSubnetController(store store.Factory) *SubnetController {
	return &SubnetController{
		srv: srv.NewService(store),
	}
}
