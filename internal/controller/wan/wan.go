package wan

import (
	srv "github.com/wanoverlay/manager/internal/service"
	"github.com/wanoverlay/manager/internal/store"
)

// WANController handles requests for WAN overlay network resources.
type WANController struct {
	srv srv.Service
}

// NewWANController creates a WAN controller.
func NewWANController(store store.Factory) *WANController {
	return &WANController{
		srv: srv.NewService(store),
	}
}
