package peer

import (
	srv "github.com/wanoverlay/manager/internal/service"
	"github.com/wanoverlay/manager/internal/store"
)

// PeerController handles requests for overlay peer resources, including
// configuration rendering and deployment operations.
type PeerController struct {
	srv srv.Service
}

// NewPeerController creates a peer controller.
func NewPeerController(store store.Factory) *PeerController {
	return &PeerController{
		srv: srv.NewService(store),
	}
}
