package peer

import (
	"github.com/wanoverlay/manager/cmd/app/router"
	"github.com/wanoverlay/manager/internal/controller/peer"
)

// RegisterRoutes registers overlay peer management routes.
// This function must be called after router.Init() to ensure router.StoreIns is initialized.
func RegisterRoutes() {
	peerController := peer.NewPeerController(router.StoreIns)

	authed := router.Authed()
	authed.POST("/peers", peerController.CreatePeer)
	authed.GET("/peers", peerController.ListPeers)
	authed.GET("/peers/:id", peerController.GetPeer)
	authed.PUT("/peers/:id", peerController.UpdatePeer)
	authed.DELETE("/peers/:id", peerController.DeletePeer)

	authed.GET("/peers/:id/config", peerController.GetPeerConfig)
	authed.POST("/peers/:id/regenerate-keys", peerController.RegenerateKeys)

	authed.GET("/peers/:id/plan", peerController.Plan)
	authed.GET("/peers/:id/preflight", peerController.Preflight)
	authed.POST("/peers/:id/deploy", peerController.Deploy)
	authed.POST("/peers/:id/revert", peerController.Revert)
	authed.POST("/peers/:id/clear", peerController.Clear)
	authed.GET("/peers/:id/mikrotik/verify", peerController.Verify)
	authed.POST("/peers/:id/mikrotik/test-connection", peerController.TestConnection)

	authed.GET("/peers/:id/check-conflicts", peerController.CheckConflicts)
}
