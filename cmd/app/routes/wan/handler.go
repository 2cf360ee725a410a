package wan

import (
	"github.com/wanoverlay/manager/cmd/app/router"
	"github.com/wanoverlay/manager/internal/controller/wan"
)

// RegisterRoutes registers WAN overlay network management routes.
// This function must be called after router.Init() to ensure router.StoreIns is initialized.
func RegisterRoutes() {
	wanController := wan.NewWANController(router.StoreIns)

	authed := router.Authed()
	authed.POST("/wans", wanController.CreateWAN)
	authed.GET("/wans", wanController.ListWANs)
	authed.GET("/wans/:id", wanController.GetWAN)
	authed.PUT("/wans/:id", wanController.UpdateWAN)
	authed.DELETE("/wans/:id", wanController.DeleteWAN)

	authed.GET("/wans/:id/ip-info", wanController.IPInfo)
	authed.GET("/wans/:id/conflicts", wanController.Conflicts)
	authed.GET("/wans/:id/topology", wanController.Topology)
}
