package subnet

import (
	"github.com/wanoverlay/manager/cmd/app/router"
	"github.com/wanoverlay/manager/internal/controller/subnet"
)

// RegisterRoutes registers local subnet management routes.
// This function must be called after router.Init() to ensure router.StoreIns is initialized.
func RegisterRoutes() {
	subnetController := subnet.NewSubnetController(router.StoreIns)

	authed := router.Authed()
	authed.POST("/subnets", subnetController.CreateSubnet)
	authed.GET("/subnets", subnetController.ListSubnets)
	authed.GET("/subnets/check-conflicts", subnetController.CheckConflicts)
	authed.GET("/subnets/:id", subnetController.GetSubnet)
	authed.PUT("/subnets/:id", subnetController.UpdateSubnet)
	authed.DELETE("/subnets/:id", subnetController.DeleteSubnet)
}
