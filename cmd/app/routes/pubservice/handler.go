package pubservice

import (
	"github.com/wanoverlay/manager/cmd/app/router"
	"github.com/wanoverlay/manager/internal/controller/pubservice"
)

// RegisterRoutes registers published-service management routes.
// This function must be called after router.Init() to ensure router.StoreIns is initialized.
func RegisterRoutes() {
	serviceController := pubservice.NewServiceController(router.StoreIns)

	authed := router.Authed()
	authed.POST("/services", serviceController.CreateService)
	authed.GET("/services", serviceController.ListServices)
	authed.GET("/services/:id", serviceController.GetService)
	authed.PUT("/services/:id", serviceController.UpdateService)
	authed.DELETE("/services/:id", serviceController.DeleteService)
}
