package routes

import (
	"github.com/wanoverlay/manager/cmd/app/routes/auth"
	"github.com/wanoverlay/manager/cmd/app/routes/job"
	"github.com/wanoverlay/manager/cmd/app/routes/peer"
	"github.com/wanoverlay/manager/cmd/app/routes/pubservice"
	"github.com/wanoverlay/manager/cmd/app/routes/subnet"
	"github.com/wanoverlay/manager/cmd/app/routes/user"
	"github.com/wanoverlay/manager/cmd/app/routes/wan"
)

// RegisterAll registers every domain's routes onto the shared router.
// Must be called after router.Init().
func RegisterAll() {
	auth.RegisterRoutes()
	user.RegisterRoutes()
	wan.RegisterRoutes()
	peer.RegisterRoutes()
	subnet.RegisterRoutes()
	pubservice.RegisterRoutes()
	job.RegisterRoutes()
}
