package router

import (
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"k8s.io/klog/v2"

	"github.com/wanoverlay/manager/cmd/app/middleware"
	"github.com/wanoverlay/manager/internal/pkg/deploy"
	"github.com/wanoverlay/manager/internal/pkg/dnspublish"
	"github.com/wanoverlay/manager/internal/pkg/secret"
	"github.com/wanoverlay/manager/internal/service"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/internal/store/sqlite"
	"github.com/wanoverlay/manager/pkg/config"
	"github.com/wanoverlay/manager/pkg/environment"

	_ "github.com/wanoverlay/manager/api/swagger/docs"
)

var (
	router *gin.Engine
	v1     *gin.RouterGroup
	authed *gin.RouterGroup

	StoreIns     store.Factory
	Envelope     *secret.Envelope
	DeployEngine *deploy.Engine
	DNSClient    *dnspublish.Client

	initOnce sync.Once
)

// Init wires the application's shared dependencies (store, secret
// envelope, deployment engine, DNS side channel) and the Gin engine
// itself, from the fully-populated global config. It must run after
// config.Init() and before Router() is used to serve traffic.
func Init() {
	initOnce.Do(func() {
		cfg := config.Get()

		var err error
		StoreIns, err = sqlite.GetSqliteFactoryOr(cfg.Sqlite)
		if err != nil {
			klog.Fatalf("Failed to initialize store: %+v", err)
		}

		Envelope = secret.MustNewEnvelope(cfg.Secret.EncryptionKey, cfg.Secret.EncryptionSalt)

		DeployEngine = deploy.NewEngine(StoreIns, Envelope, cfg.Deploy.MaxConcurrentDeployments, cfg.Deploy.DeploymentTimeout, cfg.Deploy.BackupDir)

		DNSClient = dnspublish.NewClient(cfg.DNS.ProviderURL, cfg.DNS.Token, cfg.DNS.Suffix, cfg.DNS.VerifyCert)

		service.Init(DeployEngine, Envelope, DNSClient)

		if !environment.IsDev() {
			gin.SetMode(gin.ReleaseMode)
		}

		router = gin.Default()

		SetupMiddlewares(router)

		_ = router.SetTrustedProxies(nil)
		v1 = router.Group("/api/v1")

		authed = v1.Group("/")
		authed.Use(middleware.JWTAuth(StoreIns))

		router.GET("/livez", func(c *gin.Context) {
			c.String(200, "livez")
		})
		router.GET("/readyz", func(c *gin.Context) {
			c.String(200, "readyz")
		})

		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	})
}

// V1 returns the router group for /api/v1 which for resources in control plane endpoints.
func V1() *gin.RouterGroup {
	return v1
}

func Authed() *gin.RouterGroup {
	return authed
}

// Router returns the main Gin engine instance. Init must have run first.
func Router() *gin.Engine {
	return router
}
