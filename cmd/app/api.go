package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/component-base/cli/flag"
	"k8s.io/component-base/logs"
	"k8s.io/klog/v2"

	"github.com/wanoverlay/manager/cmd/app/options"
	"github.com/wanoverlay/manager/cmd/app/router"
	"github.com/wanoverlay/manager/cmd/app/routes"
	appconfig "github.com/wanoverlay/manager/pkg/config"
)

const (
	basename = "NexusPointWG"
)

func NewAPICommand(ctx context.Context) *cobra.Command {
	opts := options.NewOptions()
	cmd := &cobra.Command{
		Use:   basename,
		Short: "NexusPointWG is a web server for WireGuard",
		Long:  "NexusPointWG is a web server for WireGuard",
		RunE: func(cmd *cobra.Command, args []string) error {
			// bind command line flags to viper (command line args override config file)
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			if err := viper.Unmarshal(opts); err != nil {
				return err
			}

			// initialize logs after flags are parsed and config is loaded
			logs.InitLogs()
			defer logs.FlushLogs()

			// setup log file rotation if log file is specified
			// This must be called after InitLogs() to ensure the log file setting takes effect
			if opts.Log.LogFile != "" {
				logWriter := &lumberjack.Logger{
					Filename:   opts.Log.LogFile,
					MaxSize:    opts.Log.MaxSize, // megabytes
					MaxBackups: opts.Log.MaxBackups,
					MaxAge:     opts.Log.MaxAge, // days
					Compress:   opts.Log.Compress,
				}
				klog.SetOutput(logWriter)
			}

			// validate options after flags & config are fully populated
			if errs := opts.Validate(); len(errs) != 0 {
				for _, err := range errs {
					fmt.Fprintln(os.Stderr, "Error:", err)
				}
				os.Exit(1)
			}

			appconfig.Init(&appconfig.Config{
				InsecureServing: opts.InsecureServing,
				Sqlite:          opts.Sqlite,
				Log:             opts.Log,
				JWT:             opts.JWT,
				Secret:          opts.Secret,
				Deploy:          opts.Deploy,
				DNS:             opts.DNS,
				Overlay:         opts.Overlay,
			})

			return run(ctx, opts)
		},
	}

	nfs := opts.AddFlags(cmd.Flags())
	flag.SetUsageAndHelpFunc(cmd, *nfs, 80)

	return cmd
}

func run(ctx context.Context, opts *options.Options) error {
	serve(opts)
	<-ctx.Done()
	os.Exit(0)
	return nil
}

func serve(opts *options.Options) {
	router.Init()
	routes.RegisterAll()

	insecureAddress := fmt.Sprintf("%s:%d", opts.InsecureServing.BindAddress, opts.InsecureServing.BindPort)
	klog.V(1).InfoS("Listening and serving on", "address", insecureAddress)
	go func() {
		klog.Fatal(router.Router().Run(insecureAddress))
	}()
}
