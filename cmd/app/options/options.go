package options

import (
	"encoding/json"

	"github.com/spf13/pflag"
	"k8s.io/component-base/cli/flag"
	"k8s.io/component-base/logs"

	"github.com/wanoverlay/manager/pkg/options"
)

type Options struct {
	InsecureServing *options.InsecureServingOptions
	Sqlite          *options.SqliteOptions
	Log             *options.LogOptions
	JWT             *options.JWTOptions
	Secret          *options.SecretOptions
	Deploy          *options.DeployOptions
	DNS             *options.DNSOptions
	Overlay         *options.OverlayOptions
}

func NewOptions() *Options {
	return &Options{
		InsecureServing: options.NewInsecureServingOptions(),
		Sqlite:          options.NewSqliteOptions(),
		Log:             options.NewLogOptions(),
		JWT:             options.NewJWTOptions(),
		Secret:          options.NewSecretOptions(),
		Deploy:          options.NewDeployOptions(),
		DNS:             options.NewDNSOptions(),
		Overlay:         options.NewOverlayOptions(),
	}
}

// AddFlags adds the flags to the specified FlagSet and returns the grouped flag sets.
func (o *Options) AddFlags(fs *pflag.FlagSet) *flag.NamedFlagSets {
	nfs := &flag.NamedFlagSets{}

	// add the flags to the NamedFlagSets
	configFS := nfs.FlagSet("Config")
	options.AddConfigFlag(configFS)

	insecureServingFS := nfs.FlagSet("Insecure Serving")
	o.InsecureServing.AddFlags(insecureServingFS)

	sqliteFS := nfs.FlagSet("Sqlite")
	o.Sqlite.AddFlags(sqliteFS)

	jwtFS := nfs.FlagSet("JWT")
	o.JWT.AddFlags(jwtFS)

	secretFS := nfs.FlagSet("Secret")
	o.Secret.AddFlags(secretFS)

	deployFS := nfs.FlagSet("Deploy")
	o.Deploy.AddFlags(deployFS)

	dnsFS := nfs.FlagSet("DNS")
	o.DNS.AddFlags(dnsFS)

	overlayFS := nfs.FlagSet("Overlay")
	o.Overlay.AddFlags(overlayFS)

	// Add log file rotation flags
	logsFlagSet := nfs.FlagSet("Logs")
	logs.AddFlags(logsFlagSet)
	o.Log.AddFlags(logsFlagSet)

	// add the flags to the main Command
	for _, name := range nfs.Order {
		fs.AddFlagSet(nfs.FlagSets[name])
	}
	return nfs
}

func (o *Options) String() string {
	data, _ := json.Marshal(o)

	return string(data)
}
