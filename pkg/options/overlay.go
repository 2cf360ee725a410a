package options

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/pflag"
)

// OverlayOptions holds WAN-wide defaults applied when a caller doesn't
// supply an explicit value at create time. Per-peer values (listen port,
// keepalive, interface name) already default at the model layer; these
// are the values that only make sense WAN-wide.
type OverlayOptions struct {
	// DefaultTunnelCIDR is the address pool new WANs allocate tunnel IPs
	// from when the caller does not specify one, e.g. 100.100.0.0/16.
	DefaultTunnelCIDR string `json:"default-tunnel-cidr" mapstructure:"default-tunnel-cidr"`

	// DefaultKeepalive seconds applied to newly-created peers that sit
	// behind NAT (Type != hub) when the caller leaves it unset.
	DefaultKeepalive int `json:"default-keepalive" mapstructure:"default-keepalive"`
}

func NewOverlayOptions() *OverlayOptions {
	return &OverlayOptions{
		DefaultTunnelCIDR: "100.100.0.0/16",
		DefaultKeepalive:  25,
	}
}

func (o *OverlayOptions) Validate() []error {
	var errs []error
	if strings.TrimSpace(o.DefaultTunnelCIDR) == "" {
		errs = append(errs, fmt.Errorf("overlay.default-tunnel-cidr is required"))
	} else if _, _, err := net.ParseCIDR(o.DefaultTunnelCIDR); err != nil {
		errs = append(errs, fmt.Errorf("overlay.default-tunnel-cidr is not a valid CIDR: %w", err))
	}
	if o.DefaultKeepalive < 0 {
		errs = append(errs, fmt.Errorf("overlay.default-keepalive must be >= 0"))
	}
	return errs
}

func (o *OverlayOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DefaultTunnelCIDR, "overlay.default-tunnel-cidr", o.DefaultTunnelCIDR, "Default tunnel address pool for newly-created WANs, e.g. 100.100.0.0/16")
	fs.IntVar(&o.DefaultKeepalive, "overlay.default-keepalive", o.DefaultKeepalive, "Default PersistentKeepalive (seconds) for peers behind NAT")
}
