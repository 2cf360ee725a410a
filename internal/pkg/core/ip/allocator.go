package ip

import (
	"context"
	"net/netip"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/ipalloc"
	"github.com/wanoverlay/manager/internal/store"
)

// Allocator hands out addresses from a WAN's tunnel or shared-services
// CIDR pool, scanning the peers/services already registered against that
// WAN instead of maintaining a separate allocation table. The actual
// address-space math is delegated to ipalloc.Allocator; this type only
// owns the store lookups that build its used-address set.
type Allocator struct {
	store store.Factory
}

// NewAllocator creates a new address allocator.
func NewAllocator(store store.Factory) *Allocator {
	return &Allocator{store: store}
}

// AllocateTunnelIP picks a tunnel address for a new peer on wanID. If
// preferredIP is non-empty it is validated and used as-is; otherwise the
// first free address in cidr is returned.
func (a *Allocator) AllocateTunnelIP(ctx context.Context, wanID, cidr, preferredIP string) (string, error) {
	peers, err := a.store.Peers().ListByWAN(ctx, wanID)
	if err != nil {
		return "", errors.Wrap(err, "failed to list peers for tunnel IP allocation")
	}
	return allocate(cidr, preferredIP, ipalloc.CollectUsedTunnelIPs(peers))
}

// AllocateSharedIP picks a shared-services address for a new published
// service on wanID, scanning every active service already registered on
// peers of that WAN.
func (a *Allocator) AllocateSharedIP(ctx context.Context, wanID, cidr, preferredIP string) (string, error) {
	services, err := a.store.Services().ListByWAN(ctx, wanID)
	if err != nil {
		return "", errors.Wrap(err, "failed to list services for shared IP allocation")
	}
	return allocate(cidr, preferredIP, ipalloc.CollectUsedSharedIPs(services))
}

func allocate(cidr, preferredIP string, used map[netip.Addr]struct{}) (string, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return "", errors.WithCode(code.ErrValidation, "invalid CIDR format: %s", cidr)
	}

	allocator := ipalloc.NewAllocator(prefix, used)

	if preferredIP != "" {
		addr, err := netip.ParseAddr(preferredIP)
		if err != nil {
			return "", errors.WithCode(code.ErrIPNotIPv4, "invalid IP address format: %s", preferredIP)
		}
		if err := allocator.ReservationCheck(addr); err != nil {
			return "", err
		}
		return addr.String(), nil
	}

	addr, err := allocator.Allocate()
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}
