package ipalloc

import (
	"net/netip"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	iputil "github.com/wanoverlay/manager/pkg/utils/ip"
	"k8s.io/klog/v2"
)

// Snapshot describes a pool's address space and current occupancy, per
// spec §4.2's pool-snapshot contract.
type Snapshot struct {
	Network        netip.Addr
	Broadcast      netip.Addr
	Netmask        string
	PrefixLength   int
	TotalHosts     int
	FirstHost      netip.Addr
	LastHost       netip.Addr
	AllocatedCount int
	AvailableCount int
}

// Allocator hands out host addresses from a CIDR, skipping the network
// and broadcast addresses and everything already recorded as used. One
// Allocator serves exactly one pool (a WAN's tunnel range or its
// shared-services range) for exactly one allocation attempt: callers
// build a fresh Allocator from the current set of used addresses read
// inside a transaction, and rely on the store's uniqueness constraint to
// catch races rather than any allocator-held state.
type Allocator struct {
	prefix netip.Prefix
	used   map[netip.Addr]struct{}
}

// NewAllocator builds an Allocator over prefix, filtering usedIPs down to
// the ones that fall inside it.
func NewAllocator(prefix netip.Prefix, usedIPs map[netip.Addr]struct{}) *Allocator {
	used := make(map[netip.Addr]struct{}, len(usedIPs))
	for ip := range usedIPs {
		if prefix.Contains(ip) {
			used[ip] = struct{}{}
		}
	}
	return &Allocator{prefix: prefix, used: used}
}

// Snapshot computes the descriptive pool snapshot spec §4.2 requires.
func (a *Allocator) Snapshot() Snapshot {
	bits := a.prefix.Bits()
	totalHosts := 1 << (32 - bits)
	usableHosts := totalHosts - 2
	if bits >= 31 {
		usableHosts = 0
	}

	start := a.prefix.Masked().Addr()
	last := iputil.LastIPv4(a.prefix)

	allocated := len(a.used)
	available := usableHosts - allocated
	if available < 0 {
		available = 0
	}

	return Snapshot{
		Network:        start,
		Broadcast:      last,
		Netmask:        netmaskString(bits),
		PrefixLength:   bits,
		TotalHosts:     usableHosts,
		FirstHost:      start.Next(),
		LastHost:       prevAddrOrSelf(last),
		AllocatedCount: allocated,
		AvailableCount: available,
	}
}

func netmaskString(bits int) string {
	var n uint32
	if bits > 0 {
		n = ^uint32(0) << uint(32-bits)
	}
	return netip.AddrFrom4([4]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}).String()
}

func prevAddrOrSelf(a netip.Addr) netip.Addr {
	if !a.Is4() {
		return a
	}
	b := a.As4()
	for i := 3; i >= 0; i-- {
		if b[i] > 0 {
			b[i]--
			return netip.AddrFrom4(b)
		}
		b[i] = 0xff
	}
	return a
}

// Validate reports whether ip is eligible for allocation: IPv4, inside
// the prefix, not the network or broadcast address, and not already used.
func (a *Allocator) Validate(ip netip.Addr) error {
	if !ip.Is4() {
		return errors.WithCode(code.ErrIPNotIPv4, "IP is not IPv4: %s", ip)
	}

	if !a.prefix.Contains(ip) {
		return errors.WithCode(code.ErrIPOutOfRange, "IP %s is not within pool %s", ip, a.prefix)
	}

	start := a.prefix.Masked().Addr()
	last := iputil.LastIPv4(a.prefix)
	if ip == start {
		return errors.WithCode(code.ErrIPIsNetworkAddress, "IP %s is the network address", ip)
	}
	if ip == last {
		return errors.WithCode(code.ErrIPIsBroadcastAddress, "IP %s is the broadcast address", ip)
	}

	if _, ok := a.used[ip]; ok {
		return errors.WithCode(code.ErrIPAlreadyInUse, "IP %s is already allocated", ip)
	}

	return nil
}

// IsAvailable reports whether ip could be allocated right now.
func (a *Allocator) IsAvailable(ip netip.Addr) bool {
	return a.Validate(ip) == nil
}

// ReservationCheck is the spec's "reserve a specific IP" verification: the
// IP must fall inside the pool and not already be allocated.
func (a *Allocator) ReservationCheck(ip netip.Addr) error {
	if err := a.Validate(ip); err != nil {
		return errors.WithCode(code.ErrIPReservationConflict, "%s", err.Error())
	}
	return nil
}

// Allocate returns the first free host address in the pool.
func (a *Allocator) Allocate() (netip.Addr, error) {
	start := a.prefix.Masked().Addr()
	last := iputil.LastIPv4(a.prefix)

	snap := a.Snapshot()
	klog.V(1).InfoS("allocating IP",
		"prefix", a.prefix,
		"total_hosts", snap.TotalHosts,
		"allocated", snap.AllocatedCount,
		"available", snap.AvailableCount)

	if snap.AvailableCount <= 0 {
		return netip.Addr{}, errors.WithCode(code.ErrPoolExhausted,
			"no available IPs in %s (allocated: %d/%d)", a.prefix, snap.AllocatedCount, snap.TotalHosts)
	}

	ip := start.Next()
	checked := 0
	for ip.Compare(last) < 0 {
		if !ip.Is4() {
			ip = ip.Next()
			continue
		}
		if !a.prefix.Contains(ip) {
			break
		}

		checked++
		if err := a.Validate(ip); err != nil {
			ip = ip.Next()
			continue
		}

		klog.V(1).InfoS("allocated IP", "ip", ip, "checked", checked)
		return ip, nil
	}

	return netip.Addr{}, errors.WithCode(code.ErrPoolExhausted,
		"no available IP after checking %d addresses in %s", checked, a.prefix)
}
