package conflict

import (
	"fmt"
	"net/netip"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
)

// SuggestNATSubnet synthesizes a candidate NAT-translation subnet with
// the same prefix length as conflictingSubnet, searching 172.16.0.0/12
// first (by third octet 16..31) and then 192.168.0.0/16 (by third octet
// 0..255), returning the first candidate that overlaps none of existing.
// Ported from the original's find_available_nat_subnet.
func SuggestNATSubnet(conflictingSubnet string, existing []Named) (string, error) {
	cand, err := netip.ParsePrefix(conflictingSubnet)
	if err != nil {
		return "", errors.WithCode(code.ErrSubnetInvalidCIDR, "invalid subnet %q: %v", conflictingSubnet, err)
	}
	prefixLen := cand.Bits()

	try := func(network string) (string, bool) {
		pfx, err := netip.ParsePrefix(network)
		if err != nil {
			return "", false
		}
		if !overlapsAny(pfx, existing) {
			return pfx.String(), true
		}
		return "", false
	}

	for octet3 := 16; octet3 <= 31; octet3++ {
		network := fmt.Sprintf("172.%d.0.0/%d", octet3, prefixLen)
		if s, ok := try(network); ok {
			return s, nil
		}
	}

	for octet3 := 0; octet3 <= 255; octet3++ {
		network := fmt.Sprintf("192.168.%d.0/%d", octet3, prefixLen)
		if s, ok := try(network); ok {
			return s, nil
		}
	}

	return "", errors.WithCode(code.ErrNoNATSubnetAvailable, "no available NAT translation subnet for prefix length /%d", prefixLen)
}

func overlapsAny(pfx netip.Prefix, existing []Named) bool {
	for _, e := range existing {
		epfx, err := netip.ParsePrefix(e.CIDR)
		if err != nil {
			continue
		}
		if Overlaps(pfx, epfx) {
			return true
		}
	}
	return false
}
