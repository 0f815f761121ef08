package config

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParsePrefixes parses a list of IP addresses or CIDR ranges. A single address
// becomes a /32 or /128 prefix and blank entries are skipped.
//
//	trusted, err := ParsePrefixes([]string{"10.0.0.0/8", "192.168.1.1"})
func ParsePrefixes(entries []string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			addr, addrErr := netip.ParseAddr(entry)
			if addrErr != nil {
				return nil, fmt.Errorf("invalid IP or CIDR %q", entry)
			}
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		out = append(out, prefix.Masked())
	}
	return out, nil
}
