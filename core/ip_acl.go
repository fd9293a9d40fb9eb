package core

import (
	"fmt"
	"net"
	"strings"
)

// IPAccessControl restricts admin endpoints to configured networks.
// Deny entries win over allow entries; an empty allow list allows everything not denied.
type IPAccessControl struct {
	allow []*net.IPNet
	deny  []*net.IPNet
}

// NewIPAccessControl parses CIDRs or bare IPs. It returns nil when both lists are empty.
func NewIPAccessControl(allowCIDRs, denyCIDRs []string) (*IPAccessControl, error) {
	allow, err := parseNetworks(allowCIDRs)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_ALLOW_CIDRS: %w", err)
	}
	deny, err := parseNetworks(denyCIDRs)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_DENY_CIDRS: %w", err)
	}

	if len(allow) == 0 && len(deny) == 0 {
		return nil, nil
	}
	return &IPAccessControl{allow: allow, deny: deny}, nil
}

// Allows reports whether ip may reach admin endpoints
func (a *IPAccessControl) Allows(ip net.IP) bool {
	if a == nil {
		return true
	}
	if ip == nil {
		return false
	}

	for _, n := range a.deny {
		if n.Contains(ip) {
			return false
		}
	}

	if len(a.allow) == 0 {
		return true
	}
	for _, n := range a.allow {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// AllowsAddr is Allows for a textual client address as reported by gin.
func (a *IPAccessControl) AllowsAddr(addr string) bool {
	if a == nil {
		return true
	}
	return a.Allows(net.ParseIP(strings.TrimSpace(addr)))
}

func parseNetworks(list []string) ([]*net.IPNet, error) {
	out := make([]*net.IPNet, 0, len(list))
	for _, raw := range list {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		ipNet, err := parseCIDROrIP(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ipNet)
	}
	return out, nil
}

func parseCIDROrIP(value string) (*net.IPNet, error) {
	if strings.Contains(value, "/") {
		_, ipNet, err := net.ParseCIDR(value)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR %q", value)
		}
		return ipNet, nil
	}

	ip := net.ParseIP(value)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP %q", value)
	}

	if ip4 := ip.To4(); ip4 != nil {
		return &net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(128, 128)}, nil
}
