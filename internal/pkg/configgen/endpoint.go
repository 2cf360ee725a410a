package configgen

import (
	"fmt"
	"net"
	"strings"
)

// ParsedEndpoint is a peer's endpoint split into host and port, with the
// bracket form preserved for IPv6 literals.
type ParsedEndpoint struct {
	Host string // bracketed for IPv6, e.g. "[2001:db8::1]"
	Port string
}

// ParseEndpoint normalizes "host:port" / "[ipv6]:port". A bare bracketed
// IPv6 literal with no port (e.g. "[2001:db8::1]") is rejected rather
// than defaulted, per the open question in spec §9: a silently-applied
// default port for that shape risks masking a configuration mistake,
// whereas every other accepted shape requires an explicit port.
func ParseEndpoint(raw string) (ParsedEndpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ParsedEndpoint{}, fmt.Errorf("empty endpoint")
	}

	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return ParsedEndpoint{}, fmt.Errorf("endpoint %q is not a valid host:port: %w", raw, err)
	}
	if port == "" {
		return ParsedEndpoint{}, fmt.Errorf("endpoint %q is missing a port", raw)
	}

	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return ParsedEndpoint{Host: host, Port: port}, nil
}

// String renders the endpoint back to "host:port" form.
func (e ParsedEndpoint) String() string {
	return e.Host + ":" + e.Port
}
