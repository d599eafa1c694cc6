package hostbind

import (
	"fmt"
	"net"

	ma "github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

// ParseAddress accepts "host:port" or a multiaddr such as "/ip4/10.0.0.1/tcp/25570" and
// returns the dialable "host:port" form.
func ParseAddress(address string) (string, error) {
	if len(address) > 0 && address[0] == '/' {
		maddr, err := ma.NewMultiaddr(address)
		if err != nil {
			return "", fmt.Errorf("parse multiaddr %q: %w", address, err)
		}
		addr, err := manet.ToNetAddr(maddr)
		if err != nil {
			return "", fmt.Errorf("convert multiaddr %q: %w", address, err)
		}
		tcp, ok := addr.(*net.TCPAddr)
		if !ok {
			return "", fmt.Errorf("multiaddr %q: not a tcp address", address)
		}
		return tcp.String(), nil
	}
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", fmt.Errorf("parse address %q: %w", address, err)
	}
	if port == "" {
		return "", fmt.Errorf("parse address %q: missing port", address)
	}
	return net.JoinHostPort(host, port), nil
}
