package util

import (
	"fmt"
	"net"
	"os"
)

// PublicAddr derives a printable base URL from a listen address. Wildcard and
// loopback interfaces are replaced by the host name.
func PublicAddr(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)

	if ip := net.ParseIP(host); host == "" || ip != nil && (ip.String() == "127.0.0.1" || ip.String() == "0.0.0.0") {
		host, err = os.Hostname()
	}

	return fmt.Sprintf("http://%s:%s", host, port), err
}
