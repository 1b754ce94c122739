package server

import (
	"fmt"
	"net"

	"github.com/ShahwaizZahid/Job-Listing/errors"
)

// isPortAvailable checks if a port is available for binding
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	_ = listener.Close()
	return true
}

// findAvailablePort tries the requested port first, then up to 10
// alternatives directly above it
func findAvailablePort(requestedPort int) (int, error) {
	if isPortAvailable(requestedPort) {
		return requestedPort, nil
	}

	for port := requestedPort + 1; port <= requestedPort+10; port++ {
		if isPortAvailable(port) {
			return port, nil
		}
	}

	return 0, errors.Newf("no available ports found (tried %d-%d)", requestedPort, requestedPort+10)
}
