package project

import (
	"fmt"
	"net"
	"strconv"
)

// PortFree reports whether a TCP listener can bind port on localhost.
type PortFree func(port int) bool

// ListenFree probes port by opening and closing a listener.
func ListenFree(port int) bool {
	l, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}

// FreePort returns the first port in [min, max] that free accepts and
// that is not in taken.
func FreePort(min, max int, free PortFree, taken ...int) (int, error) {
	if free == nil {
		free = ListenFree
	}
	skip := make(map[int]bool, len(taken))
	for _, p := range taken {
		skip[p] = true
	}
	for port := min; port <= max; port++ {
		if skip[port] {
			continue
		}
		if free(port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no free port between %d and %d", min, max)
}
