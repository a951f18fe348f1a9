package net

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_kreate._tcp"

// advertise announces the gesture bridge on the local network so an
// e-reader page can find it.
func advertise(port int, path string) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	info := []string{"Kreate gesture bridge", "path=" + path}

	service, err := mdns.NewMDNSService(
		host,        // instance name
		serviceType, // _kreate._tcp
		"",          // domain, ".local" when empty
		"",          // hostname, the OS hostname when empty
		port,
		nil, // IPs, auto-detected
		info,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}
