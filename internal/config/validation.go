// SPDX-License-Identifier:Apache-2.0

package config

import (
	"fmt"
	"strings"
)

// validate checks the whole configuration at once. It runs after
// defaults have been filled in, so every optional parameter already
// holds a concrete value.
func (c *Config) validate(missing []string) error {
	if len(missing) > 0 {
		return fmt.Errorf("missing required parameters: %s", strings.Join(missing, ", "))
	}

	supported := false
	for _, t := range Topologies {
		if c.Topology == t {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported topology %q, must be one of %s", c.Topology, topologyNames())
	}

	if err := c.validateHostFirstOctet(); err != nil {
		return err
	}
	if err := c.validateHostSubnetSize(); err != nil {
		return err
	}

	if c.PodSize < 1 {
		return fmt.Errorf("pod-size must be at least 1, got %d", c.PodSize)
	}
	if c.PodNum < 1 {
		return fmt.Errorf("pod-num must be at least 1, got %d", c.PodNum)
	}
	if c.PlanesNum < 1 {
		return fmt.Errorf("planes-num must be at least 1, got %d", c.PlanesNum)
	}
	if c.LeafRails < 1 {
		return fmt.Errorf("leaf-rails must be at least 1, got %d", c.LeafRails)
	}
	if len(c.HostInterfaces)%c.PlanesNum != 0 {
		return fmt.Errorf("%d host-interfaces cannot be split over %d planes", len(c.HostInterfaces), c.PlanesNum)
	}
	if (len(c.HostInterfaces)/c.PlanesNum)%c.LeafRails != 0 {
		return fmt.Errorf("%d rails per plane cannot be grouped into leaves of %d rails", len(c.HostInterfaces)/c.PlanesNum, c.LeafRails)
	}

	seen := map[string]bool{}
	for _, h := range c.Hosts {
		if seen[h] {
			return fmt.Errorf("duplicate host name %q", h)
		}
		seen[h] = true
	}

	return nil
}

// validateHostFirstOctet rejects octets reserved for the switch tiers
// (10 is used by spine and loopback ranges, 100 by super-spines) and
// values that do not fit an octet.
func (c *Config) validateHostFirstOctet() error {
	if c.HostFirstOctet < 1 || c.HostFirstOctet > 255 {
		return fmt.Errorf("host-first-octet %d is not a valid first octet", c.HostFirstOctet)
	}
	if c.HostFirstOctet == 10 || c.HostFirstOctet == 100 {
		return fmt.Errorf("host-first-octet is not allowed to be %d, it is reserved for switch addressing", c.HostFirstOctet)
	}
	return nil
}

// validateHostSubnetSize accepts exactly the supported sizes. An
// unsupported value is a hard configuration error; it is never coerced
// to the default.
func (c *Config) validateHostSubnetSize() error {
	if !c.HostSubnetSize.Valid() {
		return fmt.Errorf("invalid host-subnet-size %d, supported values: 29, 30, 31", c.HostSubnetSize)
	}
	return nil
}

func topologyNames() string {
	names := make([]string, 0, len(Topologies))
	for _, t := range Topologies {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
