// SPDX-License-Identifier:Apache-2.0

// Package config loads and validates a deployment description. All
// validation happens here, at load time: the address-planning packages
// assume a Config that passed Parse and never re-check.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/railnet/fabricplan/internal/ipam"
)

// Topology identifies the fabric tier layout.
type Topology string

// Supported topologies.
const (
	TwoTier    Topology = "2-tier"
	ThreeTier  Topology = "3-tier"
	TwoTierPOC Topology = "2-tier-poc"
)

var Topologies = []Topology{TwoTier, ThreeTier, TwoTierPOC}

// configFile is the on-disk YAML schema of a deployment description.
type configFile struct {
	Topology       string   `json:"topology"`
	SystemType     string   `json:"system-type"`
	HostFirstOctet *int     `json:"host-first-octet"`
	PodSize        *int     `json:"pod-size"`
	PodNum         *int     `json:"pod-num"`
	LeafRails      *int     `json:"leaf-rails"`
	PlanesNum      *int     `json:"planes-num"`
	HostInterfaces []string `json:"host-interfaces"`
	HostSubnetSize *int     `json:"host-subnet-size"`
	Hosts          []string `json:"hosts"`
}

// Config is a parsed and validated deployment description.
type Config struct {
	// Topology of the fabric.
	Topology Topology
	// SystemType of the hosts, lower-cased. Types containing "gb" use
	// a denser octet packing in the address plan.
	SystemType string
	// HostFirstOctet is the first octet of all host-facing rail
	// subnets. 10 and 100 are reserved for the switch tiers.
	HostFirstOctet int
	// PodSize is the number of scale units per pod.
	PodSize int
	// PodNum is the number of pods.
	PodNum int
	// LeafRails is the number of rails per leaf rail group.
	LeafRails int
	// PlanesNum is the number of fabric planes.
	PlanesNum int
	// HostInterfaces lists the host NICs, one per (rail, plane) pair.
	HostInterfaces []string
	// HostSubnetSize is the validated per-host-link subnet size.
	HostSubnetSize ipam.SubnetSize
	// Hosts optionally names the host nodes in allocation order. Used
	// by manifest generation; may be empty for pure plan rendering.
	Hosts []string
}

// GB reports whether the system type uses the dense gb octet packing.
func (c *Config) GB() bool {
	return strings.Contains(c.SystemType, "gb")
}

// Parse parses and validates the raw YAML of a deployment description.
// Optional parameters receive their defaults before validation runs,
// and any validation failure is returned as-is, never papered over
// with a guessed value.
func Parse(bs []byte) (*Config, error) {
	var raw configFile
	if err := yaml.Unmarshal(bs, &raw); err != nil {
		return nil, errors.Wrap(err, "could not parse deployment config")
	}

	cfg := &Config{
		Topology:       Topology(raw.Topology),
		SystemType:     strings.ToLower(raw.SystemType),
		HostInterfaces: raw.HostInterfaces,
		Hosts:          raw.Hosts,

		// Defaults for optional parameters.
		PlanesNum:      1,
		HostSubnetSize: ipam.DefaultSubnetSize,
	}
	if raw.HostFirstOctet != nil {
		cfg.HostFirstOctet = *raw.HostFirstOctet
	}
	if raw.PodSize != nil {
		cfg.PodSize = *raw.PodSize
	}
	if raw.PodNum != nil {
		cfg.PodNum = *raw.PodNum
	}
	if raw.LeafRails != nil {
		cfg.LeafRails = *raw.LeafRails
	}
	if raw.PlanesNum != nil {
		cfg.PlanesNum = *raw.PlanesNum
	}
	if raw.HostSubnetSize != nil {
		cfg.HostSubnetSize = ipam.SubnetSize(*raw.HostSubnetSize)
	}

	if err := cfg.validate(missingFields(&raw)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// missingFields lists required parameters absent from the raw file, so
// validation can report them by their on-disk names.
func missingFields(raw *configFile) []string {
	var missing []string
	if raw.Topology == "" {
		missing = append(missing, "topology")
	}
	if raw.SystemType == "" {
		missing = append(missing, "system-type")
	}
	if raw.HostFirstOctet == nil {
		missing = append(missing, "host-first-octet")
	}
	if raw.PodSize == nil {
		missing = append(missing, "pod-size")
	}
	if raw.PodNum == nil {
		missing = append(missing, "pod-num")
	}
	if raw.LeafRails == nil {
		missing = append(missing, "leaf-rails")
	}
	if len(raw.HostInterfaces) == 0 {
		missing = append(missing, "host-interfaces")
	}
	return missing
}
