// SPDX-License-Identifier:Apache-2.0

package fabric

import (
	"fmt"

	"github.com/railnet/fabricplan/internal/ipam"
)

// PortInfo is the per-port view handed to rendering and manifest
// generation. The link role is explicit: consumers branch on it instead
// of probing whether address attributes happen to be set.
type PortInfo struct {
	Name string `json:"name"`
	// Link carries the explicit role and configured size of the link
	// this port terminates.
	Link ipam.Link `json:"-"`

	IPAddress  string `json:"ip-address"`
	RailSubnet string `json:"rail-subnet,omitempty"`
	// Subnet is the prefix length rendered on host-facing address
	// lines. Empty for ports whose code path never computes one;
	// consumers must treat that as absent, not as an error.
	Subnet string `json:"subnet,omitempty"`

	PeerIPAddress string `json:"peer-ip-address,omitempty"`
	PeerRole      string `json:"peer-role,omitempty"`

	Rail      int `json:"rail"`
	RailGroup int `json:"rail-group"`
	Plane     int `json:"plane"`
	SU        int `json:"su"`
	Pod       int `json:"pod"`
	HostIndex int `json:"host"`
}

// NodeInfo groups the ports of one node. Loopback and RailSubnets are
// set for switches only: hosts have neither a loopback in the switch
// pool nor subnets to advertise.
type NodeInfo struct {
	Ports map[string]PortInfo `json:"ports"`

	Loopback    string   `json:"loopback,omitempty"`
	RailSubnets []string `json:"rail-subnets,omitempty"`
}

// NodesInfo computes the full host-side plan for the configured hosts,
// keyed by node name. Hosts fill scale units in order; a scale unit
// takes MaxHostsPerSU hosts before the next one starts.
func (p *Planner) NodesInfo() (map[string]NodeInfo, error) {
	rails := len(p.cfg.HostInterfaces) / p.cfg.PlanesNum
	maxHosts := p.MaxHostsPerSU()

	nodes := make(map[string]NodeInfo, len(p.cfg.Hosts))
	for i, name := range p.cfg.Hosts {
		su := i / maxHosts
		pod := su / p.cfg.PodSize
		if pod >= p.cfg.PodNum {
			return nil, fmt.Errorf("host %q (index %d) exceeds the deployment's %d pods of %d scale units", name, i, p.cfg.PodNum, p.cfg.PodSize)
		}

		node := NodeInfo{Ports: make(map[string]PortInfo, len(p.cfg.HostInterfaces))}
		for rail := 0; rail < rails; rail++ {
			for plane := 0; plane < p.cfg.PlanesNum; plane++ {
				ifc := p.cfg.HostInterfaces[rail*p.cfg.PlanesNum+plane]
				hp := HostPort{
					Rail:      rail,
					Plane:     plane,
					SU:        su % p.cfg.PodSize,
					Pod:       pod,
					HostIndex: i % maxHosts,
				}
				a, railSubnet, err := p.HostLink(hp)
				if err != nil {
					return nil, fmt.Errorf("host %q port %s: %v", name, ifc, err)
				}
				node.Ports[ifc] = PortInfo{
					Name:          ifc,
					Link:          ipam.HostLink(p.cfg.HostSubnetSize),
					IPAddress:     a.Host.String(),
					RailSubnet:    railSubnet.String(),
					Subnet:        a.Size.String(),
					PeerIPAddress: a.Gateway.String(),
					PeerRole:      "leaf",
					Rail:          rail,
					RailGroup:     rail / p.cfg.LeafRails,
					Plane:         plane,
					SU:            hp.SU,
					Pod:           pod,
					HostIndex:     hp.HostIndex,
				}
			}
		}
		nodes[name] = node
	}
	return nodes, nil
}
