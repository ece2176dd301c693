// SPDX-License-Identifier:Apache-2.0

package fabric

import (
	"fmt"

	"github.com/railnet/fabricplan/internal/config"
	"github.com/railnet/fabricplan/internal/ipam"
)

// SwitchesInfo computes the switch-side plan for every pod the
// configuration declares: leaves with their host-facing ports and spine
// uplinks, spines with their leaf downlinks, the super-spine tier for
// 3-tier fabrics, and a loopback per switch.
//
// Each leaf serves one rail group on one plane of one scale unit. The
// spine tier is sized so that every leaf of a scale unit has one uplink
// per spine; leaf host-facing ports exist only for hosts actually
// listed in the configuration.
func (p *Planner) SwitchesInfo() (map[string]NodeInfo, error) {
	railsPerPlane := len(p.cfg.HostInterfaces) / p.cfg.PlanesNum
	railGroups := railsPerPlane / p.cfg.LeafRails
	spinesPerPod := railGroups * p.cfg.PlanesNum
	maxHosts := p.MaxHostsPerSU()

	// Hosts per global scale unit, in listing order.
	suHosts := make(map[int][]int)
	for i := range p.cfg.Hosts {
		su := i / maxHosts
		suHosts[su] = append(suHosts[su], i)
	}

	switches := make(map[string]NodeInfo)
	loopbacks := 0
	nextLoopback := func() (string, error) {
		ip, err := p.Loopback(loopbacks)
		if err != nil {
			return "", err
		}
		loopbacks++
		return ip.String(), nil
	}

	for pod := 0; pod < p.cfg.PodNum; pod++ {
		for su := 0; su < p.cfg.PodSize; su++ {
			for plane := 0; plane < p.cfg.PlanesNum; plane++ {
				for group := 0; group < railGroups; group++ {
					name := fmt.Sprintf("leaf-%d-%d-%d-%d", pod, su, plane, group)
					leaf, err := p.leafInfo(pod, su, plane, group, spinesPerPod, suHosts[pod*p.cfg.PodSize+su])
					if err != nil {
						return nil, fmt.Errorf("%s: %v", name, err)
					}
					if leaf.Loopback, err = nextLoopback(); err != nil {
						return nil, err
					}
					switches[name] = leaf
				}
			}
		}

		for j := 0; j < spinesPerPod; j++ {
			name := fmt.Sprintf("spine-%d-%d", pod, j)
			spine, err := p.spineInfo(pod, j, railGroups)
			if err != nil {
				return nil, fmt.Errorf("%s: %v", name, err)
			}
			if spine.Loopback, err = nextLoopback(); err != nil {
				return nil, err
			}
			switches[name] = spine
		}
	}

	if p.cfg.Topology == config.ThreeTier {
		for group := 0; group < railGroups; group++ {
			for k := 0; k < p.cfg.PlanesNum; k++ {
				name := fmt.Sprintf("sspine-%d-%d", group, k)
				sspine, err := p.superSpineInfo(group, k)
				if err != nil {
					return nil, fmt.Errorf("%s: %v", name, err)
				}
				if sspine.Loopback, err = nextLoopback(); err != nil {
					return nil, err
				}
				switches[name] = sspine
			}
		}
	}

	return switches, nil
}

// leafIndexInPod numbers the leaves of one pod in (scale unit, plane,
// rail group) order. Spine-leaf link addresses key off this index.
func (p *Planner) leafIndexInPod(su, plane, group, railGroups int) int {
	return (su*p.cfg.PlanesNum+plane)*railGroups + group
}

// leafInfo builds one leaf: a host-facing port per (rail in group,
// host in scale unit) holding the gateway of the host's block, then one
// /31 uplink per spine of the pod.
func (p *Planner) leafInfo(pod, su, plane, group, spinesPerPod int, hosts []int) (NodeInfo, error) {
	railGroups := (len(p.cfg.HostInterfaces) / p.cfg.PlanesNum) / p.cfg.LeafRails
	leaf := NodeInfo{Ports: make(map[string]PortInfo)}
	port := 0

	groupRails := make([]int, 0, p.cfg.LeafRails)
	for r := 0; r < p.cfg.LeafRails; r++ {
		rail := group*p.cfg.LeafRails + r
		groupRails = append(groupRails, rail)

		for _, i := range hosts {
			hp := HostPort{Rail: rail, Plane: plane, SU: su, Pod: pod, HostIndex: i % p.MaxHostsPerSU()}
			a, _, err := p.HostLink(hp)
			if err != nil {
				return NodeInfo{}, err
			}
			port++
			ifc := fmt.Sprintf("swp%d", port)
			leaf.Ports[ifc] = PortInfo{
				Name:          ifc,
				Link:          ipam.HostLink(p.cfg.HostSubnetSize),
				IPAddress:     a.Gateway.String(),
				Subnet:        a.Size.String(),
				PeerIPAddress: a.Host.String(),
				PeerRole:      "host",
				Rail:          rail,
				RailGroup:     group,
				Plane:         plane,
				SU:            su,
				Pod:           pod,
				HostIndex:     hp.HostIndex,
			}
		}
	}

	subnets, err := p.RailSubnets(groupRails, plane, su, pod)
	if err != nil {
		return NodeInfo{}, err
	}
	for _, s := range subnets {
		leaf.RailSubnets = append(leaf.RailSubnets, s.String())
	}

	// Each /31 link consumes two addresses, so link indices step by
	// two.
	leafIdx := p.leafIndexInPod(su, plane, group, railGroups)
	for j := 0; j < spinesPerPod; j++ {
		spineAddr, err := p.SpineLeafAddress(j, 2*leafIdx)
		if err != nil {
			return NodeInfo{}, err
		}
		port++
		ifc := fmt.Sprintf("swp%d", port)
		leaf.Ports[ifc] = PortInfo{
			Name:          ifc,
			Link:          ipam.SpineLink(),
			IPAddress:     PeerAddress(spineAddr, true).String(),
			PeerIPAddress: spineAddr.String(),
			PeerRole:      "spine",
			RailGroup:     group,
			Plane:         plane,
			SU:            su,
			Pod:           pod,
		}
	}

	return leaf, nil
}

// spineInfo builds one spine: a /31 downlink per leaf of the pod and,
// in 3-tier fabrics, one uplink to its super-spine.
func (p *Planner) spineInfo(pod, j, railGroups int) (NodeInfo, error) {
	spine := NodeInfo{Ports: make(map[string]PortInfo)}
	port := 0

	leaves := p.cfg.PodSize * p.cfg.PlanesNum * railGroups
	for leafIdx := 0; leafIdx < leaves; leafIdx++ {
		addr, err := p.SpineLeafAddress(j, 2*leafIdx)
		if err != nil {
			return NodeInfo{}, err
		}
		port++
		ifc := fmt.Sprintf("swp%d", port)
		spine.Ports[ifc] = PortInfo{
			Name:          ifc,
			Link:          ipam.SpineLink(),
			IPAddress:     addr.String(),
			PeerIPAddress: PeerAddress(addr, true).String(),
			PeerRole:      "leaf",
			Pod:           pod,
		}
	}

	if p.cfg.Topology == config.ThreeTier {
		group := j / p.cfg.PlanesNum
		k := j % p.cfg.PlanesNum
		addr, err := p.SuperSpineAddress(group, k, 2*pod)
		if err != nil {
			return NodeInfo{}, err
		}
		port++
		ifc := fmt.Sprintf("swp%d", port)
		spine.Ports[ifc] = PortInfo{
			Name:          ifc,
			Link:          ipam.SpineLink(),
			IPAddress:     PeerAddress(addr, true).String(),
			PeerIPAddress: addr.String(),
			PeerRole:      "sspine",
			RailGroup:     group,
			Pod:           pod,
		}
	}

	return spine, nil
}

// superSpineInfo builds one super-spine: a /31 downlink to its spine in
// every pod. Super-spine (group, k) pairs with spine group*planes+k.
func (p *Planner) superSpineInfo(group, k int) (NodeInfo, error) {
	sspine := NodeInfo{Ports: make(map[string]PortInfo)}
	for pod := 0; pod < p.cfg.PodNum; pod++ {
		addr, err := p.SuperSpineAddress(group, k, 2*pod)
		if err != nil {
			return NodeInfo{}, err
		}
		ifc := fmt.Sprintf("swp%d", pod+1)
		sspine.Ports[ifc] = PortInfo{
			Name:          ifc,
			Link:          ipam.SpineLink(),
			IPAddress:     addr.String(),
			PeerIPAddress: PeerAddress(addr, true).String(),
			PeerRole:      "spine",
			RailGroup:     group,
			Pod:           pod,
		}
	}
	return sspine, nil
}
