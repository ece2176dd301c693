// SPDX-License-Identifier:Apache-2.0

// Package fabric computes the address plan of a rail-optimized fabric:
// which rail subnet every host port lives in, the block each host owns
// inside it, and the fixed addressing of the switch tiers above.
//
// Rails are independent IP spaces. A rail's position, together with the
// plane, scale unit and pod of the host, is packed into the second and
// third octets; the host's index inside its scale unit selects the
// block in the fourth octet.
package fabric

import (
	"fmt"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"

	"github.com/railnet/fabricplan/internal/config"
	"github.com/railnet/fabricplan/internal/ipam"
)

// Switch-tier address spaces. Host rail subnets never use first octets
// 10 or 100; configuration validation enforces that.
var (
	spineLeafNet = &net.IPNet{IP: net.IPv4(10, 254, 0, 0).To4(), Mask: net.CIDRMask(16, 32)}
	loopbackNet  = &net.IPNet{IP: net.IPv4(10, 253, 128, 0).To4(), Mask: net.CIDRMask(18, 32)}
)

// A Planner computes addresses for one validated deployment.
type Planner struct {
	cfg *config.Config
}

// NewPlanner returns a planner for the given configuration. The
// configuration must have passed config.Parse.
func NewPlanner(cfg *config.Config) *Planner {
	return &Planner{cfg: cfg}
}

// HostPort locates one host NIC in the fabric.
type HostPort struct {
	// Rail and Plane identify the fabric the NIC attaches to.
	Rail  int
	Plane int
	// SU is the scale unit index within the pod, Pod the pod index.
	SU  int
	Pod int
	// HostIndex is the zero-based position of the host within its
	// scale unit.
	HostIndex int
}

// HostLink computes the address assignment of a host NIC and the rail
// subnet it belongs to. The assignment uses the configured host subnet
// size; the switch side of the link is Assignment.Gateway.
func (p *Planner) HostLink(hp HostPort) (*ipam.Assignment, *net.IPNet, error) {
	second, third, railSubnet, err := p.hostOctets(hp)
	if err != nil {
		return nil, nil, err
	}

	railBase := net.IPv4(byte(p.cfg.HostFirstOctet), byte(second), byte(third), 0).To4()
	a, err := ipam.ForNode(railBase, hp.HostIndex, ipam.HostLink(p.cfg.HostSubnetSize))
	if err != nil {
		return nil, nil, err
	}
	return a, railSubnet, nil
}

// hostOctets packs the port's fabric position into the second and third
// octets and derives the enclosing rail subnet. The packing differs per
// topology and per system type: gb systems spread rails over planes and
// need the denser layout.
func (p *Planner) hostOctets(hp HostPort) (second, third int, railSubnet *net.IPNet, err error) {
	if hp.Rail < 0 || hp.Plane < 0 || hp.SU < 0 || hp.Pod < 0 {
		return 0, 0, nil, fmt.Errorf("host port %+v has a negative coordinate", hp)
	}
	first := byte(p.cfg.HostFirstOctet)

	switch p.cfg.Topology {
	case config.ThreeTier:
		if p.cfg.GB() {
			second = hp.Plane<<6 | hp.Rail<<3 | hp.Pod/4
			third = (hp.Pod%4)<<6 | hp.SU
			railSubnet = subnet4(first, byte(hp.Rail<<5), 0, 0, 13)
		} else {
			second = hp.Rail<<5 | hp.Pod
			third = hp.SU
			railSubnet = subnet4(first, byte(hp.Rail<<5), 0, 0, 11)
		}
	default: // 2-tier and 2-tier-poc share the flat packing
		if p.cfg.GB() {
			second = 1<<4 | hp.Plane<<2 | hp.Rail/4
			third = (hp.Rail%4)<<6 | hp.SU
			railSubnet = subnet4(first, byte(second), byte(third)&0xc0, 0, 18)
		} else {
			second = 1<<4 | hp.Rail<<1
			third = hp.SU
			railSubnet = subnet4(first, byte(second)&0xfe, 0, 0, 15)
		}
	}

	if second > 255 || third > 255 {
		return 0, 0, nil, fmt.Errorf("host port %+v does not fit the %s octet layout", hp, p.cfg.Topology)
	}
	return second, third, railSubnet, nil
}

// RailSubnets returns the rail subnets a leaf advertises for its rail
// group, in rail order.
func (p *Planner) RailSubnets(rails []int, plane, su, pod int) ([]*net.IPNet, error) {
	subnets := make([]*net.IPNet, 0, len(rails))
	for _, rail := range rails {
		_, _, rs, err := p.hostOctets(HostPort{Rail: rail, Plane: plane, SU: su, Pod: pod})
		if err != nil {
			return nil, err
		}
		subnets = append(subnets, rs)
	}
	return subnets, nil
}

// SpineLeafAddress returns the spine-side address of a spine-to-leaf
// link. Inter-switch links are always /31; the peer leaf sits one
// address below.
func (p *Planner) SpineLeafAddress(spineIndexInPod, ipIndex int) (net.IP, error) {
	if spineIndexInPod < 0 || spineIndexInPod > 255 || ipIndex < 0 || ipIndex > 254 {
		return nil, fmt.Errorf("spine %d link %d outside the 10.254.0.0/16 plan", spineIndexInPod, ipIndex)
	}
	return net.IPv4(10, 254, byte(spineIndexInPod), byte(ipIndex+1)).To4(), nil
}

// PeerAddress returns the other end of an inter-switch /31 given one
// end. The downlink side always holds the lower address.
func PeerAddress(ip net.IP, downlink bool) net.IP {
	if downlink {
		return cidr.Dec(ip)
	}
	return cidr.Inc(ip)
}

// SuperSpineAddress returns the address of a super-spine downlink in
// the 100.0.0.0/8 tier. startIndex numbers the links of one super-spine
// consecutively.
func (p *Planner) SuperSpineAddress(groupIndex, indexInGroup, startIndex int) (net.IP, error) {
	if groupIndex < 0 || indexInGroup < 0 || startIndex < 0 {
		return nil, fmt.Errorf("negative super-spine coordinate (%d, %d, %d)", groupIndex, indexInGroup, startIndex)
	}
	if p.cfg.GB() {
		second := 1<<6 | groupIndex
		third := indexInGroup<<2 | startIndex>>8
		fourth := startIndex%256 + 1
		if second > 255 || third > 255 {
			return nil, fmt.Errorf("super-spine (%d, %d, %d) does not fit the gb octet layout", groupIndex, indexInGroup, startIndex)
		}
		return net.IPv4(100, byte(second), byte(third), byte(fourth)).To4(), nil
	}
	if groupIndex > 255 || indexInGroup > 255 || startIndex > 254 {
		return nil, fmt.Errorf("super-spine (%d, %d, %d) does not fit the octet layout", groupIndex, indexInGroup, startIndex)
	}
	return net.IPv4(100, byte(groupIndex), byte(indexInGroup), byte(startIndex+1)).To4(), nil
}

// Loopback returns the n-th switch loopback address, allocated in
// order from 10.253.128.0/18. The network address is skipped.
func (p *Planner) Loopback(index int) (net.IP, error) {
	if index < 0 {
		return nil, fmt.Errorf("negative loopback index %d", index)
	}
	ip, err := cidr.Host(loopbackNet, index+1)
	if err != nil {
		return nil, fmt.Errorf("loopback index %d outside %v: %v", index, loopbackNet, err)
	}
	return ip.To4(), nil
}

// MaxHostsPerSU returns how many hosts fit in one scale unit's rail
// subnet given the configured block size.
func (p *Planner) MaxHostsPerSU() int {
	return 256 / p.cfg.HostSubnetSize.BlockSize()
}

func subnet4(a, b, c, d byte, prefix int) *net.IPNet {
	return &net.IPNet{
		IP:   net.IPv4(a, b, c, d).To4(),
		Mask: net.CIDRMask(prefix, 32),
	}
}
