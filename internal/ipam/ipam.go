// SPDX-License-Identifier:Apache-2.0

// Package ipam computes the per-node address blocks that connect hosts
// to their top-of-rack switches. Each host link owns a small block of
// consecutive IPv4 addresses inside its rail subnet; the block position
// is a pure function of the node's index, so every caller arrives at
// the same plan without coordination.
package ipam

import (
	"bytes"
	"fmt"
	"net"
	"strconv"

	"github.com/apparentlymart/go-cidr/cidr"
	"github.com/mikioh/ipaddr"
)

// SubnetSize is the CIDR prefix length of the block carved out for a
// single host link.
type SubnetSize int

const (
	// Subnet29 gives each host an 8-address block: network, gateway,
	// host and four pod addresses.
	Subnet29 SubnetSize = 29
	// Subnet30 gives a 4-address block. Network, gateway and host
	// consume three of them and the fourth is broadcast, so no pod
	// addresses remain. Permitted, but not recommended.
	Subnet30 SubnetSize = 30
	// Subnet31 is point-to-point: host and switch only, no network or
	// broadcast address (RFC 3021 semantics).
	Subnet31 SubnetSize = 31

	// DefaultSubnetSize is used when the deployment does not configure
	// a host subnet size.
	DefaultSubnetSize = Subnet31
)

// SupportedSubnetSizes lists the values a deployment may configure.
var SupportedSubnetSizes = []SubnetSize{Subnet29, Subnet30, Subnet31}

// Valid reports whether s is one of the supported sizes.
func (s SubnetSize) Valid() bool {
	for _, v := range SupportedSubnetSizes {
		if s == v {
			return true
		}
	}
	return false
}

// BlockSize returns the number of addresses the prefix covers.
func (s SubnetSize) BlockSize() int {
	return 1 << (32 - uint(s))
}

func (s SubnetSize) String() string {
	return strconv.Itoa(int(s))
}

// Role tags which side of the fabric a link faces.
type Role int

const (
	// HostFacing links connect a host to its top-of-rack switch and
	// use the configured subnet size.
	HostFacing Role = iota
	// SpineFacing links connect switches to each other and are always
	// /31, regardless of configuration.
	SpineFacing
)

func (r Role) String() string {
	if r == SpineFacing {
		return "spine-facing"
	}
	return "host-facing"
}

// Link describes one link to compute addresses for. The role is carried
// explicitly rather than inferred from which fields happen to be set,
// so downstream consumers never have to probe for missing attributes.
type Link struct {
	Role Role
	// Size is the configured host subnet size. Ignored for
	// spine-facing links.
	Size SubnetSize
}

// HostLink returns a host-facing link using the configured size.
func HostLink(size SubnetSize) Link {
	return Link{Role: HostFacing, Size: size}
}

// SpineLink returns a spine-facing (inter-switch) link.
func SpineLink() Link {
	return Link{Role: SpineFacing}
}

// Effective returns the prefix length actually used for the link.
// Spine-facing links are pinned to /31; the configured size never
// propagates to them.
func (l Link) Effective() SubnetSize {
	if l.Role == SpineFacing {
		return Subnet31
	}
	return l.Size
}

// An Assignment is the set of addresses a node and its switch need for
// one link. Network, Broadcast and the pod range are nil for /31
// blocks, where both addresses are usable endpoints.
type Assignment struct {
	// Size is the effective prefix length of the block.
	Size SubnetSize
	// Block is the node's address block within its rail subnet.
	Block *net.IPNet
	// Network is the (unusable) all-zeros address of the block.
	Network net.IP
	// Gateway is the switch-side address, always at offset 1.
	Gateway net.IP
	// Host is the node-side address: offset 0 for /31, offset 2
	// otherwise.
	Host net.IP
	// PodFirst and PodLast bound the pod-usable range, inclusive.
	// Both are nil when the block has no pod addresses.
	PodFirst net.IP
	PodLast  net.IP
	// Broadcast is the (unusable) all-ones address of the block.
	Broadcast net.IP
}

// ForNode computes the address assignment for the link of the node at
// the given zero-based index within its scale unit. railBase is the
// first address of the rail subnet the blocks are carved from; node
// blocks occupy consecutive fourth-octet ranges starting there.
//
// The subnet size is assumed to have passed configuration validation.
// Repeated calls with the same inputs return identical results.
func ForNode(railBase net.IP, nodeIndex int, link Link) (*Assignment, error) {
	base := railBase.To4()
	if base == nil {
		return nil, fmt.Errorf("rail base %v is not an IPv4 address", railBase)
	}
	if nodeIndex < 0 {
		return nil, fmt.Errorf("negative node index %d", nodeIndex)
	}

	size := link.Effective()
	blockSize := size.BlockSize()
	offset := int(base[3]) + nodeIndex*blockSize
	if offset+blockSize > 256 {
		return nil, fmt.Errorf("node index %d overflows rail subnet %v with /%d blocks", nodeIndex, railBase, size)
	}

	ip := make(net.IP, net.IPv4len)
	copy(ip, base)
	ip[3] = byte(offset)
	block := &net.IPNet{IP: ip, Mask: net.CIDRMask(int(size), 32)}

	first, last := cidr.AddressRange(block)
	a := &Assignment{
		Size:  size,
		Block: block,
	}

	if size == Subnet31 {
		// Point-to-point: both addresses usable, host first so that
		// the switch sits at host+1 like in the larger blocks.
		a.Host = first
		a.Gateway = last
		return a, nil
	}

	a.Network = first
	a.Broadcast = last
	gw, err := cidr.Host(block, 1)
	if err != nil {
		return nil, err
	}
	a.Gateway = gw
	host, err := cidr.Host(block, 2)
	if err != nil {
		return nil, err
	}
	a.Host = host

	// Addresses between the host and broadcast, if any, go to pods.
	// For /30 this range is empty: three of the four addresses are
	// taken and the last one is broadcast.
	if blockSize > 4 {
		podFirst, err := cidr.Host(block, 3)
		if err != nil {
			return nil, err
		}
		podLast, err := cidr.Host(block, blockSize-2)
		if err != nil {
			return nil, err
		}
		a.PodFirst = podFirst
		a.PodLast = podLast
	}

	return a, nil
}

// PodAddresses returns every pod-usable address of the block in
// ascending order. Nil when the block has none.
func (a *Assignment) PodAddresses() []net.IP {
	if a.PodFirst == nil {
		return nil
	}
	var ips []net.IP
	c := ipaddr.NewCursor([]ipaddr.Prefix{*ipaddr.NewPrefix(a.Block)})
	for pos := c.First(); pos != nil; pos = c.Next() {
		ip := pos.IP.To4()
		if bytes.Compare(ip, a.PodFirst.To4()) < 0 {
			continue
		}
		if bytes.Compare(ip, a.PodLast.To4()) > 0 {
			break
		}
		ips = append(ips, ip)
	}
	return ips
}

// String returns a compact description of the assignment.
func (a *Assignment) String() string {
	if a.Size == Subnet31 {
		return fmt.Sprintf("<block=%s host=%s gw=%s>", a.Block, a.Host, a.Gateway)
	}
	if a.PodFirst == nil {
		return fmt.Sprintf("<block=%s host=%s gw=%s pods=none>", a.Block, a.Host, a.Gateway)
	}
	return fmt.Sprintf("<block=%s host=%s gw=%s pods=%s-%s>", a.Block, a.Host, a.Gateway, a.PodFirst, a.PodLast)
}
