// SPDX-License-Identifier:Apache-2.0

package ipam

import (
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ip(s string) net.IP {
	ret := net.ParseIP(s).To4()
	if ret == nil {
		panic("bad IP in test: " + s)
	}
	return ret
}

func ipnet(s string) *net.IPNet {
	i, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	n.IP = i.To4()
	return n
}

func TestForNode(t *testing.T) {
	tests := []struct {
		desc      string
		railBase  net.IP
		nodeIndex int
		link      Link
		want      *Assignment
		wantErr   bool
	}{
		{
			desc:      "/29 first node",
			railBase:  ip("172.16.0.0"),
			nodeIndex: 0,
			link:      HostLink(Subnet29),
			want: &Assignment{
				Size:      Subnet29,
				Block:     ipnet("172.16.0.0/29"),
				Network:   ip("172.16.0.0"),
				Gateway:   ip("172.16.0.1"),
				Host:      ip("172.16.0.2"),
				PodFirst:  ip("172.16.0.3"),
				PodLast:   ip("172.16.0.6"),
				Broadcast: ip("172.16.0.7"),
			},
		},
		{
			desc:      "/29 second node",
			railBase:  ip("172.16.0.0"),
			nodeIndex: 1,
			link:      HostLink(Subnet29),
			want: &Assignment{
				Size:      Subnet29,
				Block:     ipnet("172.16.0.8/29"),
				Network:   ip("172.16.0.8"),
				Gateway:   ip("172.16.0.9"),
				Host:      ip("172.16.0.10"),
				PodFirst:  ip("172.16.0.11"),
				PodLast:   ip("172.16.0.14"),
				Broadcast: ip("172.16.0.15"),
			},
		},
		{
			desc:      "/30 has no pod addresses",
			railBase:  ip("172.16.0.0"),
			nodeIndex: 0,
			link:      HostLink(Subnet30),
			want: &Assignment{
				Size:      Subnet30,
				Block:     ipnet("172.16.0.0/30"),
				Network:   ip("172.16.0.0"),
				Gateway:   ip("172.16.0.1"),
				Host:      ip("172.16.0.2"),
				Broadcast: ip("172.16.0.3"),
			},
		},
		{
			desc:      "/31 point to point",
			railBase:  ip("172.16.0.0"),
			nodeIndex: 3,
			link:      HostLink(Subnet31),
			want: &Assignment{
				Size:    Subnet31,
				Block:   ipnet("172.16.0.6/31"),
				Host:    ip("172.16.0.6"),
				Gateway: ip("172.16.0.7"),
			},
		},
		{
			desc:      "last /29 block in the octet",
			railBase:  ip("172.16.0.0"),
			nodeIndex: 31,
			link:      HostLink(Subnet29),
			want: &Assignment{
				Size:      Subnet29,
				Block:     ipnet("172.16.0.248/29"),
				Network:   ip("172.16.0.248"),
				Gateway:   ip("172.16.0.249"),
				Host:      ip("172.16.0.250"),
				PodFirst:  ip("172.16.0.251"),
				PodLast:   ip("172.16.0.254"),
				Broadcast: ip("172.16.0.255"),
			},
		},
		{
			desc:      "spine link ignores configured /29",
			railBase:  ip("10.254.1.0"),
			nodeIndex: 4,
			link:      Link{Role: SpineFacing, Size: Subnet29},
			want: &Assignment{
				Size:    Subnet31,
				Block:   ipnet("10.254.1.8/31"),
				Host:    ip("10.254.1.8"),
				Gateway: ip("10.254.1.9"),
			},
		},
		{
			desc:      "node index overflows the octet",
			railBase:  ip("172.16.0.0"),
			nodeIndex: 32,
			link:      HostLink(Subnet29),
			wantErr:   true,
		},
		{
			desc:      "negative node index",
			railBase:  ip("172.16.0.0"),
			nodeIndex: -1,
			link:      HostLink(Subnet31),
			wantErr:   true,
		},
		{
			desc:      "IPv6 rail base rejected",
			railBase:  net.ParseIP("2001:db8::1"),
			nodeIndex: 0,
			link:      HostLink(Subnet31),
			wantErr:   true,
		},
	}

	for _, test := range tests {
		got, err := ForNode(test.railBase, test.nodeIndex, test.link)
		if test.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", test.desc, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.desc, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%q: unexpected assignment (-want +got)\n%s", test.desc, diff)
		}
	}
}

func TestForNodeDeterministic(t *testing.T) {
	for _, size := range SupportedSubnetSizes {
		first, err := ForNode(ip("172.16.4.0"), 5, HostLink(size))
		if err != nil {
			t.Fatalf("ForNode(/%s): %v", size, err)
		}
		second, err := ForNode(ip("172.16.4.0"), 5, HostLink(size))
		if err != nil {
			t.Fatalf("ForNode(/%s): %v", size, err)
		}
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("/%s: repeated invocation diverged (-first +second)\n%s", size, diff)
		}
	}
}

func TestBlocksDoNotOverlap(t *testing.T) {
	for _, size := range SupportedSubnetSizes {
		perOctet := 256 / size.BlockSize()
		assignments := make([]*Assignment, perOctet)
		for i := 0; i < perOctet; i++ {
			a, err := ForNode(ip("172.16.0.0"), i, HostLink(size))
			if err != nil {
				t.Fatalf("ForNode(/%s, %d): %v", size, i, err)
			}
			assignments[i] = a
		}
		for i, a := range assignments {
			for j, b := range assignments {
				if i == j {
					continue
				}
				if a.Block.Contains(b.Host) || b.Block.Contains(a.Host) {
					t.Errorf("/%s: blocks for nodes %d and %d overlap: %v %v", size, i, j, a.Block, b.Block)
				}
			}
		}
	}
}

func TestLinkEffective(t *testing.T) {
	for _, size := range SupportedSubnetSizes {
		if got := HostLink(size).Effective(); got != size {
			t.Errorf("host link with /%s: got effective /%s", size, got)
		}
		spine := Link{Role: SpineFacing, Size: size}
		if got := spine.Effective(); got != Subnet31 {
			t.Errorf("spine link with configured /%s: got effective /%s, want /31", size, got)
		}
	}
}

func TestPodAddresses(t *testing.T) {
	tests := []struct {
		desc string
		size SubnetSize
		want []net.IP
	}{
		{
			desc: "/29 yields four pod addresses",
			size: Subnet29,
			want: []net.IP{ip("172.16.0.3"), ip("172.16.0.4"), ip("172.16.0.5"), ip("172.16.0.6")},
		},
		{
			desc: "/30 yields none",
			size: Subnet30,
		},
		{
			desc: "/31 yields none",
			size: Subnet31,
		},
	}

	for _, test := range tests {
		a, err := ForNode(ip("172.16.0.0"), 0, HostLink(test.size))
		if err != nil {
			t.Fatalf("%q: %v", test.desc, err)
		}
		if diff := cmp.Diff(test.want, a.PodAddresses()); diff != "" {
			t.Errorf("%q: unexpected pod addresses (-want +got)\n%s", test.desc, diff)
		}
	}
}

func TestSubnetSizeValid(t *testing.T) {
	for _, size := range SupportedSubnetSizes {
		if !size.Valid() {
			t.Errorf("/%s should be valid", size)
		}
	}
	for _, size := range []SubnetSize{0, 24, 28, 32, -1} {
		if size.Valid() {
			t.Errorf("/%d should not be valid", size)
		}
	}
}
