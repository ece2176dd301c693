// SPDX-License-Identifier:Apache-2.0

package fabric

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/railnet/fabricplan/internal/config"
	"github.com/railnet/fabricplan/internal/ipam"
)

func TestNodesInfo(t *testing.T) {
	cfg := testConfig(config.TwoTier, "hgx", ipam.Subnet29)
	cfg.Hosts = []string{"gpu-01", "gpu-02"}
	p := NewPlanner(cfg)

	nodes, err := p.NodesInfo()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}

	want := PortInfo{
		Name:          "eth1",
		Link:          ipam.HostLink(ipam.Subnet29),
		IPAddress:     "172.16.0.2",
		RailSubnet:    "172.16.0.0/15",
		Subnet:        "29",
		PeerIPAddress: "172.16.0.1",
		PeerRole:      "leaf",
	}
	if diff := cmp.Diff(want, nodes["gpu-01"].Ports["eth1"]); diff != "" {
		t.Errorf("gpu-01 eth1 (-want +got)\n%s", diff)
	}

	// The second host's block starts where the first one ends.
	second := nodes["gpu-02"].Ports["eth1"]
	if second.IPAddress != "172.16.0.10" {
		t.Errorf("gpu-02 eth1 address %s, want 172.16.0.10", second.IPAddress)
	}
	if second.HostIndex != 1 {
		t.Errorf("gpu-02 host index %d, want 1", second.HostIndex)
	}

	// Rails are independent IP spaces: same host, different rail,
	// different second octet.
	rail1 := nodes["gpu-01"].Ports["eth2"]
	if rail1.IPAddress != "172.18.0.2" {
		t.Errorf("gpu-01 eth2 address %s, want 172.18.0.2", rail1.IPAddress)
	}
	if rail1.Rail != 1 || rail1.RailGroup != 0 {
		t.Errorf("gpu-01 eth2 rail=%d group=%d, want rail=1 group=0", rail1.Rail, rail1.RailGroup)
	}
}

func TestNodesInfoRollsOverScaleUnits(t *testing.T) {
	cfg := testConfig(config.TwoTier, "hgx", ipam.Subnet29)
	// 33 hosts with /29 blocks: the 33rd does not fit SU 0.
	for i := 0; i < 33; i++ {
		cfg.Hosts = append(cfg.Hosts, "gpu-"+string(rune('a'+i/26))+string(rune('a'+i%26)))
	}
	nodes, err := NewPlanner(cfg).NodesInfo()
	if err != nil {
		t.Fatal(err)
	}

	last := nodes[cfg.Hosts[32]].Ports["eth1"]
	if last.SU != 1 || last.HostIndex != 0 {
		t.Errorf("host 32 placed at su=%d index=%d, want su=1 index=0", last.SU, last.HostIndex)
	}
	if last.IPAddress != "172.16.1.2" {
		t.Errorf("host 32 address %s, want 172.16.1.2", last.IPAddress)
	}
}

func TestNodesInfoTooManyHosts(t *testing.T) {
	cfg := testConfig(config.TwoTier, "hgx", ipam.Subnet31)
	cfg.PodSize = 1
	cfg.PodNum = 1
	for i := 0; i < 129; i++ {
		cfg.Hosts = append(cfg.Hosts, "h"+string(rune('0'+i/100))+string(rune('0'+(i/10)%10))+string(rune('0'+i%10)))
	}
	if _, err := NewPlanner(cfg).NodesInfo(); err == nil {
		t.Error("129 hosts in a single 128-host scale unit should fail")
	}
}
