// SPDX-License-Identifier:Apache-2.0

// Command cidrpoolgen converts a deployment configuration into
// CIDRPool custom resources for a node IPAM plugin: one pool per rail,
// with a static allocation pinning each host's block.
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"github.com/railnet/fabricplan/api/v1alpha1"
	"github.com/railnet/fabricplan/internal/config"
	"github.com/railnet/fabricplan/internal/fabric"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

var inputDirPath = "/var/input"

func main() {
	input := flag.String("source", "fabric.yaml", "name of the configuration file to convert")
	output := flag.String("output", "pools.yaml", "path to write the generated CIDRPools to")
	flag.Parse()

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output file: %s", err)
	}
	defer f.Close()

	if err := generate(f, *input); err != nil {
		log.Fatalf("failed to generate CIDRPools: %s", err)
	}
	log.Printf("wrote %s", *output)
}

// generate reads the named configuration file from the input directory
// and writes the corresponding CIDRPool resources as a YAML stream.
func generate(w io.Writer, name string) error {
	bs, err := ioutil.ReadFile(filepath.Join(inputDirPath, name))
	if err != nil {
		return fmt.Errorf("reading configuration: %s", err)
	}
	cfg, err := config.Parse(bs)
	if err != nil {
		return err
	}

	pools, err := pools(cfg)
	if err != nil {
		return err
	}
	for i, pool := range pools {
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		out, err := yaml.Marshal(pool)
		if err != nil {
			return fmt.Errorf("marshaling pool %s: %s", pool.Name, err)
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// pools builds one CIDRPool per rail and plane, in host interface
// order. The pool CIDR is the rail subnet; each host gets a static
// allocation holding the network address of its block and the gateway
// inside it.
func pools(cfg *config.Config) ([]v1alpha1.CIDRPool, error) {
	planner := fabric.NewPlanner(cfg)
	rails := len(cfg.HostInterfaces) / cfg.PlanesNum
	maxHosts := planner.MaxHostsPerSU()
	gatewayIndex := int32(1)

	var out []v1alpha1.CIDRPool
	for rail := 0; rail < rails; rail++ {
		for plane := 0; plane < cfg.PlanesNum; plane++ {
			subnets, err := planner.RailSubnets([]int{rail}, plane, 0, 0)
			if err != nil {
				return nil, err
			}

			pool := v1alpha1.CIDRPool{
				TypeMeta: metav1.TypeMeta{
					APIVersion: v1alpha1.SchemeGroupVersion.String(),
					Kind:       "CIDRPool",
				},
				ObjectMeta: metav1.ObjectMeta{
					Name: fmt.Sprintf("rail-%d", rail*cfg.PlanesNum+plane),
				},
				Spec: v1alpha1.CIDRPoolSpec{
					CIDR:                 subnets[0].String(),
					GatewayIndex:         &gatewayIndex,
					PerNodeNetworkPrefix: int32(cfg.HostSubnetSize),
				},
			}

			for i, host := range cfg.Hosts {
				su := i / maxHosts
				pod := su / cfg.PodSize
				if pod >= cfg.PodNum {
					return nil, fmt.Errorf("host %q (index %d) exceeds the deployment's %d pods of %d scale units", host, i, cfg.PodNum, cfg.PodSize)
				}
				a, _, err := planner.HostLink(fabric.HostPort{
					Rail:      rail,
					Plane:     plane,
					SU:        su % cfg.PodSize,
					Pod:       pod,
					HostIndex: i % maxHosts,
				})
				if err != nil {
					return nil, fmt.Errorf("host %q: %s", host, err)
				}
				pool.Spec.StaticAllocations = append(pool.Spec.StaticAllocations, v1alpha1.CIDRPoolStaticAllocation{
					NodeName: host,
					Gateway:  a.Gateway.String(),
					Prefix:   a.Block.String(),
				})
			}
			out = append(out, pool)
		}
	}
	return out, nil
}
