// SPDX-License-Identifier:Apache-2.0

// Command planner computes the addressing plan for a rail-optimized
// fabric and writes per-node interface configs plus a machine-readable
// plan.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-kit/log/level"
	"sigs.k8s.io/yaml"

	"github.com/railnet/fabricplan/internal/config"
	"github.com/railnet/fabricplan/internal/fabric"
	"github.com/railnet/fabricplan/internal/logging"
	"github.com/railnet/fabricplan/internal/render"
	"github.com/railnet/fabricplan/internal/version"
)

func main() {
	var (
		configPath = flag.String("config", "fabric.yaml", "path to the deployment configuration file")
		outDir     = flag.String("out", "out", "directory to write generated configs to")
		logLevel   = flag.String("log-level", "info", fmt.Sprintf("log level. must be one of: [%s]", strings.Join(logging.Levels, ", ")))
	)
	flag.Parse()

	logger, err := logging.Init(*logLevel)
	if err != nil {
		fmt.Printf("failed to initialize logging: %s\n", err)
		os.Exit(1)
	}

	level.Info(logger).Log("version", version.Version(), "commit", version.CommitHash(), "branch", version.Branch(), "goversion", version.GoString(), "msg", "fabric planner starting "+version.String())

	bs, err := ioutil.ReadFile(*configPath)
	if err != nil {
		level.Error(logger).Log("op", "startup", "error", err, "msg", "failed to read configuration")
		os.Exit(1)
	}
	cfg, err := config.Parse(bs)
	if err != nil {
		level.Error(logger).Log("op", "startup", "error", err, "msg", "invalid configuration")
		os.Exit(1)
	}

	planner := fabric.NewPlanner(cfg)
	nodes, err := planner.NodesInfo()
	if err != nil {
		level.Error(logger).Log("op", "plan", "error", err, "msg", "failed to compute host addressing plan")
		os.Exit(1)
	}
	switches, err := planner.SwitchesInfo()
	if err != nil {
		level.Error(logger).Log("op", "plan", "error", err, "msg", "failed to compute switch addressing plan")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		level.Error(logger).Log("op", "write", "error", err, "msg", "failed to create output directory")
		os.Exit(1)
	}

	all := make(map[string]fabric.NodeInfo, len(nodes)+len(switches))
	for name, node := range nodes {
		all[name] = node
	}
	for name, sw := range switches {
		all[name] = sw
	}
	out, err := yaml.Marshal(all)
	if err != nil {
		level.Error(logger).Log("op", "write", "error", err, "msg", "failed to marshal plan")
		os.Exit(1)
	}
	planFile := filepath.Join(*outDir, "nodes-info.yaml")
	if err := ioutil.WriteFile(planFile, out, 0644); err != nil {
		level.Error(logger).Log("op", "write", "error", err, "file", planFile, "msg", "failed to write plan")
		os.Exit(1)
	}
	level.Info(logger).Log("op", "write", "file", planFile, "hosts", len(nodes), "switches", len(switches), "msg", "wrote addressing plan")

	r, err := render.New()
	if err != nil {
		level.Error(logger).Log("op", "render", "error", err, "msg", "failed to build renderer")
		os.Exit(1)
	}

	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f, err := os.Create(filepath.Join(*outDir, name+".cfg"))
		if err != nil {
			level.Error(logger).Log("op", "render", "error", err, "node", name, "msg", "failed to create config file")
			os.Exit(1)
		}
		err = r.HostPorts(f, nodes[name])
		f.Close()
		if err != nil {
			level.Error(logger).Log("op", "render", "error", err, "node", name, "msg", "failed to render config")
			os.Exit(1)
		}
		level.Debug(logger).Log("op", "render", "node", name, "msg", "wrote interface config")
	}

	swNames := make([]string, 0, len(switches))
	for name := range switches {
		swNames = append(swNames, name)
	}
	sort.Strings(swNames)

	for _, name := range swNames {
		f, err := os.Create(filepath.Join(*outDir, name+".cfg"))
		if err != nil {
			level.Error(logger).Log("op", "render", "error", err, "switch", name, "msg", "failed to create config file")
			os.Exit(1)
		}
		err = r.SwitchPorts(f, switches[name])
		f.Close()
		if err != nil {
			level.Error(logger).Log("op", "render", "error", err, "switch", name, "msg", "failed to render config")
			os.Exit(1)
		}
		level.Debug(logger).Log("op", "render", "switch", name, "msg", "wrote interface config")
	}

	level.Info(logger).Log("op", "shutdown", "msg", "done")
}
