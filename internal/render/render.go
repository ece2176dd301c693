// SPDX-License-Identifier:Apache-2.0

// Package render turns a computed address plan into switch interface
// configuration stanzas.
package render

import (
	"io"
	"sort"
	"strconv"
	"text/template"

	"github.com/pkg/errors"

	"github.com/railnet/fabricplan/internal/fabric"
	"github.com/railnet/fabricplan/internal/ipam"
)

// Interface stanzas, cumulus style. Host-facing lines carry the
// configured prefix; spine-facing lines are /31 no matter what the
// deployment configures.
const portTemplate = `interface {{ .Name }}
    ip address {{ .IPAddress }}/{{ .Prefix }}
{{- if .RailSubnet }}
    # rail {{ .Rail }} subnet {{ .RailSubnet }}
{{- end }}
`

// SpinePort is a spine-facing port to render. It carries no subnet
// attribute at all; the fixed /31 comes from the renderer.
type SpinePort struct {
	Name      string
	IPAddress string
}

// portView is what the stanza template sees, regardless of where the
// port came from.
type portView struct {
	Name       string
	IPAddress  string
	Prefix     string
	Rail       int
	RailSubnet string
}

// A Renderer writes interface stanzas for host and spine ports.
type Renderer struct {
	tmpl *template.Template
}

// New returns a Renderer with the built-in stanza template.
func New() (*Renderer, error) {
	tmpl, err := template.New("port").Parse(portTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "parsing port template")
	}
	return &Renderer{tmpl: tmpl}, nil
}

// hostView resolves the address line's prefix for a host-facing port.
// A port without a computed subnet renders an empty prefix rather than
// failing: some code paths legitimately never set it. Spine-facing
// links that end up here still get the fixed 31.
func hostView(name string, port fabric.PortInfo) portView {
	prefix := port.Subnet
	if port.Link.Role == ipam.SpineFacing {
		prefix = "31"
	}
	return portView{
		Name:       name,
		IPAddress:  port.IPAddress,
		Prefix:     prefix,
		Rail:       port.Rail,
		RailSubnet: port.RailSubnet,
	}
}

// HostPorts renders the stanzas for a node's host-facing ports in
// interface-name order.
func (r *Renderer) HostPorts(w io.Writer, node fabric.NodeInfo) error {
	names := make([]string, 0, len(node.Ports))
	for name := range node.Ports {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.tmpl.Execute(w, hostView(name, node.Ports[name])); err != nil {
			return errors.Wrapf(err, "rendering port %s", name)
		}
	}
	return nil
}

// SpinePorts renders the stanzas for spine-facing ports. The prefix is
// always the literal 31.
func (r *Renderer) SpinePorts(w io.Writer, ports []SpinePort) error {
	for _, port := range ports {
		view := portView{Name: port.Name, IPAddress: port.IPAddress, Prefix: "31"}
		if err := r.tmpl.Execute(w, view); err != nil {
			return errors.Wrapf(err, "rendering port %s", port.Name)
		}
	}
	return nil
}

// SwitchPorts renders a switch config: loopback first, then host-facing
// ports with the configured prefix, then the inter-switch ports as
// fixed /31s.
func (r *Renderer) SwitchPorts(w io.Writer, node fabric.NodeInfo) error {
	if node.Loopback != "" {
		view := portView{Name: "lo", IPAddress: node.Loopback, Prefix: "32"}
		if err := r.tmpl.Execute(w, view); err != nil {
			return errors.Wrap(err, "rendering loopback")
		}
	}

	names := make([]string, 0, len(node.Ports))
	for name := range node.Ports {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := node.Ports[names[i]], node.Ports[names[j]]
		if a.Link.Role != b.Link.Role {
			return a.Link.Role == ipam.HostFacing
		}
		return portLess(names[i], names[j])
	})

	var spine []SpinePort
	for _, name := range names {
		port := node.Ports[name]
		if port.Link.Role == ipam.SpineFacing {
			spine = append(spine, SpinePort{Name: name, IPAddress: port.IPAddress})
			continue
		}
		if err := r.tmpl.Execute(w, hostView(name, port)); err != nil {
			return errors.Wrapf(err, "rendering port %s", name)
		}
	}
	return r.SpinePorts(w, spine)
}

// portLess orders port names numerically where they share a prefix, so
// swp2 sorts before swp10.
func portLess(a, b string) bool {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] && (a[i] < '0' || a[i] > '9') {
		i++
	}
	na, errA := strconv.Atoi(a[i:])
	nb, errB := strconv.Atoi(b[i:])
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
