// SPDX-License-Identifier:Apache-2.0

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +kubebuilder:object:root=true
// +kubebuilder:printcolumn:name="CIDR",type="string",JSONPath=`.spec.cidr`
// +kubebuilder:printcolumn:name="Gateway index",type="string",JSONPath=`.spec.gatewayIndex`
// +kubebuilder:printcolumn:name="Per Node Network Prefix",type="integer",JSONPath=`.spec.perNodeNetworkPrefix`

// CIDRPool carves a rail subnet into fixed-size per-node blocks that an
// IPAM plugin hands out to nodes.
type CIDRPool struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`
	Spec              CIDRPoolSpec `json:"spec"`
}

// CIDRPoolSpec defines the rail subnet and how to slice it.
type CIDRPoolSpec struct {
	// CIDR is the rail subnet. It is split into prefixes of
	// perNodeNetworkPrefix size, one per matching node.
	CIDR string `json:"cidr"`

	// GatewayIndex selects which address of a node's prefix acts as the
	// gateway. Gateway configuration is skipped when unset.
	// +optional
	GatewayIndex *int32 `json:"gatewayIndex,omitempty"`

	// PerNodeNetworkPrefix is the prefix length of each node's block.
	PerNodeNetworkPrefix int32 `json:"perNodeNetworkPrefix"`

	// Exclusions lists address ranges that must never be handed out.
	// +optional
	Exclusions []ExcludeRange `json:"exclusions,omitempty"`

	// StaticAllocations pins specific prefixes to specific nodes.
	// +optional
	StaticAllocations []CIDRPoolStaticAllocation `json:"staticAllocations,omitempty"`

	// NodeSelector restricts which nodes the pool applies to. An empty
	// selector matches all nodes.
	// +optional
	NodeSelector *corev1.NodeSelector `json:"nodeSelector,omitempty"`

	// Routes to install on each node, via the node's gateway.
	// +optional
	Routes []Route `json:"routes,omitempty"`
}

// ExcludeRange is an inclusive range of addresses to keep out of
// dynamic allocation.
type ExcludeRange struct {
	StartIP string `json:"startIP"`
	EndIP   string `json:"endIP"`
}

// CIDRPoolStaticAllocation pins a prefix, and optionally a gateway, to
// a node. NodeName may be empty to reserve the prefix without assigning
// it.
type CIDRPoolStaticAllocation struct {
	NodeName string `json:"nodeName,omitempty"`
	Gateway  string `json:"gateway,omitempty"`
	Prefix   string `json:"prefix"`
}

// Route is a static route distributed with each node's allocation.
type Route struct {
	Dst string `json:"dst"`
}

// +kubebuilder:object:root=true

// CIDRPoolList contains a list of CIDRPool.
type CIDRPoolList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []CIDRPool `json:"items"`
}
