// Package typemap holds the conversion graph shared by every generation step
// of a build: which Go types exist, which Java types they map to, and the code
// that converts between them.
//
// The graph is built sequentially by one writer. A type must be registered
// before any later step asks how to convert it.
package typemap

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/ir"
)

// NativeTypeIdx identifies a native type node.
type NativeTypeIdx int

// NativeType is a node for a Go type.
type NativeType struct {
	Idx    NativeTypeIdx
	Type   ir.NativeType
	Source ir.Source

	// implements maps a capability name to the Go expression of the value
	// implementing it, e.g. "jnirt.OrdinalConvertible" -> "ordinalsColor{}".
	implements map[string]string
}

// Name returns the identity of the type.
func (t *NativeType) Name() string { return t.Type.Identity() }

// Implements reports whether the type was tagged with capability.
func (t *NativeType) Implements(capability string) bool {
	_, ok := t.implements[capability]
	return ok
}

// Capability returns the implementation expression registered for capability.
func (t *NativeType) Capability(capability string) (string, bool) {
	impl, ok := t.implements[capability]
	return impl, ok
}

// Capabilities returns the sorted capability names of a native type.
func (t *NativeType) Capabilities() []string {
	names := make([]string, 0, len(t.implements))
	for name := range t.implements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Intermediate routes a foreign conversion through another native type.
type Intermediate struct {
	// Type is the native type the foreign side converts to or from.
	Type NativeTypeIdx

	// Code is the foreign-side conversion between the foreign type and Type.
	Code ConvCode
}

// ConversionRule describes how a foreign type relates to a native type.
type ConversionRule struct {
	NativeType   NativeTypeIdx
	Intermediate *Intermediate
}

// ForeignType is a node for a Java type.
type ForeignType struct {
	Name   string
	Source ir.Source

	// IntoFromNative converts a native value into this type.
	IntoFromNative *ConversionRule

	// FromIntoNative converts a value of this type into a native value.
	FromIntoNative *ConversionRule
}

// Edge is a direct native-to-native conversion.
type Edge struct {
	Code ConvCode
}

// EdgeInfo describes a registered edge.
type EdgeInfo struct {
	From, To NativeTypeIdx
	Edge     Edge
}

type edgeKey struct {
	from, to NativeTypeIdx
}

// CollisionPolicy decides what AllocForeignType does with a name that is
// already registered.
type CollisionPolicy int

const (
	// RejectDuplicates fails with a duplicate_type diagnostic.
	RejectDuplicates CollisionPolicy = iota
	// ReplaceDuplicates overwrites the earlier type and records a warning.
	ReplaceDuplicates
)

// ParseCollisionPolicy parses "reject" or "replace".
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "", "reject":
		return RejectDuplicates, nil
	case "replace":
		return ReplaceDuplicates, nil
	default:
		return RejectDuplicates, fmt.Errorf("unknown collision policy %q (expected \"reject\" or \"replace\")", s)
	}
}

func (p CollisionPolicy) String() string {
	if p == ReplaceDuplicates {
		return "replace"
	}
	return "reject"
}

// Graph is the build-wide conversion graph.
type Graph struct {
	policy CollisionPolicy

	native       []*NativeType
	nativeByName map[string]NativeTypeIdx

	foreign *linkedhashmap.Map // name -> *ForeignType, in registration order

	edges     map[edgeKey]Edge
	edgeOrder []edgeKey

	exported []*ir.EnumDefinition
	warnings []ir.Warning
}

// NewGraph returns an empty graph applying policy to foreign name collisions.
func NewGraph(policy CollisionPolicy) *Graph {
	return &Graph{
		policy:       policy,
		nativeByName: make(map[string]NativeTypeIdx),
		foreign:      linkedhashmap.New(),
		edges:        make(map[edgeKey]Edge),
	}
}

// Policy returns the collision policy of the graph.
func (g *Graph) Policy() CollisionPolicy { return g.policy }

// FindOrAllocNativeType returns the node for t, allocating it if needed.
func (g *Graph) FindOrAllocNativeType(t ir.NativeType, src ir.Source) *NativeType {
	if idx, ok := g.nativeByName[t.Identity()]; ok {
		return g.native[idx]
	}
	node := &NativeType{
		Idx:        NativeTypeIdx(len(g.native)),
		Type:       t,
		Source:     src,
		implements: make(map[string]string),
	}
	g.native = append(g.native, node)
	g.nativeByName[t.Identity()] = node.Idx
	return node
}

// FindOrAllocNativeTypeThatImplements returns the node for t, allocating it
// if needed, and tags it with every capability in caps.
func (g *Graph) FindOrAllocNativeTypeThatImplements(t ir.NativeType, caps map[string]string, src ir.Source) *NativeType {
	node := g.FindOrAllocNativeType(t, src)
	for capability, impl := range caps {
		node.implements[capability] = impl
	}
	return node
}

// RemoveCapability drops capability from the node idx.
func (g *Graph) RemoveCapability(idx NativeTypeIdx, capability string) {
	if node := g.NativeType(idx); node != nil {
		delete(node.implements, capability)
	}
}

// NativeType returns the node with the given index.
func (g *Graph) NativeType(idx NativeTypeIdx) *NativeType {
	if idx < 0 || int(idx) >= len(g.native) {
		return nil
	}
	return g.native[idx]
}

// LookupNativeType returns the node for the type with the given identity.
func (g *Graph) LookupNativeType(identity string) (*NativeType, bool) {
	idx, ok := g.nativeByName[identity]
	if !ok {
		return nil, false
	}
	return g.native[idx], true
}

// NativeTypes returns every native node in allocation order.
func (g *Graph) NativeTypes() []*NativeType {
	out := make([]*NativeType, len(g.native))
	copy(out, g.native)
	return out
}

// AllocForeignType registers ft under its name, applying the collision policy.
func (g *Graph) AllocForeignType(ft *ForeignType) error {
	if ft.Name == "" {
		return diag.New(diag.CodeInvalidDefinition, ft.Source, "foreign type has no name")
	}
	if err := g.CheckForeignName(ft.Name, ft.Source); err != nil {
		return err
	}
	if prev, ok := g.ForeignType(ft.Name); ok {
		src := ft.Source
		g.warnings = append(g.warnings, ir.Warning{
			Code:     "DUPLICATE_TYPE",
			Message:  fmt.Sprintf("type %s replaces the definition at %s", ft.Name, prev.Source),
			Source:   &src,
			TypeName: ft.Name,
		})
	}
	g.foreign.Put(ft.Name, ft)
	return nil
}

// CheckForeignName reports whether a foreign type named name, defined at
// src, could be registered under the collision policy of g.
func (g *Graph) CheckForeignName(name string, src ir.Source) error {
	if g.policy != RejectDuplicates {
		return nil
	}
	if prev, ok := g.ForeignType(name); ok {
		return diag.Errorf(diag.CodeDuplicateType, src,
			"type %s already defined at %s", name, prev.Source)
	}
	return nil
}

// ForeignType returns the foreign type registered under name.
func (g *Graph) ForeignType(name string) (*ForeignType, bool) {
	v, ok := g.foreign.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*ForeignType), true
}

// ForeignTypes returns every foreign type in registration order.
func (g *Graph) ForeignTypes() []*ForeignType {
	values := g.foreign.Values()
	out := make([]*ForeignType, len(values))
	for i, v := range values {
		out[i] = v.(*ForeignType)
	}
	return out
}

// ForeignTypeFor returns the foreign type a native value converts into.
func (g *Graph) ForeignTypeFor(idx NativeTypeIdx) (*ForeignType, bool) {
	for _, ft := range g.ForeignTypes() {
		if ft.IntoFromNative != nil && ft.IntoFromNative.NativeType == idx {
			return ft, true
		}
	}
	return nil, false
}

// AddConversionRule registers a direct conversion from one native type to
// another. A later rule for the same pair replaces the earlier one.
func (g *Graph) AddConversionRule(from, to NativeTypeIdx, e Edge) {
	key := edgeKey{from, to}
	if _, ok := g.edges[key]; !ok {
		g.edgeOrder = append(g.edgeOrder, key)
	}
	g.edges[key] = e
}

// RemoveConversionRule drops the direct conversion between two native types.
func (g *Graph) RemoveConversionRule(from, to NativeTypeIdx) {
	key := edgeKey{from, to}
	if _, ok := g.edges[key]; !ok {
		return
	}
	delete(g.edges, key)
	for i, k := range g.edgeOrder {
		if k == key {
			g.edgeOrder = append(g.edgeOrder[:i], g.edgeOrder[i+1:]...)
			break
		}
	}
}

// ConversionRule returns the direct conversion between two native types.
func (g *Graph) ConversionRule(from, to NativeTypeIdx) (Edge, bool) {
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}

// Edges returns every direct conversion in registration order.
func (g *Graph) Edges() []EdgeInfo {
	out := make([]EdgeInfo, 0, len(g.edgeOrder))
	for _, k := range g.edgeOrder {
		out = append(out, EdgeInfo{From: k.from, To: k.to, Edge: g.edges[k]})
	}
	return out
}

// RegisterExportedEnum appends def to the exported-enum registry.
func (g *Graph) RegisterExportedEnum(def *ir.EnumDefinition) {
	g.exported = append(g.exported, def)
}

// ExportedEnums returns the enums registered so far, in registration order.
func (g *Graph) ExportedEnums() []*ir.EnumDefinition {
	out := make([]*ir.EnumDefinition, len(g.exported))
	copy(out, g.exported)
	return out
}

// Warnings returns the warnings recorded while building the graph.
func (g *Graph) Warnings() []ir.Warning {
	out := make([]ir.Warning, len(g.warnings))
	copy(out, g.warnings)
	return out
}
