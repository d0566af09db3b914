// Package fixtures builds small in-memory node/edge graphs for tests,
// generalizing the teacher's fluent MergeBuilder (pkg/graft/api_v2.go:
// WithPrune/WithCherryPick/SkipEvaluation chained onto a single Execute)
// into a graph-construction builder chained onto a single Build.
package fixtures

import (
	"github.com/google/uuid"

	"github.com/wayneeseguin/nodeselect/pkg/selector"
)

// GraphBuilder accumulates nodes and edges for a test graph.
type GraphBuilder struct {
	nodes []selector.RawNode
	edges map[string][]string
}

// NewGraphBuilder starts an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{edges: map[string][]string{}}
}

// Node adds one node in its fully general form; most tests reach for one of
// the kind-specific helpers below instead.
func (b *GraphBuilder) Node(n selector.RawNode) *GraphBuilder {
	b.nodes = append(b.nodes, n)
	if _, ok := b.edges[n.UniqueId]; !ok {
		b.edges[n.UniqueId] = append([]string{}, n.DependsOn...)
	}
	return b
}

// Model adds a model node named uniqueId (e.g. "model.pkg.name") depending
// on dependsOn, carrying tags.
func (b *GraphBuilder) Model(uniqueId string, dependsOn []string, tags ...string) *GraphBuilder {
	return b.kind(uniqueId, "model", dependsOn, tags)
}

// Seed adds a seed node.
func (b *GraphBuilder) Seed(uniqueId string, tags ...string) *GraphBuilder {
	return b.kind(uniqueId, "seed", nil, tags)
}

// Source adds a source node.
func (b *GraphBuilder) Source(uniqueId string, tags ...string) *GraphBuilder {
	return b.kind(uniqueId, "source", nil, tags)
}

// Test adds a test node depending on parents (the nodes it exercises).
func (b *GraphBuilder) Test(uniqueId string, parents []string, tags ...string) *GraphBuilder {
	return b.kind(uniqueId, "test", parents, tags)
}

// Snapshot adds a snapshot node.
func (b *GraphBuilder) Snapshot(uniqueId string, dependsOn []string, tags ...string) *GraphBuilder {
	return b.kind(uniqueId, "snapshot", dependsOn, tags)
}

// Exposure adds an exposure node.
func (b *GraphBuilder) Exposure(uniqueId string, dependsOn []string, tags ...string) *GraphBuilder {
	return b.kind(uniqueId, "exposure", dependsOn, tags)
}

// Macro adds a macro node with the given macro_sql body, used by
// state:modified.macros fixtures.
func (b *GraphBuilder) Macro(uniqueId, macroSql string) *GraphBuilder {
	pkg, name := splitTwo(uniqueId)
	return b.Node(selector.RawNode{
		UniqueId: uniqueId, Name: name, PackageName: pkg,
		Path: name + ".sql", OriginalFilePath: name + ".sql",
		Kind: "macro", Payload: selector.Payload{MacroSql: macroSql},
	})
}

func (b *GraphBuilder) kind(uniqueId, kind string, dependsOn, tags []string) *GraphBuilder {
	pkg, name := splitTwo(uniqueId)
	return b.Node(selector.RawNode{
		UniqueId: uniqueId, Name: name, PackageName: pkg,
		Path: name + ".sql", OriginalFilePath: name + ".sql",
		DependsOn: dependsOn, Tags: tags, Kind: kind,
		Payload: selector.Payload{Fqn: []string{pkg, name}},
	})
}

// WithConfig sets a config key/value pair on the most recently added node.
func (b *GraphBuilder) WithConfig(key, value string) *GraphBuilder {
	if len(b.nodes) == 0 {
		return b
	}
	n := &b.nodes[len(b.nodes)-1]
	if n.Config == nil {
		n.Config = map[string]string{}
	}
	n.Config[key] = value
	return b
}

// Build renders the accumulated nodes into node/edge records, one edge per
// node whose parent list is the DependsOn recorded when that node's id was
// first added, matching how
// RawEdge is a derived adjacency view over RawNode.DependsOn in the hosts
// this engine is designed for.
func (b *GraphBuilder) Build() ([]selector.RawNode, []selector.RawEdge) {
	edges := make([]selector.RawEdge, 0, len(b.nodes))
	for _, n := range b.nodes {
		edges = append(edges, selector.RawEdge{UniqueId: n.UniqueId, Parents: b.edges[n.UniqueId]})
	}
	return b.nodes, edges
}

// NewUniqueId generates a synthetic id with a random suffix, for tests that
// need many interchangeable nodes without hand-naming each one.
func NewUniqueId(kind, pkg string) string {
	return kind + "." + pkg + "." + uuid.NewString()[:8]
}

func splitTwo(uniqueId string) (pkg, name string) {
	dot := -1
	for i := len(uniqueId) - 1; i >= 0; i-- {
		if uniqueId[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return "pkg", uniqueId
	}
	firstDot := -1
	for i := 0; i < len(uniqueId); i++ {
		if uniqueId[i] == '.' {
			firstDot = i
			break
		}
	}
	if firstDot < 0 || firstDot == dot {
		return uniqueId[:dot], uniqueId[dot+1:]
	}
	return uniqueId[firstDot+1 : dot], uniqueId[dot+1:]
}
