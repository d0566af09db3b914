// Package selector implements the node-selection query engine: given an
// immutable graph of DAG resources and a selection expression, it resolves
// the expression to the set of resource identifiers that satisfy it.
package selector

import "strings"

// UniqueId is an opaque, case-sensitive identifier drawn from the host
// vocabulary (e.g. "model.pkg.name"). Equality and hashing are byte-identical.
type UniqueId string

// NodeKind is a closed enumeration over the 14 resource kinds the graph
// can hold.
type NodeKind int

const (
	KindModel NodeKind = iota
	KindAnalysis
	KindTest
	KindSnapshot
	KindOperation
	KindSeed
	KindRpc
	KindSqlOperation
	KindDoc
	KindSource
	KindMacro
	KindExposure
	KindMetric
	KindGroup
)

// kindKeys maps each NodeKind to its canonical lowercase grammar key.
var kindKeys = map[NodeKind]string{
	KindModel:       "model",
	KindAnalysis:    "analysis",
	KindTest:        "test",
	KindSnapshot:    "snapshot",
	KindOperation:   "operation",
	KindSeed:        "seed",
	KindRpc:         "rpc",
	KindSqlOperation: "sql operation",
	KindDoc:         "doc",
	KindSource:      "source",
	KindMacro:       "macro",
	KindExposure:    "exposure",
	KindMetric:      "metric",
	KindGroup:       "group",
}

var keyKinds = func() map[string]NodeKind {
	m := make(map[string]NodeKind, len(kindKeys))
	for k, v := range kindKeys {
		m[v] = k
	}
	return m
}()

// Key returns the canonical lowercase key used in grammar matching.
func (k NodeKind) Key() string {
	return kindKeys[k]
}

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	return k.Key()
}

// NodeKindFromKey resolves a canonical key (e.g. "sql operation") to its
// NodeKind. The second return value is false for unknown keys.
func NodeKindFromKey(key string) (NodeKind, bool) {
	k, ok := keyKinds[strings.ToLower(key)]
	return k, ok
}

// AllNodeKinds lists every resource kind, in declaration order.
func AllNodeKinds() []NodeKind {
	return []NodeKind{
		KindModel, KindAnalysis, KindTest, KindSnapshot, KindOperation,
		KindSeed, KindRpc, KindSqlOperation, KindDoc, KindSource, KindMacro,
		KindExposure, KindMetric, KindGroup,
	}
}

// Access is the declared visibility of a Model node.
type Access int

const (
	AccessPrivate Access = iota
	AccessProtected
	AccessPublic
)

// Payload carries the kind-specific fields of a Node. Doc and Macro nodes
// have no Fqn; most kinds carry RawCode; only Model carries Access and
// Contract; only Macro carries MacroSql; only Doc carries BlockContents.
type Payload struct {
	Fqn          []string
	RawCode      string
	Access       Access
	BlockContents string
	MacroSql     string

	// Content-comparison fields used by same_content (spec.md §4.7).
	PersistedDescription string
	Database              string
	Schema                 string
	Alias                  string
	Contract               string

	// Exposure-specific content fields.
	ExposureType string
	Owner        string
	Maturity     string
	URL          string
	Description  string
	Label        string
}

// HasFqn reports whether this kind carries a fqn. Doc and Macro do not.
func (k NodeKind) HasFqn() bool {
	return k != KindDoc && k != KindMacro
}

// Node is an immutable record describing one resource in the graph.
type Node struct {
	UniqueId          UniqueId
	Name              string
	PackageName       string
	Path              string
	OriginalFilePath  string
	DependsOn         map[UniqueId]struct{}
	Tags              map[string]struct{}
	Config            map[string]string
	Kind              NodeKind
	Payload           Payload
}

// NewNode constructs a Node, normalizing tags to lowercase per invariant I5.
func NewNode(id UniqueId, name, pkg, path, origPath string, dependsOn []UniqueId, tags []string, config map[string]string, kind NodeKind, payload Payload) Node {
	deps := make(map[UniqueId]struct{}, len(dependsOn))
	for _, d := range dependsOn {
		deps[d] = struct{}{}
	}
	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = struct{}{}
	}
	cfg := make(map[string]string, len(config))
	for k, v := range config {
		cfg[k] = v
	}
	return Node{
		UniqueId:         id,
		Name:             name,
		PackageName:      pkg,
		Path:             path,
		OriginalFilePath: origPath,
		DependsOn:        deps,
		Tags:             tagSet,
		Config:           cfg,
		Kind:             kind,
		Payload:          payload,
	}
}

// Fqn returns the node's fqn segments, or nil if its kind carries none.
func (n Node) Fqn() []string {
	if !n.Kind.HasFqn() {
		return nil
	}
	return n.Payload.Fqn
}

// HasTag reports whether tag (already expected lowercase) is present.
func (n Node) HasTag(tag string) bool {
	_, ok := n.Tags[strings.ToLower(tag)]
	return ok
}
