package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayneeseguin/nodeselect/pkg/selector"
)

// graphDocument is the on-disk shape of the graph the CLI loads: a flat
// list of nodes plus their depends_on, with edges (the parent adjacency
// the embedder would otherwise compute from a manifest) derived directly
// from each node's DependsOn. This is deliberately the simplest possible
// embedder contract — spec.md's Non-goals keep manifest parsing and
// run-results ingestion out of pkg/selector, so the CLI only needs a
// format simple enough to hand-author in a test fixture.
type graphDocument struct {
	Nodes []graphNode `yaml:"nodes"`
}

type graphNode struct {
	UniqueId         string            `yaml:"unique_id"`
	Name             string            `yaml:"name"`
	PackageName      string            `yaml:"package_name"`
	Path             string            `yaml:"path"`
	OriginalFilePath string            `yaml:"original_file_path"`
	DependsOn        []string          `yaml:"depends_on"`
	Tags             []string          `yaml:"tags"`
	Config           map[string]string `yaml:"config"`
	Kind             string            `yaml:"kind"`
}

func loadGraphFile(path string) ([]selector.RawNode, []selector.RawEdge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var doc graphDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}

	nodes := make([]selector.RawNode, 0, len(doc.Nodes))
	edges := make([]selector.RawEdge, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodes = append(nodes, selector.RawNode{
			UniqueId:         n.UniqueId,
			Name:             n.Name,
			PackageName:      n.PackageName,
			Path:             n.Path,
			OriginalFilePath: n.OriginalFilePath,
			DependsOn:        n.DependsOn,
			Tags:             n.Tags,
			Config:           n.Config,
			Kind:             n.Kind,
		})
		edges = append(edges, selector.RawEdge{UniqueId: n.UniqueId, Parents: n.DependsOn})
	}
	return nodes, edges, nil
}

// buildWithPreviousState wires a previous-state graph file, when present,
// into a fresh NodeSelector over the current nodes/edges. It goes through
// NodeSelector.Update rather than constructing a PreviousState directly,
// since ParsedGraph has no public constructor outside the selector package
// itself — Update is the documented way an embedder chains one snapshot
// into the next (spec.md §4.8).
func buildWithPreviousState(previousPath string, nodes []selector.RawNode, edges []selector.RawEdge, defaultIndirect selector.IndirectSelection) (*selector.NodeSelector, error) {
	if previousPath == "" {
		return selector.BuildWithDefaultIndirect(nodes, edges, nil, defaultIndirect)
	}
	if _, err := os.Stat(previousPath); err != nil {
		if os.IsNotExist(err) {
			return selector.BuildWithDefaultIndirect(nodes, edges, nil, defaultIndirect)
		}
		return nil, err
	}

	prevNodes, prevEdges, err := loadGraphFile(previousPath)
	if err != nil {
		return nil, err
	}
	prev, err := selector.BuildWithDefaultIndirect(prevNodes, prevEdges, nil, defaultIndirect)
	if err != nil {
		return nil, err
	}
	return prev.Update(nodes, edges)
}
