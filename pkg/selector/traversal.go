package selector

// Depth bounds a BFS traversal. A nil *Depth means unbounded; Depth(0)
// means the frontier has zero room to expand, yielding the empty set.
type Depth struct {
	n     int
	bound bool
}

// Unbounded returns a Depth with no limit.
func Unbounded() *Depth { return nil }

// BoundedDepth returns a Depth limited to n hops.
func BoundedDepth(n int) *Depth { return &Depth{n: n, bound: true} }

func (d *Depth) remaining() (int, bool) {
	if d == nil {
		return 0, false
	}
	return d.n, true
}

// bfs walks `adjacency` (children for descendants, parents for ancestors)
// breadth-first from `selected`, excluding the start set itself, bounded by
// maxDepth hops. Each id is enqueued at most once (idempotent visiting).
func (g *ParsedGraph) bfs(selected idSet, maxDepth *Depth, adjacency func(UniqueId) idSet) (idSet, error) {
	for id := range selected {
		if !g.HasNode(id) {
			return nil, NodeNotInGraphError{Id: id}
		}
	}

	limit, bounded := maxDepth.remaining()
	if bounded && limit == 0 {
		return idSet{}, nil
	}

	visited := idSet{}
	frontier := make([]UniqueId, 0, len(selected))
	for id := range selected {
		frontier = append(frontier, id)
	}

	depth := 0
	for len(frontier) > 0 {
		if bounded && depth >= limit {
			break
		}
		next := make([]UniqueId, 0)
		for _, id := range frontier {
			for neighbor := range adjacency(id) {
				if visited.has(neighbor) || selected.has(neighbor) {
					continue
				}
				visited.add(neighbor)
				next = append(next, neighbor)
			}
		}
		frontier = next
		depth++
	}

	return visited, nil
}

// Descendants returns every node reachable from selected by following
// children, excluding selected itself, bounded by maxDepth hops.
func (g *ParsedGraph) Descendants(selected idSet, maxDepth *Depth) (idSet, error) {
	return g.bfs(selected, maxDepth, g.Children)
}

// Ancestors returns every node reachable from selected by following
// parents, excluding selected itself, bounded by maxDepth hops.
func (g *ParsedGraph) Ancestors(selected idSet, maxDepth *Depth) (idSet, error) {
	return g.bfs(selected, maxDepth, g.Parents)
}

// AndSelectParents returns ancestors(selected, d) ∪ selected.
func (g *ParsedGraph) AndSelectParents(selected idSet, d *Depth) (idSet, error) {
	anc, err := g.Ancestors(selected, d)
	if err != nil {
		return nil, err
	}
	out := anc.clone()
	out.addAll(selected)
	return out, nil
}

// SelectChildrensParents implements the `@` operator: all descendants of
// selected, plus all ancestors of (selected ∪ those descendants).
func (g *ParsedGraph) SelectChildrensParents(selected idSet) (idSet, error) {
	desc, err := g.Descendants(selected, Unbounded())
	if err != nil {
		return nil, err
	}
	expanded := desc.clone()
	expanded.addAll(selected)

	anc, err := g.Ancestors(expanded, Unbounded())
	if err != nil {
		return nil, err
	}

	out := idSet{}
	out.addAll(anc)
	out.addAll(desc)
	out.addAll(selected)
	return out, nil
}
