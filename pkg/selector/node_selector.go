package selector

// ResourceTypeFilterKind distinguishes the three shapes a resource-type
// filter can take (spec.md §4.8).
type ResourceTypeFilterKind int

const (
	FilterAll ResourceTypeFilterKind = iota
	FilterNone
	FilterSome
)

// ResourceTypeFilter is the tagged union All | None | Some(set<NodeKind>).
type ResourceTypeFilter struct {
	kind  ResourceTypeFilterKind
	kinds map[NodeKind]struct{}
}

// AllResourceTypes matches every kind.
func AllResourceTypes() ResourceTypeFilter { return ResourceTypeFilter{kind: FilterAll} }

// NoResourceTypes matches nothing.
func NoResourceTypes() ResourceTypeFilter { return ResourceTypeFilter{kind: FilterNone} }

// SomeResourceTypes resolves the given kind keys to a membership filter;
// an unresolved key is a query-time NoMatchingResourceType.
func SomeResourceTypes(keys ...string) (ResourceTypeFilter, error) {
	kinds := make(map[NodeKind]struct{}, len(keys))
	for _, key := range keys {
		k, ok := NodeKindFromKey(key)
		if !ok {
			return ResourceTypeFilter{}, NoMatchingResourceTypeError{Value: key}
		}
		kinds[k] = struct{}{}
	}
	return ResourceTypeFilter{kind: FilterSome, kinds: kinds}, nil
}

// Matches reports whether k passes the filter.
func (f ResourceTypeFilter) Matches(k NodeKind) bool {
	switch f.kind {
	case FilterAll:
		return true
	case FilterNone:
		return false
	case FilterSome:
		_, ok := f.kinds[k]
		return ok
	}
	return false
}

// NodeSelector is the top-level entry point (C7): it parses a selection
// expression, recurses over the resulting group tree, applies
// indirect-selection expansion, and filters by resource type.
type NodeSelector struct {
	graph           *ParsedGraph
	previous        *PreviousState
	defaultIndirect IndirectSelection
}

// Build validates nodes/edges and constructs a NodeSelector. previous may
// be nil when no prior snapshot is available (state: criteria will then
// fail with RequiresPreviousState).
func Build(nodes []RawNode, edges []RawEdge, previous *PreviousState) (*NodeSelector, error) {
	return BuildWithDefaultIndirect(nodes, edges, previous, IndirectEager)
}

// BuildWithDefaultIndirect is Build with an explicit default indirect-
// selection mode, the mode a plain (non-YAML-map) criterion inherits.
func BuildWithDefaultIndirect(nodes []RawNode, edges []RawEdge, previous *PreviousState, defaultIndirect IndirectSelection) (*NodeSelector, error) {
	decodedNodes := make([]Node, 0, len(nodes))
	for _, rn := range nodes {
		n, err := decodeNode(rn)
		if err != nil {
			return nil, err
		}
		decodedNodes = append(decodedNodes, n)
	}
	decodedEdges := make([]Edge, 0, len(edges))
	for _, re := range edges {
		decodedEdges = append(decodedEdges, decodeEdge(re))
	}

	g, err := NewParsedGraph(decodedNodes, decodedEdges)
	if err != nil {
		return nil, err
	}

	return &NodeSelector{graph: g, previous: previous, defaultIndirect: defaultIndirect}, nil
}

// Select parses expr and returns the filtered selection over every node in
// the graph; equivalent to SelectType(expr, AllResourceTypes()).
func (ns *NodeSelector) Select(expr string) ([]UniqueId, error) {
	return ns.SelectType(expr, AllResourceTypes())
}

// SelectType parses expr and returns the selection restricted to filter.
func (ns *NodeSelector) SelectType(expr string, filter ResourceTypeFilter) ([]UniqueId, error) {
	return ns.SelectIncluded(ns.allIds(), expr, filter)
}

// SelectIncluded is SelectType additionally restricted to membership in
// allowed.
func (ns *NodeSelector) SelectIncluded(allowed idSet, expr string, filter ResourceTypeFilter) ([]UniqueId, error) {
	group, err := ParseSelectionGroup(expr, ns.defaultIndirect)
	if err != nil {
		return nil, err
	}
	return ns.SelectGroup(group, allowed, filter)
}

// SelectGroupType is SelectGroup over every node in the graph, the
// counterpart to SelectType for callers holding a pre-built SelectionGroup
// (e.g. from BuildSelectionExpression) rather than a raw expression string.
func (ns *NodeSelector) SelectGroupType(group *SelectionGroup, filter ResourceTypeFilter) ([]UniqueId, error) {
	return ns.SelectGroup(group, ns.allIds(), filter)
}

// SelectGroup evaluates an already-built SelectionGroup tree, the entry
// point BuildSelectionExpression's callers use (a --select/--exclude pair
// composes into a SetOpDifference with no single-string representation, so
// it cannot round-trip through Select/SelectType's expr-string parsing).
func (ns *NodeSelector) SelectGroup(group *SelectionGroup, allowed idSet, filter ResourceTypeFilter) ([]UniqueId, error) {
	direct, indirect, err := ns.evalGroup(group, allowed)
	if err != nil {
		return nil, err
	}

	if group.ExpectExists && len(direct) == 0 {
		return nil, NoNodesForSelectionCriteriaError{Raw: group.Raw}
	}

	final, err := ns.incorporate(direct, indirect, group.IndirectSelection)
	if err != nil {
		return nil, err
	}

	out := make([]UniqueId, 0, len(final))
	for id := range final {
		n, ok := ns.graph.Node(id)
		if !ok {
			continue
		}
		if !allowed.has(id) {
			continue
		}
		if !filter.Matches(n.Kind) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

// Update returns a new NodeSelector over nodes/edges whose previous_state
// is the current selector's graph (spec.md §4.8).
func (ns *NodeSelector) Update(nodes []RawNode, edges []RawEdge) (*NodeSelector, error) {
	return BuildWithDefaultIndirect(nodes, edges, NewPreviousState(ns.graph), ns.defaultIndirect)
}

func (ns *NodeSelector) allIds() idSet {
	out := idSet{}
	for _, id := range ns.graph.AllIds() {
		out.add(id)
	}
	return out
}

// evalGroup recurses over the group tree. Direct and indirect candidate
// sets flow up in parallel, combined at every SetOp node with the same
// structural operator (spec.md §4.4, §4.5).
func (ns *NodeSelector) evalGroup(g *SelectionGroup, allowed idSet) (direct, indirect idSet, err error) {
	if g.IsLeaf {
		return ns.evalCriterion(g.Criterion, allowed)
	}

	directs := make([]idSet, len(g.Components))
	indirects := make([]idSet, len(g.Components))
	for i, comp := range g.Components {
		d, ind, err := ns.evalGroup(comp, allowed)
		if err != nil {
			return nil, nil, err
		}
		directs[i] = d
		indirects[i] = ind
	}
	return applySetOp(g.Op, directs), applySetOp(g.Op, indirects), nil
}

// evalCriterion dispatches to the criterion's Method, applies modifier
// expansion (@ / parents / children), and runs test-expansion over the
// expanded set (spec.md §4.3, §4.4).
func (ns *NodeSelector) evalCriterion(c Criterion, allowed idSet) (direct, indirect idSet, err error) {
	method, ok := LookupMethod(c.Method)
	if !ok {
		return nil, nil, InvalidMethodError{Name: string(c.Method)}
	}

	ctx := MethodContext{Graph: ns.graph, Included: allowed, Previous: ns.previous}
	matched, err := method.Select(ctx, c.Value, c.MethodArgs)
	if err != nil {
		return nil, nil, err
	}

	var expanded idSet
	switch {
	case c.ChildrensParents:
		expanded, err = ns.graph.SelectChildrensParents(matched)
		if err != nil {
			return nil, nil, err
		}
	default:
		expanded = matched.clone()
		if c.Parents {
			anc, err := ns.graph.Ancestors(matched, c.ParentsDepth)
			if err != nil {
				return nil, nil, err
			}
			expanded.addAll(anc)
		}
		if c.Children {
			desc, err := ns.graph.Descendants(matched, c.ChildrenDepth)
			if err != nil {
				return nil, nil, err
			}
			expanded.addAll(desc)
		}
	}

	testDirect, testIndirect := ns.expandTests(expanded, c.IndirectSelection)

	out := expanded.clone()
	out.addAll(testDirect)
	return out, testIndirect, nil
}

// expandTests implements spec.md §4.4's four indirect-selection modes over
// every Test node whose parents overlap expanded.
func (ns *NodeSelector) expandTests(expanded idSet, mode IndirectSelection) (direct, indirectCandidates idSet) {
	direct = idSet{}
	indirectCandidates = idSet{}
	if mode == IndirectEmpty {
		return direct, indirectCandidates
	}

	var envelope idSet
	if mode == IndirectBuildable {
		envelope, _ = ns.graph.AndSelectParents(expanded, Unbounded())
	}

	for _, id := range ns.graph.AllIds() {
		n, ok := ns.graph.Node(id)
		if !ok || n.Kind != KindTest {
			continue
		}
		parents := ns.graph.Parents(id)
		if len(parents) == 0 {
			continue
		}

		anyIn, allIn := false, true
		for p := range parents {
			if expanded.has(p) {
				anyIn = true
			} else {
				allIn = false
			}
		}
		if !anyIn {
			continue
		}

		switch mode {
		case IndirectEager:
			direct.add(id)
		case IndirectCautious:
			if allIn {
				direct.add(id)
			} else {
				indirectCandidates.add(id)
			}
		case IndirectBuildable:
			if allIn {
				direct.add(id)
			} else if isSubsetOfIds(parents, envelope) {
				direct.add(id)
			} else {
				indirectCandidates.add(id)
			}
		}
	}
	return direct, indirectCandidates
}

// incorporate applies spec.md §4.4's group-level incorporation rule to the
// indirect candidates accumulated across the whole group tree.
func (ns *NodeSelector) incorporate(direct, indirect idSet, mode IndirectSelection) (idSet, error) {
	final := direct.clone()
	switch mode {
	case IndirectCautious:
		for id := range indirect {
			n, ok := ns.graph.Node(id)
			if !ok {
				continue
			}
			if isSubsetOfIds(n.DependsOn, direct) {
				final.add(id)
			}
		}
	case IndirectBuildable:
		envelope, err := ns.graph.AndSelectParents(direct, Unbounded())
		if err != nil {
			return nil, err
		}
		for id := range indirect {
			n, ok := ns.graph.Node(id)
			if !ok {
				continue
			}
			if isSubsetOfIds(n.DependsOn, envelope) {
				final.add(id)
			}
		}
	}
	return final, nil
}

func isSubsetOfIds(a map[UniqueId]struct{}, b idSet) bool {
	for id := range a {
		if !b.has(id) {
			return false
		}
	}
	return true
}
