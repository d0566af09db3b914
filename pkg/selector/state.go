package selector

import "sync"

// PreviousState is an immutable snapshot of a prior graph plus a
// write-once cache of macro ids whose macro_sql changed relative to the
// current graph (spec.md §3, §4.6). The cache is the only interior
// mutability in the package; it is keyed to a single PreviousState value
// and computed at most once (spec.md §5 "Shared resource policy"), the
// same first-writer-wins guarantee the teacher's DependencyGraph gives its
// memoized topological sort (dependency_graph.go's `sorted` field) —
// generalized here from sync.Mutex-guarded eager recomputation to a
// sync.Once-guarded lazy one, since the modified-macros set is only ever
// needed by a `state:modified.macros` criterion.
type PreviousState struct {
	Graph *ParsedGraph

	once           sync.Once
	modifiedMacros idSet
}

// NewPreviousState wraps a previously-built graph for use as the
// comparison target of the state: method family.
func NewPreviousState(previous *ParsedGraph) *PreviousState {
	return &PreviousState{Graph: previous}
}

// ModifiedMacros returns the (cached) set of macro ids whose macro_sql
// differs between ps.Graph and current, including macros present in only
// one of the two graphs (spec.md §4.6).
func (ps *PreviousState) ModifiedMacros(current *ParsedGraph) idSet {
	ps.once.Do(func() {
		ps.modifiedMacros = computeModifiedMacros(ps.Graph, current)
	})
	return ps.modifiedMacros
}

func computeModifiedMacros(old, current *ParsedGraph) idSet {
	out := idSet{}
	for id := range current.macros {
		if _, ok := old.macros[id]; !ok {
			out.add(id)
		}
	}
	for id := range old.macros {
		if _, ok := current.macros[id]; !ok {
			out.add(id)
		}
	}
	for id := range current.macros {
		if _, ok := old.macros[id]; ok {
			oldNode, _ := old.Node(id)
			newNode, _ := current.Node(id)
			if oldNode.Payload.MacroSql != newNode.Payload.MacroSql {
				out.add(id)
			}
		}
	}
	return out
}

// dependsOnModifiedMacro performs the DFS described in spec.md §4.6: does
// id transitively depend (through depends_on, across arbitrary resource
// kinds — a model may depend on a macro that itself depends on another
// macro) on any id in modifiedMacros. Short-circuits on first hit; visited
// guards against revisiting a node in cyclic or diamond-shaped dependency
// chains.
func dependsOnModifiedMacro(g *ParsedGraph, id UniqueId, modifiedMacros idSet, visited idSet) bool {
	if visited.has(id) {
		return false
	}
	visited.add(id)

	n, ok := g.Node(id)
	if !ok {
		return false
	}
	for dep := range n.DependsOn {
		if modifiedMacros.has(dep) {
			return true
		}
		if dependsOnModifiedMacro(g, dep, modifiedMacros, visited) {
			return true
		}
	}
	return false
}

// stateMethod implements the state: selection method (C6).
type stateMethod struct{}

func (stateMethod) Name() MethodName { return MethodState }

func (stateMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	if ctx.Previous == nil {
		return nil, RequiresPreviousStateError{Msg: "state: selector used with no previous state configured"}
	}

	switch value {
	case "new":
		return ctx.scan(func(n Node) bool {
			return !ctx.Previous.Graph.HasNode(n.UniqueId)
		}), nil

	case "modified.macros":
		modified := ctx.Previous.ModifiedMacros(ctx.Graph)
		out := idSet{}
		for id := range ctx.Included {
			if dependsOnModifiedMacro(ctx.Graph, id, modified, idSet{}) {
				out.add(id)
			}
		}
		return out, nil

	case "modified.body":
		return ctx.Previous.modifiedByAspects(ctx.Graph, ctx.Included, []contentAspect{aspectBody}), nil
	case "modified.configs":
		return ctx.Previous.modifiedByAspects(ctx.Graph, ctx.Included, []contentAspect{aspectConfig}), nil
	case "modified.persisted_descriptions":
		return ctx.Previous.modifiedByAspects(ctx.Graph, ctx.Included, []contentAspect{aspectPersistedDescription}), nil
	case "modified.relation":
		return ctx.Previous.modifiedByAspects(ctx.Graph, ctx.Included, []contentAspect{aspectDatabase}), nil
	case "modified.contract":
		return ctx.Previous.modifiedByAspects(ctx.Graph, ctx.Included, []contentAspect{aspectContract}), nil
	case "modified":
		return ctx.Previous.modifiedByAspects(ctx.Graph, ctx.Included, []contentAspect{
			aspectBody, aspectConfig, aspectPersistedDescription, aspectDatabase, aspectContract,
		}), nil
	}

	return nil, InvalidSelectorError{Msg: "state: unknown value " + value}
}

// modifiedByAspects returns the ids (restricted to included) present in
// both graphs whose node differs under at least one of the requested
// aspects (or whose kind itself changed).
func (ps *PreviousState) modifiedByAspects(current *ParsedGraph, included idSet, aspects []contentAspect) idSet {
	out := idSet{}
	for id := range included {
		newNode, ok := current.Node(id)
		if !ok {
			continue
		}
		oldNode, ok := ps.Graph.Node(id)
		if !ok {
			continue // absent previously: "new", not "modified"
		}
		if oldNode.Kind != newNode.Kind {
			out.add(id)
			continue
		}
		for _, aspect := range aspects {
			if !aspectApplicable(newNode.Kind, aspect) {
				continue
			}
			if !aspectEqual(oldNode, newNode, aspect) {
				out.add(id)
				break
			}
		}
	}
	return out
}
