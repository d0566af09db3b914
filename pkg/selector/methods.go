package selector

// MethodName identifies a selection-method strategy (spec.md §4.3, C5).
type MethodName string

const (
	MethodFqn          MethodName = "fqn"
	MethodTag          MethodName = "tag"
	MethodGroup        MethodName = "group"
	MethodPath         MethodName = "path"
	MethodFile         MethodName = "file"
	MethodPackage      MethodName = "package"
	MethodResourceType MethodName = "resource_type"
	MethodConfig       MethodName = "config"
	MethodTestName     MethodName = "test_name"
	MethodTestType     MethodName = "test_type"
	MethodState        MethodName = "state"
	MethodExposure     MethodName = "exposure"
	MethodMetric       MethodName = "metric"
	MethodSource       MethodName = "source"
	MethodResult       MethodName = "result"
	MethodSourceStatus MethodName = "source_status"
	MethodWildcard     MethodName = "wildcard"
)

// MethodContext carries everything a Method needs beyond the raw value and
// dotted arguments: the graph to scan, the candidate subset to restrict
// the scan to, and (for MethodState) the previous snapshot.
type MethodContext struct {
	Graph    *ParsedGraph
	Included idSet
	Previous *PreviousState
}

// Method maps (previous_state, graph, included_ids, value_string) to the
// set of matching ids, per spec.md §4.3. This mirrors the teacher's
// OperatorInfo/OperatorRegistry (pkg/graft/operator_registry.go): a small
// immutable metadata map plus a uniform strategy signature, generalized
// from "evaluate an expression operator" to "match a selection value".
type Method interface {
	Name() MethodName
	Select(ctx MethodContext, value string, args []string) (idSet, error)
}

// methodRegistry holds every known strategy, keyed by name.
var methodRegistry = map[MethodName]Method{}

func registerMethod(m Method) {
	methodRegistry[m.Name()] = m
}

// LookupMethod resolves a MethodName to its Method, if registered.
func LookupMethod(name MethodName) (Method, bool) {
	m, ok := methodRegistry[name]
	return m, ok
}

// IsKnownMethodName reports whether name resolves to a registered method,
// for the parser's explicit `method:` head and the YAML-map `method` field.
func IsKnownMethodName(name string) bool {
	_, ok := methodRegistry[MethodName(name)]
	return ok
}

func init() {
	registerMethod(fqnMethod{})
	registerMethod(tagMethod{})
	registerMethod(groupMethod{})
	registerMethod(pathMethod{})
	registerMethod(fileMethod{})
	registerMethod(packageMethod{})
	registerMethod(resourceTypeMethod{})
	registerMethod(configMethod{})
	registerMethod(testNameMethod{})
	registerMethod(testTypeMethod{})
	registerMethod(stateMethod{})
	registerMethod(exposureMethod{})
	registerMethod(metricMethod{})
	registerMethod(sourceMethod{})
	registerMethod(resultMethod{})
	registerMethod(sourceStatusMethod{})
	registerMethod(wildcardMethod{})
}

// scan iterates ctx.Included, calling match for each node; it is the
// shared inner loop every Method implementation uses.
func (ctx MethodContext) scan(match func(Node) bool) idSet {
	out := idSet{}
	for id := range ctx.Included {
		n, ok := ctx.Graph.Node(id)
		if !ok {
			continue
		}
		if match(n) {
			out.add(id)
		}
	}
	return out
}
