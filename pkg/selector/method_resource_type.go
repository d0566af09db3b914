package selector

type resourceTypeMethod struct{}

func (resourceTypeMethod) Name() MethodName { return MethodResourceType }

func (resourceTypeMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	kind, ok := NodeKindFromKey(value)
	if !ok {
		return nil, NoMatchingResourceTypeError{Value: value}
	}
	return ctx.scan(func(n Node) bool {
		return n.Kind == kind
	}), nil
}

// configMethod matches config.KEY: value, i.e. config[KEY] == value after
// dotted-arg resolution (spec.md §4.3). The dotted tail ("KEY") arrives as
// method_arguments from the grammar.
type configMethod struct{}

func (configMethod) Name() MethodName { return MethodConfig }

func (configMethod) Select(ctx MethodContext, value string, args []string) (idSet, error) {
	if len(args) == 0 {
		return nil, InvalidSelectorError{Msg: "config: requires a dotted config key, e.g. config.materialized"}
	}
	key := args[0]
	return ctx.scan(func(n Node) bool {
		v, ok := n.Config[key]
		return ok && v == value
	}), nil
}
