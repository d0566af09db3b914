package selector

// testNameMethod restricts to Test nodes whose name matches value
// (spec.md §4.3: "restrict to Test nodes").
type testNameMethod struct{}

func (testNameMethod) Name() MethodName { return MethodTestName }

func (testNameMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	return ctx.scan(func(n Node) bool {
		return n.Kind == KindTest && globMatch(value, n.Name)
	}), nil
}

// testTypeMethod restricts to Test nodes tagged with a test_type config
// entry matching value ("generic" or "singular" in the host vocabulary).
type testTypeMethod struct{}

func (testTypeMethod) Name() MethodName { return MethodTestType }

func (testTypeMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	return ctx.scan(func(n Node) bool {
		return n.Kind == KindTest && n.Config["test_type"] == value
	}), nil
}
