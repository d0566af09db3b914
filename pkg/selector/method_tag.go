package selector

import "strings"

type tagMethod struct{}

func (tagMethod) Name() MethodName { return MethodTag }

func (tagMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	target := strings.ToLower(value)
	return ctx.scan(func(n Node) bool {
		return n.HasTag(target)
	}), nil
}

type groupMethod struct{}

func (groupMethod) Name() MethodName { return MethodGroup }

func (groupMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	return ctx.scan(func(n Node) bool {
		return n.Config["group"] == value
	}), nil
}
