package selector

import "strings"

// sourceMethod scopes to Source nodes and matches using Fqn-style
// segment/glob comparison (spec.md §4.3).
type sourceMethod struct{}

func (sourceMethod) Name() MethodName { return MethodSource }

func (sourceMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	parts := strings.Split(value, ".")
	return ctx.scan(func(n Node) bool {
		return n.Kind == KindSource && fqnMatchSegments(n.Fqn(), parts)
	}), nil
}
