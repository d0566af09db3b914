package selector

import "strings"

// exposureMethod scopes to Exposure nodes, Fqn-style matching on value.
type exposureMethod struct{}

func (exposureMethod) Name() MethodName { return MethodExposure }

func (exposureMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	parts := strings.Split(value, ".")
	return ctx.scan(func(n Node) bool {
		return n.Kind == KindExposure && fqnMatchSegments(n.Fqn(), parts)
	}), nil
}

// metricMethod scopes to Metric nodes, Fqn-style matching on value.
type metricMethod struct{}

func (metricMethod) Name() MethodName { return MethodMetric }

func (metricMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	parts := strings.Split(value, ".")
	return ctx.scan(func(n Node) bool {
		return n.Kind == KindMetric && fqnMatchSegments(n.Fqn(), parts)
	}), nil
}
