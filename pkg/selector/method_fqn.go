package selector

import "strings"

type fqnMethod struct{}

func (fqnMethod) Name() MethodName { return MethodFqn }

func (fqnMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	parts := strings.Split(value, ".")
	return ctx.scan(func(n Node) bool {
		fqn := n.Fqn()
		if fqn == nil {
			return false
		}
		if fqnMatchSegments(fqn, parts) {
			return true
		}
		if len(fqn) > 1 {
			return fqnMatchSegments(fqn[1:], parts)
		}
		return false
	}), nil
}

// fqnMatchSegments compares a node's fqn segments against a dotted
// pattern's segments component-by-component. As soon as a glob component
// is encountered, the remainder of both sides is joined with "." and
// matched as a whole-string glob (spec.md §4.3, §9 "fqn matching with
// wildcards").
func fqnMatchSegments(fqn, parts []string) bool {
	for i, p := range parts {
		if isGlobPattern(p) {
			if i > len(fqn) {
				return false
			}
			remainder := strings.Join(fqn[i:], ".")
			pattern := strings.Join(parts[i:], ".")
			return globMatch(pattern, remainder)
		}
		if i >= len(fqn) || fqn[i] != p {
			return false
		}
	}
	return len(parts) == len(fqn)
}
