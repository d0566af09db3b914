package selector

import (
	"path"
	"strings"
)

type pathMethod struct{}

func (pathMethod) Name() MethodName { return MethodPath }

func (pathMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	return ctx.scan(func(n Node) bool {
		return globMatch(value, n.OriginalFilePath)
	}), nil
}

// fileMethod matches the basename of original_file_path, lower-cased on
// both sides. spec.md §9 Open Question 1: the source drafts normalize
// unconditionally; this spec preserves that to guarantee OS-stable
// behavior, even though it makes matching case-insensitive on
// case-sensitive filesystems.
type fileMethod struct{}

func (fileMethod) Name() MethodName { return MethodFile }

func (fileMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	pattern := strings.ToLower(value)
	return ctx.scan(func(n Node) bool {
		base := strings.ToLower(path.Base(n.OriginalFilePath))
		return globMatch(pattern, base)
	}), nil
}

type packageMethod struct{}

func (packageMethod) Name() MethodName { return MethodPackage }

func (packageMethod) Select(ctx MethodContext, value string, _ []string) (idSet, error) {
	pattern := strings.ToLower(value)
	return ctx.scan(func(n Node) bool {
		return globMatch(pattern, strings.ToLower(n.PackageName))
	}), nil
}
