package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/wayneeseguin/nodeselect/pkg/selector"
)

// explainGroup prints the parsed SelectionGroup tree for --explain
// (SPEC_FULL.md §11.1), one line per node with its modifiers and the
// criterion or set operator it represents. This is diagnostic output only
// and never affects the selection itself.
func explainGroup(w io.Writer, g *selector.SelectionGroup, depth int) {
	if g == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	if g.IsLeaf {
		fmt.Fprintf(w, "%s- criterion %q (indirect=%s)\n", indent, g.Raw, indirectName(g.IndirectSelection))
		return
	}

	fmt.Fprintf(w, "%s- %s (indirect=%s)\n", indent, setOpName(g.Op), indirectName(g.IndirectSelection))
	for _, comp := range g.Components {
		explainGroup(w, comp, depth+1)
	}
}

func setOpName(op selector.SetOpKind) string {
	switch op {
	case selector.SetOpUnion:
		return "union"
	case selector.SetOpIntersection:
		return "intersection"
	case selector.SetOpDifference:
		return "difference"
	}
	return "unknown"
}

func indirectName(mode selector.IndirectSelection) string {
	switch mode {
	case selector.IndirectEager:
		return "eager"
	case selector.IndirectCautious:
		return "cautious"
	case selector.IndirectBuildable:
		return "buildable"
	case selector.IndirectEmpty:
		return "empty"
	}
	return "unknown"
}
