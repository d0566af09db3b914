package selector

import "strings"

// SelectionGroup is a node in the parsed expression tree: either a leaf
// wrapping a Criterion, or an interior SetOp node with ordered components
// (spec.md §4.2). Both shapes carry an indirect_selection mode, an
// expect_exists flag, and the original raw string for diagnostics.
type SelectionGroup struct {
	IsLeaf     bool
	Criterion  Criterion
	Op         SetOpKind
	Components []*SelectionGroup

	IndirectSelection IndirectSelection
	ExpectExists      bool
	Raw               string
}

func leafGroup(c Criterion, raw string, indirect IndirectSelection) *SelectionGroup {
	return &SelectionGroup{IsLeaf: true, Criterion: c, IndirectSelection: indirect, Raw: raw}
}

func setOpGroup(op SetOpKind, components []*SelectionGroup, raw string, indirect IndirectSelection) *SelectionGroup {
	return &SelectionGroup{Op: op, Components: components, IndirectSelection: indirect, Raw: raw}
}

// ParseSelectionGroup parses one `--select`/`--exclude` argument string into
// a SelectionGroup tree: space separates union terms, comma separates
// intersection terms within a union term (spec.md §4.2).
func ParseSelectionGroup(raw string, defaultIndirect IndirectSelection) (*SelectionGroup, error) {
	unionTerms := strings.Fields(raw)
	if len(unionTerms) == 0 {
		return nil, FailedRegexMatchError{Raw: raw}
	}

	unionComponents := make([]*SelectionGroup, 0, len(unionTerms))
	for _, term := range unionTerms {
		commaTerms := strings.Split(term, ",")
		if len(commaTerms) == 1 {
			leaf, err := parseLeaf(commaTerms[0], defaultIndirect)
			if err != nil {
				return nil, err
			}
			unionComponents = append(unionComponents, leaf)
			continue
		}

		interComponents := make([]*SelectionGroup, 0, len(commaTerms))
		for _, ct := range commaTerms {
			leaf, err := parseLeaf(ct, defaultIndirect)
			if err != nil {
				return nil, err
			}
			interComponents = append(interComponents, leaf)
		}
		unionComponents = append(unionComponents, setOpGroup(SetOpIntersection, interComponents, term, defaultIndirect))
	}

	if len(unionComponents) == 1 {
		return unionComponents[0], nil
	}
	return setOpGroup(SetOpUnion, unionComponents, raw, defaultIndirect), nil
}

func parseLeaf(raw string, indirect IndirectSelection) (*SelectionGroup, error) {
	c, err := ParseCriterion(raw)
	if err != nil {
		return nil, err
	}
	c.IndirectSelection = indirect
	return leafGroup(c, raw, indirect), nil
}

// BuildSelectionExpression composes the `--select`/`--exclude` arguments
// per spec.md §4.2: selects union together, excludes union together, and
// the whole thing is a difference at the outermost level when excludes are
// present.
func BuildSelectionExpression(selects, excludes []string, defaultIndirect IndirectSelection) (*SelectionGroup, error) {
	selectGroup, err := unionArgs(selects, defaultIndirect)
	if err != nil {
		return nil, err
	}
	if len(excludes) == 0 {
		return selectGroup, nil
	}
	excludeGroup, err := unionArgs(excludes, defaultIndirect)
	if err != nil {
		return nil, err
	}
	return setOpGroup(SetOpDifference, []*SelectionGroup{selectGroup, excludeGroup}, "", defaultIndirect), nil
}

func unionArgs(args []string, defaultIndirect IndirectSelection) (*SelectionGroup, error) {
	components := make([]*SelectionGroup, 0, len(args))
	for _, a := range args {
		g, err := ParseSelectionGroup(a, defaultIndirect)
		if err != nil {
			return nil, err
		}
		components = append(components, g)
	}
	if len(components) == 1 {
		return components[0], nil
	}
	return setOpGroup(SetOpUnion, components, strings.Join(args, " "), defaultIndirect), nil
}

// YamlCriterionInput is the decoded shape of one YAML-map criterion
// (spec.md §4.2, "YAML-map form"). String fields left empty are treated as
// absent; boolean fields must be exactly "true"/"false" when non-empty.
type YamlCriterionInput struct {
	Value             string
	Method            string
	MethodArgs        []string
	Parents           string
	ParentsDepth      string
	Children          string
	ChildrenDepth     string
	ChildrensParents  string
	IndirectSelection string
}

// NewCriterionFromYaml constructs an equivalent Criterion from a decoded
// YAML-map criterion (spec.md §4.2).
func NewCriterionFromYaml(in YamlCriterionInput, defaultIndirect IndirectSelection) (*SelectionGroup, error) {
	if in.Value == "" {
		return nil, MissingValueError{Raw: in.Value}
	}

	childrensParents, err := parseYamlBool(in.ChildrensParents, "childrens_parents")
	if err != nil {
		return nil, err
	}
	hasParents, err := parseYamlBool(in.Parents, "parents")
	if err != nil {
		return nil, err
	}
	hasChildren, err := parseYamlBool(in.Children, "children")
	if err != nil {
		return nil, err
	}

	if childrensParents && hasChildren {
		return nil, IncompatiblePrefixAndSuffixError{Raw: in.Value}
	}

	parentsDepth, err := parseYamlDepth(in.ParentsDepth, hasParents, true)
	if err != nil {
		return nil, err
	}
	childrenDepth, err := parseYamlDepth(in.ChildrenDepth, hasChildren, false)
	if err != nil {
		return nil, err
	}

	method, args, err := resolveYamlMethod(in.Method, in.MethodArgs, in.Value)
	if err != nil {
		return nil, err
	}

	indirect := defaultIndirect
	if in.IndirectSelection != "" {
		mode, ok := ParseIndirectSelection(in.IndirectSelection)
		if !ok {
			return nil, InvalidIndirectSelectionError{Value: in.IndirectSelection}
		}
		indirect = mode
	}

	c := Criterion{
		ChildrensParents:  childrensParents,
		Parents:           hasParents,
		ParentsDepth:      parentsDepth,
		Method:            method,
		MethodArgs:        args,
		Value:             in.Value,
		Children:          hasChildren,
		ChildrenDepth:     childrenDepth,
		IndirectSelection: indirect,
		Raw:               in.Value,
	}
	return leafGroup(c, in.Value, indirect), nil
}

func parseYamlBool(raw, key string) (bool, error) {
	switch raw {
	case "":
		return false, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, BoolInputError{Key: key}
}

func parseYamlDepth(raw string, present, isParents bool) (*Depth, error) {
	if !present || raw == "" {
		return nil, nil
	}
	n, convErr := parseNonNegativeInt(raw)
	if convErr != nil {
		if isParents {
			return nil, ParentsDepthParseIntError{Raw: raw}
		}
		return nil, ChildrensDepthParseIntError{Raw: raw}
	}
	return BoundedDepth(n), nil
}

func resolveYamlMethod(method string, args []string, value string) (MethodName, []string, error) {
	if method == "" {
		return inferDefaultMethod(value), nil, nil
	}
	if !IsKnownMethodName(method) {
		return "", nil, InvalidMethodError{Name: method}
	}
	return MethodName(method), args, nil
}
