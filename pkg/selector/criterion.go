package selector

import (
	"regexp"
	"strconv"
	"strings"
)

// IndirectSelection is the policy applied to a Test node whose parents
// overlap a criterion's expanded set (spec.md §4.4).
type IndirectSelection int

const (
	IndirectEager IndirectSelection = iota // default
	IndirectCautious
	IndirectBuildable
	IndirectEmpty
)

var indirectSelectionKeys = map[string]IndirectSelection{
	"eager":     IndirectEager,
	"cautious":  IndirectCautious,
	"buildable": IndirectBuildable,
	"empty":     IndirectEmpty,
}

// ParseIndirectSelection resolves a mode key, used by both the YAML-map
// constructor and callers configuring a default mode.
func ParseIndirectSelection(key string) (IndirectSelection, bool) {
	m, ok := indirectSelectionKeys[strings.ToLower(key)]
	return m, ok
}

// singleSpecPattern implements spec.md §4.2's anchored single-spec grammar:
//
//	(@)?                      childrens_parents
//	(  (\d*) \+ )?            parents (optional depth)
//	(  ([\w.]+) :  )?         method[.arg[.arg…]]:
//	(.*?)                     value (non-greedy)
//	(  \+ (\d*) )?            children (optional depth)
//
// This engine has no named captures, so presence of an optional group
// cannot be read off an empty submatch string alone (empty means either
// "matched zero characters" or "did not participate"). Per spec.md §4.2's
// regex note, groups are numbered explicitly here and presence is read
// from FindStringSubmatchIndex, not FindStringSubmatch:
//
//	1: "@" literal             5: value
//	2: parents depth digits    6: children "+" literal
//	3: parents "+" literal     7: children depth digits
//	4: method token (sans ":")
var singleSpecPattern = regexp.MustCompile(
	`^(@)?(?:(\d*)(\+))?(?:([\w.]+):)?(.*?)(?:(\+)(\d*))?$`,
)

// Criterion is a parsed single spec (a SelectionGroup leaf).
type Criterion struct {
	ChildrensParents bool
	Parents          bool
	ParentsDepth     *Depth
	Method           MethodName
	MethodArgs       []string
	Value            string
	Children         bool
	ChildrenDepth    *Depth

	// IndirectSelection defaults to the caller-supplied global mode; the
	// YAML-map constructor (group.go) may override it per criterion.
	IndirectSelection IndirectSelection
	Raw               string
}

// ParseCriterion parses one raw single spec per spec.md §4.2.
func ParseCriterion(raw string) (Criterion, error) {
	idx := singleSpecPattern.FindStringSubmatchIndex(raw)
	if idx == nil {
		return Criterion{}, FailedRegexMatchError{Raw: raw}
	}
	group := func(g int) (string, bool) {
		lo, hi := idx[2*g], idx[2*g+1]
		if lo < 0 {
			return "", false
		}
		return raw[lo:hi], true
	}

	_, childrensParents := group(1)
	parentsDigits, hasParents := group(2)
	_, parentsPlusPresent := group(3)
	hasParents = hasParents || parentsPlusPresent
	methodToken, hasMethod := group(4)
	value, _ := group(5)
	_, hasChildren := group(6)
	childrenDigits, _ := group(7)

	if childrensParents && hasChildren {
		return Criterion{}, IncompatiblePrefixAndSuffixError{Raw: raw}
	}

	parentsDepth, err := parseDepthGroup(parentsDigits, hasParents)
	if err != nil {
		return Criterion{}, ParentsDepthParseIntError{Raw: parentsDigits}
	}
	childrenDepth, err := parseDepthGroup(childrenDigits, hasChildren)
	if err != nil {
		return Criterion{}, ChildrensDepthParseIntError{Raw: childrenDigits}
	}

	method, args, err := resolveMethod(methodToken, hasMethod, value)
	if err != nil {
		return Criterion{}, err
	}

	return Criterion{
		ChildrensParents: childrensParents,
		Parents:          hasParents,
		ParentsDepth:     parentsDepth,
		Method:           method,
		MethodArgs:       args,
		Value:            value,
		Children:         hasChildren,
		ChildrenDepth:    childrenDepth,
		Raw:              raw,
	}, nil
}

// parseDepthGroup parses an optional depth-digits group. present is false
// when the enclosing modifier ("+") was absent entirely, in which case
// depth is meaningless and nil is returned without error. When present, an
// empty digit string means unbounded depth (spec.md §4.2: "empty depth
// groups yield unbounded depth").
func parseDepthGroup(digits string, present bool) (*Depth, error) {
	if !present || digits == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return nil, errBadDepth
	}
	return BoundedDepth(n), nil
}

type depthParseError struct{}

func (depthParseError) Error() string { return "bad depth" }

var errBadDepth = depthParseError{}

// parseNonNegativeInt is shared by the YAML-map constructor (group.go),
// which validates depth tokens the same way the regex grammar does but
// without a surrounding submatch-presence flag.
func parseNonNegativeInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errBadDepth
	}
	return n, nil
}

// resolveMethod splits the method[.arg...] token on "." and resolves the
// head to a known MethodName, or performs default-method inference
// (spec.md §4.2) when no method token was present at all.
func resolveMethod(methodToken string, hasMethod bool, value string) (MethodName, []string, error) {
	if !hasMethod {
		return inferDefaultMethod(value), nil, nil
	}
	segs := strings.Split(methodToken, ".")
	head := segs[0]
	if head == "" {
		return "", nil, MatchedEmptyMethodError{}
	}
	if !IsKnownMethodName(head) {
		return "", nil, InvalidMethodError{Name: head}
	}
	return MethodName(head), segs[1:], nil
}

var sourceFileExtensions = []string{".sql", ".py", ".csv"}

// inferDefaultMethod implements spec.md §4.2's default-method inference: a
// value containing a path separator is a Path; else a value ending in a
// known source extension is a File; else it's an Fqn.
func inferDefaultMethod(value string) MethodName {
	if strings.ContainsAny(value, "/\\") {
		return MethodPath
	}
	lower := strings.ToLower(value)
	for _, ext := range sourceFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return MethodFile
		}
	}
	return MethodFqn
}
