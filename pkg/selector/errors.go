package selector

import "fmt"

// Errors are modeled as one struct type per variant implementing the error
// interface, the way internal/utils/tree's SyntaxError/TypeMismatchError/
// NotFoundError are: callers type-switch on the concrete type rather than
// compare against sentinel values or parse a message string.

// --- SelectorCreateError family (graph construction, spec.md §7) ---

// NoMatchingResourceTypeBuildError is raised when a Node record carries a
// kind string build doesn't recognize.
type NoMatchingResourceTypeBuildError struct {
	Value string
}

func (e NoMatchingResourceTypeBuildError) Error() string {
	return fmt.Sprintf("no matching resource type: %q", e.Value)
}

// MissingFieldError is raised when a required field is absent from an
// input Node or Edge record.
type MissingFieldError struct {
	Name string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Name)
}

// --- SelectionError family (query time, spec.md §7) ---

// NoMatchingResourceTypeError is raised by resource_type: for an unknown
// kind key.
type NoMatchingResourceTypeError struct {
	Value string
}

func (e NoMatchingResourceTypeError) Error() string {
	return fmt.Sprintf("no matching resource type: %q", e.Value)
}

// NodeNotInGraphError is raised when a traversal start id is absent from
// the graph.
type NodeNotInGraphError struct {
	Id UniqueId
}

func (e NodeNotInGraphError) Error() string {
	return fmt.Sprintf("node not in graph: %q", e.Id)
}

// MissingValueError is raised by the YAML-map criterion constructor when
// `value` is absent.
type MissingValueError struct {
	Raw string
}

func (e MissingValueError) Error() string {
	return fmt.Sprintf("missing value in selector: %s", e.Raw)
}

// ParentsDepthParseIntError is raised when a parents_depth token fails to
// parse as a non-negative integer.
type ParentsDepthParseIntError struct {
	Raw string
}

func (e ParentsDepthParseIntError) Error() string {
	return fmt.Sprintf("could not parse parents depth: %q", e.Raw)
}

// ChildrensDepthParseIntError is raised when a children_depth token fails
// to parse as a non-negative integer.
type ChildrensDepthParseIntError struct {
	Raw string
}

func (e ChildrensDepthParseIntError) Error() string {
	return fmt.Sprintf("could not parse children depth: %q", e.Raw)
}

// InvalidMethodError is raised when the method head of `method:value` does
// not resolve to a known MethodName.
type InvalidMethodError struct {
	Name string
}

func (e InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid selector method: %q", e.Name)
}

// IncompatiblePrefixAndSuffixError is raised when a single spec uses both
// the `@` prefix and a trailing `+N` suffix.
type IncompatiblePrefixAndSuffixError struct {
	Raw string
}

func (e IncompatiblePrefixAndSuffixError) Error() string {
	return fmt.Sprintf("cannot combine @ prefix with trailing + in selector: %q", e.Raw)
}

// FailedRegexMatchError is raised when a raw spec does not match the
// single-spec grammar at all.
type FailedRegexMatchError struct {
	Raw string
}

func (e FailedRegexMatchError) Error() string {
	return fmt.Sprintf("failed to parse selector: %q", e.Raw)
}

// MatchedEmptyMethodError is raised when the grammar matches but yields an
// empty method token where one was expected.
type MatchedEmptyMethodError struct{}

func (e MatchedEmptyMethodError) Error() string {
	return "selector matched an empty method"
}

// InvalidIndirectSelectionError is raised when an indirect_selection value
// is not one of the four known mode keys.
type InvalidIndirectSelectionError struct {
	Value string
}

func (e InvalidIndirectSelectionError) Error() string {
	return fmt.Sprintf("invalid indirect_selection mode: %q", e.Value)
}

// BoolInputError is raised when a YAML-map boolean field is not the
// literal string "true" or "false".
type BoolInputError struct {
	Key string
}

func (e BoolInputError) Error() string {
	return fmt.Sprintf("expected boolean input (\"true\" or \"false\") for %s", e.Key)
}

// NoNodesForSelectionCriteriaError is raised when expect_exists is set and
// a criterion's direct set is empty.
type NoNodesForSelectionCriteriaError struct {
	Raw string
}

func (e NoNodesForSelectionCriteriaError) Error() string {
	return fmt.Sprintf("no nodes matched selection criteria: %s", e.Raw)
}

// RequiresPreviousStateError is raised by state: when no PreviousState was
// supplied to the selector.
type RequiresPreviousStateError struct {
	Msg string
}

func (e RequiresPreviousStateError) Error() string {
	return fmt.Sprintf("selector requires previous state: %s", e.Msg)
}

// InvalidSelectorError is a catch-all for unsupported method sub-forms and
// malformed state: values.
type InvalidSelectorError struct {
	Msg string
}

func (e InvalidSelectorError) Error() string {
	return fmt.Sprintf("invalid selector: %s", e.Msg)
}

// SelectorCycleError is raised when resolving a named selector-definition
// document (yamlselector.go) encounters a selector_name reference cycle.
type SelectorCycleError struct {
	Name string
}

func (e SelectorCycleError) Error() string {
	return fmt.Sprintf("cycle detected resolving selector %q", e.Name)
}

// UnknownSelectorNameError is raised when a selector_name reference does
// not resolve to a defined selector in the same document.
type UnknownSelectorNameError struct {
	Name string
}

func (e UnknownSelectorNameError) Error() string {
	return fmt.Sprintf("unknown selector_name: %q", e.Name)
}
