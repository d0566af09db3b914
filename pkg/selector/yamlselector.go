package selector

import "gopkg.in/yaml.v3"

// YamlSelectorDocument is the decoded shape of a named selector-definition
// file: a list of named, reusable selection expressions that can
// cross-reference one another by name (SPEC_FULL.md §11.1; dbt's
// selectors.yml is the closest real-world analogue, not covered by
// spec.md's distillation).
type YamlSelectorDocument struct {
	Selectors []YamlSelectorDef `yaml:"selectors"`
}

// YamlSelectorDef names one reusable definition.
type YamlSelectorDef struct {
	Name       string    `yaml:"name"`
	Definition yaml.Node `yaml:"definition"`
	Default    bool      `yaml:"default"`
}

// selectorDefSet resolves named definitions into SelectionGroup trees,
// detecting selector_name reference cycles via a three-color DFS.
type selectorDefSet struct {
	defs            map[string]*yaml.Node
	defaultIndirect IndirectSelection

	resolved map[string]*SelectionGroup
	visiting map[string]bool
}

// ParseYamlSelectorDocument decodes raw YAML into a document, then resolves
// every named selector into a SelectionGroup tree. The returned map is
// keyed by selector name.
func ParseYamlSelectorDocument(raw []byte, defaultIndirect IndirectSelection) (map[string]*SelectionGroup, error) {
	var doc YamlSelectorDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, InvalidSelectorError{Msg: "malformed selector document: " + err.Error()}
	}

	set := &selectorDefSet{
		defs:            make(map[string]*yaml.Node, len(doc.Selectors)),
		defaultIndirect: defaultIndirect,
		resolved:        make(map[string]*SelectionGroup, len(doc.Selectors)),
		visiting:        make(map[string]bool, len(doc.Selectors)),
	}
	for i := range doc.Selectors {
		def := &doc.Selectors[i]
		node := def.Definition
		set.defs[def.Name] = &node
	}

	for name := range set.defs {
		if _, err := set.resolve(name); err != nil {
			return nil, err
		}
	}
	return set.resolved, nil
}

func (s *selectorDefSet) resolve(name string) (*SelectionGroup, error) {
	if g, ok := s.resolved[name]; ok {
		return g, nil
	}
	if s.visiting[name] {
		return nil, SelectorCycleError{Name: name}
	}
	node, ok := s.defs[name]
	if !ok {
		return nil, UnknownSelectorNameError{Name: name}
	}

	s.visiting[name] = true
	g, err := s.resolveNode(node)
	s.visiting[name] = false
	if err != nil {
		return nil, err
	}
	s.resolved[name] = g
	return g, nil
}

// resolveNode interprets one definition node: a plain scalar string is a
// raw selection expression; a mapping with selector_name is a reference to
// another named definition; a mapping with union/intersection/exclude is a
// composite; any other mapping is a YAML-map criterion.
func (s *selectorDefSet) resolveNode(node *yaml.Node) (*SelectionGroup, error) {
	resolved := node
	for resolved.Kind == yaml.DocumentNode || resolved.Kind == yaml.AliasNode {
		if resolved.Kind == yaml.DocumentNode {
			resolved = resolved.Content[0]
			continue
		}
		resolved = resolved.Alias
	}

	if resolved.Kind == yaml.ScalarNode {
		return ParseSelectionGroup(resolved.Value, s.defaultIndirect)
	}

	if resolved.Kind != yaml.MappingNode {
		return nil, InvalidSelectorError{Msg: "selector definition must be a string or mapping"}
	}

	m := mappingToStrings(resolved)

	if refName, ok := m["selector_name"]; ok {
		return s.resolve(refName)
	}

	if composite, ok := firstSetOpKey(resolved); ok {
		return s.resolveComposite(resolved, composite)
	}

	return NewCriterionFromYaml(YamlCriterionInput{
		Value:             m["value"],
		Method:            m["method"],
		MethodArgs:        splitMethodArgs(m["method_args"]),
		Parents:           m["parents"],
		ParentsDepth:      m["parents_depth"],
		Children:          m["children"],
		ChildrenDepth:     m["children_depth"],
		ChildrensParents:  m["childrens_parents"],
		IndirectSelection: m["indirect_selection"],
	}, s.defaultIndirect)
}

func firstSetOpKey(node *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "union", "intersection", "exclude":
			return node.Content[i].Value, true
		}
	}
	return "", false
}

func (s *selectorDefSet) resolveComposite(node *yaml.Node, key string) (*SelectionGroup, error) {
	var listNode *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			listNode = node.Content[i+1]
			break
		}
	}
	if listNode == nil || listNode.Kind != yaml.SequenceNode {
		return nil, InvalidSelectorError{Msg: key + " must be a list"}
	}

	components := make([]*SelectionGroup, 0, len(listNode.Content))
	for _, item := range listNode.Content {
		g, err := s.resolveNode(item)
		if err != nil {
			return nil, err
		}
		components = append(components, g)
	}

	switch key {
	case "union":
		return setOpGroup(SetOpUnion, components, "", s.defaultIndirect), nil
	case "intersection":
		return setOpGroup(SetOpIntersection, components, "", s.defaultIndirect), nil
	case "exclude":
		if len(components) != 2 {
			return nil, InvalidSelectorError{Msg: "exclude requires exactly two components"}
		}
		return setOpGroup(SetOpDifference, components, "", s.defaultIndirect), nil
	}
	return nil, InvalidSelectorError{Msg: "unknown composite key: " + key}
}

func mappingToStrings(node *yaml.Node) map[string]string {
	out := make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		v := node.Content[i+1]
		if v.Kind == yaml.ScalarNode {
			out[k.Value] = v.Value
		}
	}
	return out
}

func splitMethodArgs(raw string) []string {
	if raw == "" {
		return nil
	}
	args := []string{}
	start := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] == ',' {
			args = append(args, raw[start:i])
			start = i + 1
		}
	}
	args = append(args, raw[start:])
	return args
}
