package selector

// RawNode is the external Node input record (spec.md §6): all fields
// required unless noted, with Kind given as its canonical lowercase key
// string rather than the closed NodeKind enum.
type RawNode struct {
	UniqueId         string
	Name             string
	PackageName      string
	Path             string
	OriginalFilePath string
	DependsOn        []string
	Tags             []string
	Config           map[string]string
	Kind             string
	Payload          Payload
}

// RawEdge is the external Edge input record (spec.md §6).
type RawEdge struct {
	UniqueId string
	Parents  []string
}

func decodeNode(r RawNode) (Node, error) {
	switch {
	case r.UniqueId == "":
		return Node{}, MissingFieldError{Name: "unique_id"}
	case r.Name == "":
		return Node{}, MissingFieldError{Name: "name"}
	case r.PackageName == "":
		return Node{}, MissingFieldError{Name: "package_name"}
	case r.Path == "":
		return Node{}, MissingFieldError{Name: "path"}
	case r.OriginalFilePath == "":
		return Node{}, MissingFieldError{Name: "original_file_path"}
	}

	kind, ok := NodeKindFromKey(r.Kind)
	if !ok {
		return Node{}, NoMatchingResourceTypeBuildError{Value: r.Kind}
	}

	deps := make([]UniqueId, len(r.DependsOn))
	for i, d := range r.DependsOn {
		deps[i] = UniqueId(d)
	}

	return NewNode(UniqueId(r.UniqueId), r.Name, r.PackageName, r.Path, r.OriginalFilePath,
		deps, r.Tags, r.Config, kind, r.Payload), nil
}

func decodeEdge(r RawEdge) Edge {
	parents := make([]UniqueId, len(r.Parents))
	for i, p := range r.Parents {
		parents[i] = UniqueId(p)
	}
	return Edge{UniqueId: UniqueId(r.UniqueId), Parents: parents}
}
