package selector

// contentAspect names one row of the same_content comparison table
// (spec.md §4.7). Each aspect is meaningful only for certain kinds;
// aspectApplicable says which.
type contentAspect int

const (
	aspectFqn contentAspect = iota
	aspectBody
	aspectPersistedDescription
	aspectDatabase // "database representation": database/schema/alias triple
	aspectContract
	aspectMacroSql
	aspectBlockContents
	aspectExposure
	aspectConfig // generalized across all kinds, for state:modified.configs
)

// aspectApplicable reports whether aspect is a meaningful dimension of
// content-equivalence for kind. A node can never be "modified" along an
// aspect that doesn't apply to its kind.
func aspectApplicable(kind NodeKind, aspect contentAspect) bool {
	switch aspect {
	case aspectFqn:
		return kind.HasFqn()
	case aspectBody:
		switch kind {
		case KindModel, KindAnalysis, KindSeed, KindTest, KindSnapshot, KindOperation, KindRpc, KindSqlOperation:
			return true
		}
		return false
	case aspectPersistedDescription, aspectDatabase:
		switch kind {
		case KindModel, KindSeed, KindSource:
			return true
		}
		return false
	case aspectContract:
		return kind == KindModel
	case aspectMacroSql:
		return kind == KindMacro
	case aspectBlockContents:
		return kind == KindDoc
	case aspectExposure:
		return kind == KindExposure
	case aspectConfig:
		return true
	}
	return false
}

// aspectEqual compares old and new along aspect. Callers must only invoke
// this for a kind where aspectApplicable(kind, aspect) holds, and after
// confirming old.Kind == new.Kind.
func aspectEqual(old, new Node, aspect contentAspect) bool {
	switch aspect {
	case aspectFqn:
		return stringSliceEqual(old.Payload.Fqn, new.Payload.Fqn)
	case aspectBody:
		return old.Payload.RawCode == new.Payload.RawCode
	case aspectPersistedDescription:
		return old.Payload.PersistedDescription == new.Payload.PersistedDescription
	case aspectDatabase:
		return old.Payload.Database == new.Payload.Database &&
			old.Payload.Schema == new.Payload.Schema &&
			old.Payload.Alias == new.Payload.Alias
	case aspectContract:
		return old.Payload.Contract == new.Payload.Contract
	case aspectMacroSql:
		return old.Payload.MacroSql == new.Payload.MacroSql
	case aspectBlockContents:
		return old.Payload.BlockContents == new.Payload.BlockContents
	case aspectExposure:
		return old.Payload.ExposureType == new.Payload.ExposureType &&
			old.Payload.Owner == new.Payload.Owner &&
			old.Payload.Maturity == new.Payload.Maturity &&
			old.Payload.URL == new.Payload.URL &&
			old.Payload.Description == new.Payload.Description &&
			old.Payload.Label == new.Payload.Label &&
			idSetEqual(old.DependsOn, new.DependsOn) &&
			stringMapEqual(old.Config, new.Config)
	case aspectConfig:
		return stringMapEqual(old.Config, new.Config)
	}
	return true
}

// sameContent implements spec.md §4.7's same_content: nodes of different
// kinds are never content-equivalent; otherwise equivalence is the
// conjunction of every aspect applicable to the shared kind.
func sameContent(old, new Node) bool {
	if old.Kind != new.Kind {
		return false
	}
	for _, aspect := range []contentAspect{
		aspectFqn, aspectBody, aspectPersistedDescription, aspectDatabase,
		aspectContract, aspectMacroSql, aspectBlockContents, aspectExposure,
	} {
		if !aspectApplicable(old.Kind, aspect) {
			continue
		}
		if !aspectEqual(old, new, aspect) {
			return false
		}
	}
	return true
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func idSetEqual(a, b map[UniqueId]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func stringMapEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
