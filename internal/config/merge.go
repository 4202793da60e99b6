package config

// Merge returns override applied on top of base.
//
// Where both sides hold maps for the same key the merge recurses; every
// other collision is resolved wholesale in favor of override. Sequences
// replace, they are never concatenated or merged element-wise. Keys present
// only in base are retained. Neither input is mutated and the result shares
// no state with either.
//
// Three-layer precedence is expressed as two sequential calls:
//
//	effective := Merge(Merge(clusterDefaults, roleDefaults), nodeOverride)
func Merge(base, override Tree) Tree {
	merged := base.Clone()
	for key, ov := range override {
		if existing, ok := merged[key]; ok && existing.Kind == KindMap && ov.Kind == KindMap {
			merged[key] = MapValue(Merge(existing.Map, ov.Map))
			continue
		}
		merged[key] = ov.Clone()
	}
	return merged
}
