package architecture

import (
	"sort"
)

// Feature is a target feature (e.g., "avx2") that gates register classes.
type Feature string

// NoFeature marks a register class as unconditionally available.
const NoFeature = Feature("")

type FeatureSet map[Feature]struct{}

func NewFeatureSet(features ...Feature) FeatureSet {
	set := FeatureSet{}
	for _, feature := range features {
		set.Add(feature)
	}
	return set
}

func (set FeatureSet) Add(feature Feature) {
	if feature == NoFeature {
		return
	}
	set[feature] = struct{}{}
}

func (set FeatureSet) Contains(feature Feature) bool {
	_, ok := set[feature]
	return ok
}

// Sorted returns the features in lexicographic order.
func (set FeatureSet) Sorted() []Feature {
	result := make([]Feature, 0, len(set))
	for feature := range set {
		result = append(result, feature)
	}
	sort.Slice(result, func(i int, j int) bool {
		return result[i] < result[j]
	})
	return result
}
