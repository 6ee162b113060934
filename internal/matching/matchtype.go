package matching

// MatchType classifies how a ride's route relates to the requested route.
type MatchType string

// Labels produced by the compatibility scorer.
const (
	ExactMatch      MatchType = "exact_match"
	SameOrigin      MatchType = "same_origin"
	SameDestination MatchType = "same_destination"
	SameSegment     MatchType = "same_segment"
	UnknownProvince MatchType = "unknown_province"
	NotCompatible   MatchType = "not_compatible"
)

// Labels only emitted by specific search tiers.
const (
	CoversRoute    MatchType = "covers_route"
	PotentialMatch MatchType = "potential_match"
	ProximityMatch MatchType = "proximity_match"
)

var matchTypes = map[MatchType]struct{}{
	ExactMatch:      {},
	SameOrigin:      {},
	SameDestination: {},
	SameSegment:     {},
	UnknownProvince: {},
	NotCompatible:   {},
	CoversRoute:     {},
	PotentialMatch:  {},
	ProximityMatch:  {},
}

// ParseMatchType returns the MatchType named by s.
func ParseMatchType(s string) (MatchType, bool) {
	m := MatchType(s)
	if _, ok := matchTypes[m]; ok {
		return m, true
	}
	return "", false
}

// Valid reports whether m is one of the known labels.
func (m MatchType) Valid() bool {
	_, ok := matchTypes[m]
	return ok
}

func (m MatchType) String() string {
	return string(m)
}
