package matching

import (
	"fmt"

	"github.com/richxcame/ridematch/internal/geography"
)

// Scores assigned by the compatibility scorer.
const (
	ScoreExact           = 100
	ScoreSameSegment     = 90
	ScoreSameOrigin      = 80
	ScoreSameDestination = 75
	ScoreUnknown         = 10
	ScoreNotCompatible   = 0

	// ScoreCoversRoute is assigned by the corridor special cases.
	ScoreCoversRoute = 95
	// ScorePotential is the catch-all score of the province query.
	ScorePotential = 50
)

// ScoreResult is the compatibility of one driver route with one passenger route.
type ScoreResult struct {
	Score        int       `json:"score"`
	MatchType    MatchType `json:"match_type"`
	Description  string    `json:"description"`
	IsExactMatch bool      `json:"is_exact_match"`
	Ratio        float64   `json:"ratio"`
}

func newScoreResult(score int, matchType MatchType, description string) ScoreResult {
	score = clampScore(score)
	return ScoreResult{
		Score:        score,
		MatchType:    matchType,
		Description:  description,
		IsExactMatch: matchType == ExactMatch,
		Ratio:        float64(score) / 100,
	}
}

// Score rates a driver's province route against a passenger's. The first
// matching rule wins:
//
//  1. any province unknown          -> 10  unknown_province
//  2. same origin and destination   -> 100 exact_match
//  3. same origin                   -> 80  same_origin
//  4. same destination              -> 75  same_destination
//  5. passenger inside driver route -> 90  same_segment
//  6. otherwise                     -> 0   not_compatible
//
// Containment compares corridor ranks in the driver's direction of travel.
// Score never filters; callers drop zero scores where required.
func Score(driverFrom, driverTo, passengerFrom, passengerTo geography.Province) ScoreResult {
	if !driverFrom.IsKnown() || !driverTo.IsKnown() || !passengerFrom.IsKnown() || !passengerTo.IsKnown() {
		return newScoreResult(ScoreUnknown, UnknownProvince, "Route includes an unrecognised province")
	}

	switch {
	case driverFrom == passengerFrom && driverTo == passengerTo:
		return newScoreResult(ScoreExact, ExactMatch,
			fmt.Sprintf("Exact route: %s → %s", driverFrom.DisplayName(), driverTo.DisplayName()))
	case driverFrom == passengerFrom:
		return newScoreResult(ScoreSameOrigin, SameOrigin,
			fmt.Sprintf("Same origin: %s", driverFrom.DisplayName()))
	case driverTo == passengerTo:
		return newScoreResult(ScoreSameDestination, SameDestination,
			fmt.Sprintf("Same destination: %s", driverTo.DisplayName()))
	case covers(driverFrom, driverTo, passengerFrom, passengerTo):
		return newScoreResult(ScoreSameSegment, SameSegment,
			fmt.Sprintf("On the way: %s → %s passes %s → %s",
				driverFrom.DisplayName(), driverTo.DisplayName(),
				passengerFrom.DisplayName(), passengerTo.DisplayName()))
	default:
		return newScoreResult(ScoreNotCompatible, NotCompatible, "Route not compatible")
	}
}

// covers reports whether the passenger's endpoints lie within the driver's
// corridor span, taking the driver's direction into account.
func covers(driverFrom, driverTo, passengerFrom, passengerTo geography.Province) bool {
	df, dt := driverFrom.Rank(), driverTo.Rank()
	pf, pt := passengerFrom.Rank(), passengerTo.Rank()

	if dt > df {
		return pf >= df && pt <= dt
	}
	return pf <= df && pt >= dt
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
