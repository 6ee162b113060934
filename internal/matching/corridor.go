package matching

import (
	"fmt"

	"github.com/richxcame/ridematch/internal/geography"
)

// coversGazaLeg reports whether a ride from greater Maputo to Inhambane
// carries a Gaza to Inhambane passenger along the EN1.
func coversGazaLeg(driverFrom, driverTo, passengerFrom, passengerTo geography.Province) bool {
	if passengerFrom != geography.Gaza || passengerTo != geography.Inhambane {
		return false
	}
	return (driverFrom == geography.Maputo || driverFrom == geography.MaputoCity) &&
		driverTo == geography.Inhambane
}

// ScoreWithCorridor applies Score and, for routes it rejects, the hard-coded
// covers_route cases. Score's same_destination rule runs first, so a route
// those cases name is reported as same_destination whenever both apply.
func ScoreWithCorridor(driverFrom, driverTo, passengerFrom, passengerTo geography.Province) ScoreResult {
	result := Score(driverFrom, driverTo, passengerFrom, passengerTo)
	if result.MatchType != NotCompatible {
		return result
	}
	if coversGazaLeg(driverFrom, driverTo, passengerFrom, passengerTo) {
		return newScoreResult(ScoreCoversRoute, CoversRoute,
			fmt.Sprintf("Covers route: %s → %s via Gaza", driverFrom.DisplayName(), driverTo.DisplayName()))
	}
	return result
}
