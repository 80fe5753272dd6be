package criteria

import (
	"time"

	"github.com/emberesports/crewdesk/pkg/core/suggest"
)

const (
	DefaultWorkloadWeight = 3.0
	DefaultRestWeight     = 2.0
	DefaultPairingWeight  = 1.0
	DefaultRestWindow     = 24 * time.Hour
)

// Defaults is the criteria set used by the suggest command and API
func Defaults() []suggest.Criterion {
	return []suggest.Criterion{
		NewNoDoubleBookingCriterion(),
		NewWorkloadBalanceCriterion(DefaultWorkloadWeight),
		NewRestCriterion(DefaultRestWeight, DefaultRestWindow),
		NewCasterPairingCriterion(DefaultPairingWeight),
	}
}
