// Package rewards implements the reward ledger domain for talentgate.
// Each candidate accrues points for verified pipeline advancement; levels are
// recomputed from the cumulative total on every credit.
package rewards

import (
	"time"

	"github.com/google/uuid"
)

// Point awards per accepted verification. Offer-kind advances pay the larger
// tier. Tunable; not part of the external contract.
const (
	StandardAward = 25
	OfferAward    = 100
)

// levelThreshold is the point span per level.
const levelThreshold = 250

// Account is a candidate's cumulative reward state.
type Account struct {
	StudentID uuid.UUID `json:"student_id"`
	Points    int       `json:"points"`
	Level     int       `json:"level"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry records a single point credit against an account. VerificationID links
// the credit to the accepted verification that earned it, when one exists.
type Entry struct {
	ID             uuid.UUID  `json:"id"`
	StudentID      uuid.UUID  `json:"student_id"`
	Points         int        `json:"points"`
	Reason         string     `json:"reason"`
	VerificationID *uuid.UUID `json:"verification_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

// LevelForPoints computes the level for a cumulative point total.
// Levels start at 1 and advance every levelThreshold points.
func LevelForPoints(points int) int {
	if points < 0 {
		return 1
	}
	return 1 + points/levelThreshold
}

// AwardForOffer returns the point award for an advance, applying the larger
// tier when the advance lands on an offer.
func AwardForOffer(offered bool) int {
	if offered {
		return OfferAward
	}
	return StandardAward
}
