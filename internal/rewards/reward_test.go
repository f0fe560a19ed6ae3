package rewards_test

import (
	"testing"

	"github.com/talentgate/talentgate/internal/rewards"
)

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points   int
		expected int
	}{
		{-50, 1},
		{0, 1},
		{249, 1},
		{250, 2},
		{499, 2},
		{500, 3},
		{1000, 5},
	}

	for _, tt := range tests {
		if got := rewards.LevelForPoints(tt.points); got != tt.expected {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tt.points, got, tt.expected)
		}
	}
}

func TestAwardForOffer(t *testing.T) {
	if got := rewards.AwardForOffer(true); got != rewards.OfferAward {
		t.Errorf("offer advance pays %d, want %d", got, rewards.OfferAward)
	}
	if got := rewards.AwardForOffer(false); got != rewards.StandardAward {
		t.Errorf("standard advance pays %d, want %d", got, rewards.StandardAward)
	}
	if rewards.OfferAward <= rewards.StandardAward {
		t.Error("offer tier must exceed the standard tier")
	}
}
