package archetype

import (
	"testing"

	"copilot.dev/backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func trait(score int) model.TraitScore {
	return model.TraitScore{Score: score}
}

func TestDetermineArchetypeStatusSeeker(t *testing.T) {
	profile := model.CumulativePsychology{
		BigFive: model.BigFive{Extraversion: trait(9), Conscientiousness: trait(4), Openness: trait(5), Agreeableness: trait(4)},
		DISC:    model.DISC{Dominance: trait(9), Influence: trait(8), Steadiness: trait(3), Compliance: trait(3)},
	}

	svc := New("automotive")
	result := svc.DetermineArchetype(profile)

	assert.Equal(t, model.ArchetypeStatusSeeker, result.Key)
	assert.GreaterOrEqual(t, result.Confidence, 60)
	assert.LessOrEqual(t, result.Confidence, 95)
}

func TestDetermineArchetypeFleetManagerOverride(t *testing.T) {
	// Low extraversion + high compliance forces fleet_manager even though
	// family_guardian's composite would otherwise win.
	profile := model.CumulativePsychology{
		BigFive: model.BigFive{Extraversion: trait(2), Conscientiousness: trait(9), Openness: trait(5), Agreeableness: trait(5)},
		DISC:    model.DISC{Dominance: trait(3), Influence: trait(3), Steadiness: trait(9), Compliance: trait(9)},
	}

	result := New("automotive").DetermineArchetype(profile)
	assert.Equal(t, model.ArchetypeFleetManager, result.Key)
}

func TestDetermineArchetypeAllNeutralTiesToFirstEnumerated(t *testing.T) {
	// All composites tie at 5; ties break toward status_seeker, the first
	// entry in the fixed enumeration order.
	profile := model.CumulativePsychology{
		BigFive: model.BigFive{Extraversion: trait(5), Conscientiousness: trait(5), Openness: trait(5), Agreeableness: trait(5)},
		DISC:    model.DISC{Dominance: trait(5), Influence: trait(5), Steadiness: trait(5), Compliance: trait(5)},
	}

	result := New("automotive").DetermineArchetype(profile)
	assert.Equal(t, model.ArchetypeStatusSeeker, result.Key)
}

func TestDetermineArchetypeMissingScoresDefaultToNeutral(t *testing.T) {
	result := New("automotive").DetermineArchetype(model.CumulativePsychology{})
	assert.Equal(t, model.ArchetypeStatusSeeker, result.Key)
}

func TestFallbackReturnsPragmaticAnalystAt50(t *testing.T) {
	fallback := New("automotive").Fallback()
	assert.Equal(t, model.ArchetypePragmaticAnalyst, fallback.Key)
	assert.Equal(t, 50, fallback.Confidence)
}

func TestUnknownIndustryDefaultsToAutomotive(t *testing.T) {
	svc := New("real_estate")
	assert.NotEmpty(t, svc.AvailableArchetypes())
}
