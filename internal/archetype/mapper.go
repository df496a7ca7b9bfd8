// Package archetype implements the deterministic Archetype Mapper (C5):
// pure psychology-to-archetype classification, no LLM involved.
package archetype

import "copilot.dev/backend/internal/model"

type traitScores struct {
	extraversion      int
	conscientiousness int
	openness          int
	agreeableness     int
	dominance         int
	influence         int
	steadiness        int
	compliance        int
}

func extractScores(profile model.CumulativePsychology) traitScores {
	return traitScores{
		extraversion:      scoreOrDefault(profile.BigFive.Extraversion.Score),
		conscientiousness: scoreOrDefault(profile.BigFive.Conscientiousness.Score),
		openness:          scoreOrDefault(profile.BigFive.Openness.Score),
		agreeableness:     scoreOrDefault(profile.BigFive.Agreeableness.Score),
		dominance:         scoreOrDefault(profile.DISC.Dominance.Score),
		influence:         scoreOrDefault(profile.DISC.Influence.Score),
		steadiness:        scoreOrDefault(profile.DISC.Steadiness.Score),
		compliance:        scoreOrDefault(profile.DISC.Compliance.Score),
	}
}

// scoreOrDefault defaults a missing (zero-value) trait score to neutral 5,
// matching the Zero-Null Policy's guarantee that traits are never truly
// absent, while still tolerating a caller that passes a raw zero value.
func scoreOrDefault(score int) int {
	if score == 0 {
		return 5
	}
	return score
}

func (s traitScores) byName(name string) int {
	switch name {
	case "extraversion":
		return s.extraversion
	case "conscientiousness":
		return s.conscientiousness
	case "openness":
		return s.openness
	case "agreeableness":
		return s.agreeableness
	case "dominance":
		return s.dominance
	case "influence":
		return s.influence
	case "steadiness":
		return s.steadiness
	case "compliance":
		return s.compliance
	default:
		return 5
	}
}

// determine implements the composite-formula decision table, in the
// fixed enumeration order so ties break toward the earlier archetype.
func determine(scores traitScores) model.ArchetypeKey {
	type candidate struct {
		key   model.ArchetypeKey
		score float64
	}

	candidates := []candidate{
		{model.ArchetypeStatusSeeker, float64(scores.extraversion+scores.dominance+scores.influence) / 3},
		{model.ArchetypeFamilyGuardian, float64(scores.conscientiousness+scores.steadiness+scores.compliance) / 3},
		{model.ArchetypePragmaticAnalyst, float64(scores.conscientiousness+scores.compliance) / 2},
		{model.ArchetypeFutureVisionary, float64(scores.openness+scores.influence) / 2},
		{model.ArchetypeEcoActivist, float64(scores.agreeableness+scores.openness) / 2},
	}

	selected := model.ArchetypeKey("")
	maxScore := 0.0
	for _, c := range candidates {
		if c.score > maxScore {
			maxScore = c.score
			selected = c.key
		}
	}

	if scores.extraversion < 4 && scores.compliance > 6 {
		selected = model.ArchetypeFleetManager
	}

	if selected == "" {
		selected = model.ArchetypePragmaticAnalyst
	}

	return selected
}

// confidence averages the dominant-trait scores for the chosen archetype,
// scales to a percentage, and clamps to [60,95].
func confidence(scores traitScores, key model.ArchetypeKey) int {
	def, ok := teslaDefinitions[key]
	if !ok || len(def.dominantTraits) == 0 {
		return 70
	}

	sum := 0
	for _, trait := range def.dominantTraits {
		sum += scores.byName(trait)
	}
	avg := float64(sum) / float64(len(def.dominantTraits))

	c := int(avg * 10)
	if c < 60 {
		return 60
	}
	if c > 95 {
		return 95
	}
	return c
}
