package psychology

import (
	"fmt"

	"copilot.dev/backend/internal/model"
)

type rawTrait struct {
	Score     *int    `json:"score"`
	Rationale *string `json:"rationale"`
	Strategy  *string `json:"strategy"`
}

type rawBigFive struct {
	Openness          *rawTrait `json:"openness"`
	Conscientiousness *rawTrait `json:"conscientiousness"`
	Extraversion      *rawTrait `json:"extraversion"`
	Agreeableness     *rawTrait `json:"agreeableness"`
	Neuroticism       *rawTrait `json:"neuroticism"`
}

type rawDISC struct {
	Dominance  *rawTrait `json:"dominance"`
	Influence  *rawTrait `json:"influence"`
	Steadiness *rawTrait `json:"steadiness"`
	Compliance *rawTrait `json:"compliance"`
}

type rawSchwartzValue struct {
	Name      string `json:"name"`
	Strength  *int   `json:"strength"`
	Rationale string `json:"rationale"`
	Strategy  string `json:"strategy"`
	Present   *bool  `json:"present"`
}

type rawArchetype struct {
	ArchetypeKey *string `json:"archetype_key"`
}

type rawQuestion struct {
	Question            string `json:"question"`
	PsychologicalTarget string `json:"psychological_target"`
}

type rawOutput struct {
	BigFive              *rawBigFive        `json:"big_five"`
	DISC                 *rawDISC           `json:"disc"`
	SchwartzValues       []rawSchwartzValue `json:"schwartz_values"`
	ObservationsSummary  string             `json:"observations_summary"`
	PsychologyConfidence *int               `json:"psychology_confidence"`
	SuggestedQuestions   []rawQuestion      `json:"suggested_questions"`
	CustomerArchetype    *rawArchetype      `json:"customer_archetype"`
}

const imputedRationale = "imputed — insufficient evidence"

// placeholderArchetypeKey is the informational placeholder C4 emits when
// the LLM didn't propose one; C5 always overwrites this deterministically.
const placeholderArchetypeKey = model.ArchetypeKey("unclassified")

// repaired applies the Zero-Null Policy (spec.md §4.C4 step 4): every
// trait is always populated, imputed values are explicitly marked.
// previous carries forward fields the LLM never re-generates
// (Observations are owned by RecordClarificationAnswer, not by C4).
func repair(raw rawOutput, previous model.CumulativePsychology) (model.CumulativePsychology, int, *model.ArchetypeKey, []string) {
	var repairedFields []string

	note := func(field string) {
		repairedFields = append(repairedFields, field)
	}

	trait := func(name string, r *rawTrait) model.TraitScore {
		if r == nil || r.Score == nil {
			note(name)
			return model.TraitScore{Score: 5, Rationale: imputedRationale, Strategy: defaultStrategyFor(name)}
		}
		rationale := imputedRationale
		if r.Rationale != nil && *r.Rationale != "" {
			rationale = *r.Rationale
		} else {
			note(name)
		}
		strategy := defaultStrategyFor(name)
		if r.Strategy != nil && *r.Strategy != "" {
			strategy = *r.Strategy
		}
		return model.TraitScore{Score: clamp(*r.Score, 0, 10), Rationale: rationale, Strategy: strategy}
	}

	bigFive := model.BigFive{}
	var bf rawBigFive
	if raw.BigFive != nil {
		bf = *raw.BigFive
	}
	bigFive.Openness = trait("openness", bf.Openness)
	bigFive.Conscientiousness = trait("conscientiousness", bf.Conscientiousness)
	bigFive.Extraversion = trait("extraversion", bf.Extraversion)
	bigFive.Agreeableness = trait("agreeableness", bf.Agreeableness)
	bigFive.Neuroticism = trait("neuroticism", bf.Neuroticism)

	disc := model.DISC{}
	var d rawDISC
	if raw.DISC != nil {
		d = *raw.DISC
	}
	disc.Dominance = trait("dominance", d.Dominance)
	disc.Influence = trait("influence", d.Influence)
	disc.Steadiness = trait("steadiness", d.Steadiness)
	disc.Compliance = trait("compliance", d.Compliance)

	schwartz := make([]model.SchwartzValue, 0, len(raw.SchwartzValues))
	for _, sv := range raw.SchwartzValues {
		strength := 5
		if sv.Strength != nil {
			strength = clamp(*sv.Strength, 0, 10)
		}
		present := true
		if sv.Present != nil {
			present = *sv.Present
		}
		schwartz = append(schwartz, model.SchwartzValue{
			Name: sv.Name, Strength: strength, Rationale: sv.Rationale, Strategy: sv.Strategy, Present: present,
		})
	}
	if len(schwartz) == 0 {
		note("schwartz_values")
		schwartz = append(schwartz, model.SchwartzValue{
			Name: "security", Strength: 5, Rationale: imputedRationale,
			Strategy: "Lean on reliability, warranty, and proven track record.", Present: true,
		})
	}

	confidence := 30
	if raw.PsychologyConfidence != nil && *raw.PsychologyConfidence != 0 {
		confidence = clamp(*raw.PsychologyConfidence, 0, 100)
	} else {
		note("psychology_confidence")
	}

	var archetypeKey *model.ArchetypeKey
	if raw.CustomerArchetype == nil || raw.CustomerArchetype.ArchetypeKey == nil || *raw.CustomerArchetype.ArchetypeKey == "" {
		note("customer_archetype")
		key := placeholderArchetypeKey
		archetypeKey = &key
	} else {
		key := model.ArchetypeKey(*raw.CustomerArchetype.ArchetypeKey)
		archetypeKey = &key
	}

	summary := raw.ObservationsSummary
	if summary == "" {
		summary = previous.ObservationsSummary
	}

	return model.CumulativePsychology{
		BigFive:             bigFive,
		DISC:                disc,
		SchwartzValues:      schwartz,
		Observations:        previous.Observations,
		ObservationsSummary: summary,
		RepairedFields:      repairedFields,
	}, confidence, archetypeKey, repairedFields
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func defaultStrategyFor(trait string) string {
	return fmt.Sprintf("Insufficient signal on %s yet; probe with a targeted observation before leaning on this trait.", trait)
}
