package archetype

import (
	"fmt"

	"copilot.dev/backend/internal/model"
)

// Service is the industry-pluggable archetype mapping contract (spec.md
// §4.C5): the interface stays constant across industries, only the
// definition table and composite formulas behind it change.
type Service interface {
	AvailableArchetypes() map[model.ArchetypeKey]model.CustomerArchetype
	DetermineArchetype(profile model.CumulativePsychology) model.CustomerArchetype
	CalculateConfidence(profile model.CumulativePsychology, key model.ArchetypeKey) int
	Fallback() model.CustomerArchetype
}

// automotiveService is the Tesla-specific implementation backing the
// default industry.
type automotiveService struct {
	definitions map[model.ArchetypeKey]definition
}

// New constructs the archetype Service for the given industry. Only
// "automotive" is implemented; unknown industries default to it, matching
// the permissive fallback of the original factory function.
func New(industry string) Service {
	switch industry {
	case "automotive", "":
		return &automotiveService{definitions: teslaDefinitions}
	default:
		return &automotiveService{definitions: teslaDefinitions}
	}
}

func (s *automotiveService) AvailableArchetypes() map[model.ArchetypeKey]model.CustomerArchetype {
	out := make(map[model.ArchetypeKey]model.CustomerArchetype, len(s.definitions))
	for k, d := range s.definitions {
		out[k] = d.archetype
	}
	return out
}

// DetermineArchetype is C5's pure entry point: no suspension points, no
// fallible calls, always returns a fully populated archetype.
func (s *automotiveService) DetermineArchetype(profile model.CumulativePsychology) model.CustomerArchetype {
	scores := extractScores(profile)
	key := determine(scores)

	def, ok := s.definitions[key]
	if !ok {
		return s.Fallback()
	}

	result := def.archetype
	result.Confidence = confidence(scores, key)
	return result
}

func (s *automotiveService) CalculateConfidence(profile model.CumulativePsychology, key model.ArchetypeKey) int {
	return confidence(extractScores(profile), key)
}

func (s *automotiveService) Fallback() model.CustomerArchetype {
	def := s.definitions[model.ArchetypePragmaticAnalyst]
	fallback := def.archetype
	fallback.Confidence = 50
	fallback.Description = fmt.Sprintf("%s (fallback — no dominant trait composite)", fallback.Description)
	return fallback
}
