package archetype

import "copilot.dev/backend/internal/model"

// definition pairs a CustomerArchetype's static content with the trait
// names its confidence score is averaged over.
type definition struct {
	archetype      model.CustomerArchetype
	dominantTraits []string
}

// teslaDefinitions is the automotive-industry archetype table: the
// domain-specific portion of the mapper. A different industry swaps this
// table (and the composite formulas in mapper.go) for its own.
var teslaDefinitions = map[model.ArchetypeKey]definition{
	model.ArchetypeStatusSeeker: {
		dominantTraits: []string{"extraversion", "dominance", "influence"},
		archetype: model.CustomerArchetype{
			Key:                model.ArchetypeStatusSeeker,
			Name:               "Status Seeker",
			Description:        "Sees the vehicle as an investment in image and social standing.",
			DominantTraits:     []string{"extraversion", "dominance", "influence"},
			Motivation:         "Social status and prestige",
			CommunicationStyle: "Enthusiastic, focused on image benefits",
			SalesStrategy: model.SalesPlaybook{
				Do: []string{
					"Emphasize exclusivity and brand prestige",
					"Talk about the owner's standing among peers",
					"Present the vehicle as a symbol of success and innovation",
					"Use the language of achievement and leadership",
					"Stress uniqueness — not everyone can own one",
				},
				Dont: []string{
					"Don't focus only on technical specifications",
					"Don't downplay image and status",
					"Don't lean on purely economic arguments",
					"Don't compare against competitors on price alone",
				},
			},
		},
	},
	model.ArchetypeFamilyGuardian: {
		dominantTraits: []string{"conscientiousness", "steadiness", "compliance"},
		archetype: model.CustomerArchetype{
			Key:                model.ArchetypeFamilyGuardian,
			Name:               "Family Guardian",
			Description:        "Safety and protection of loved ones come first.",
			DominantTraits:     []string{"conscientiousness", "steadiness", "compliance"},
			Motivation:         "Safety and family protection",
			CommunicationStyle: "Calm, focused on safety",
			SalesStrategy: model.SalesPlaybook{
				Do: []string{
					"Lead with top safety ratings",
					"Talk about protecting family and children",
					"Present driver-assist technology as a guardian, not a gimmick",
					"Use the language of trust and reliability",
					"Stress durability and long-term dependability",
				},
				Dont: []string{
					"Don't minimize safety concerns",
					"Don't dismiss family-related worries",
					"Don't focus solely on performance",
					"Don't use risk-taking or thrill-seeking language",
				},
			},
		},
	},
	model.ArchetypePragmaticAnalyst: {
		dominantTraits: []string{"conscientiousness", "compliance"},
		archetype: model.CustomerArchetype{
			Key:                model.ArchetypePragmaticAnalyst,
			Name:               "Pragmatic Analyst",
			Description:        "Driven by data, total cost of ownership, and return on investment.",
			DominantTraits:     []string{"conscientiousness", "compliance"},
			Motivation:         "Economic efficiency and data",
			CommunicationStyle: "Factual, analytical, numbers-first",
			SalesStrategy: model.SalesPlaybook{
				Do: []string{
					"Provide detailed TCO and ROI figures",
					"Compare costs against competitors (favorably)",
					"Present range and efficiency facts",
					"Use charts, tables, and concrete numbers",
					"Stress long-term economic benefits",
				},
				Dont: []string{
					"Don't skip the economics",
					"Don't use emotional arguments",
					"Don't push for a fast decision",
					"Don't downplay upfront costs",
				},
			},
		},
	},
	model.ArchetypeFutureVisionary: {
		dominantTraits: []string{"openness", "influence"},
		archetype: model.CustomerArchetype{
			Key:                model.ArchetypeFutureVisionary,
			Name:               "Future Visionary",
			Description:        "A technology enthusiast who wants to be part of the revolution.",
			DominantTraits:     []string{"openness", "influence"},
			Motivation:         "Innovation and the future of technology",
			CommunicationStyle: "Enthusiastic, visionary, technical",
			SalesStrategy: model.SalesPlaybook{
				Do: []string{
					"Emphasize revolutionary technology",
					"Talk about the future of transportation",
					"Present autonomy and future-facing features",
					"Use the language of innovation and the future",
					"Stress the role of sustainability in that future",
				},
				Dont: []string{
					"Don't focus only on cost",
					"Don't ignore the technology angle",
					"Don't use conservative, backward-looking language",
					"Don't compare against conventional vehicles",
				},
			},
		},
	},
	model.ArchetypeEcoActivist: {
		dominantTraits: []string{"agreeableness", "openness"},
		archetype: model.CustomerArchetype{
			Key:                model.ArchetypeEcoActivist,
			Name:               "Eco Activist",
			Description:        "Sees the vehicle as a tool for fighting climate change.",
			DominantTraits:     []string{"agreeableness", "openness"},
			Motivation:         "Environment and sustainability",
			CommunicationStyle: "Idealistic, environment-focused",
			SalesStrategy: model.SalesPlaybook{
				Do: []string{
					"Emphasize environmental benefits",
					"Talk about emissions reduction",
					"Present sustainable manufacturing practices",
					"Use the language of environmental stewardship",
					"Stress impact on future generations",
				},
				Dont: []string{
					"Don't ignore environmental aspects",
					"Don't use destructive or wasteful language",
					"Don't focus solely on performance",
					"Don't compare against conventional vehicles without ecological context",
				},
			},
		},
	},
	model.ArchetypeFleetManager: {
		dominantTraits: []string{"conscientiousness", "compliance"},
		archetype: model.CustomerArchetype{
			Key:                model.ArchetypeFleetManager,
			Name:               "Fleet Manager",
			Description:        "Manages a vehicle fleet, focused on cost efficiency, reliability, and scale.",
			DominantTraits:     []string{"conscientiousness", "compliance"},
			Motivation:         "Business efficiency and risk management",
			CommunicationStyle: "Professional, business-focused",
			SalesStrategy: model.SalesPlaybook{
				Do: []string{
					"Emphasize fleet benefits (TCO, service, management)",
					"Present the scalability of the offering",
					"Talk about reliability and minimized downtime",
					"Use business and efficiency language",
					"Stress organization-wide benefits",
				},
				Dont: []string{
					"Don't ignore the business angle",
					"Don't focus only on individual benefits",
					"Don't use emotional language",
					"Don't downplay operating costs",
				},
			},
		},
	},
}
