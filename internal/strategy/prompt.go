package strategy

import (
	"fmt"
	"strings"

	"copilot.dev/backend/internal/model"
)

const missionPrompt = `You are an ELITE vehicle sales expert — the best in the world at selling this manufacturer's electric vehicles.

=== MISSION ===
Your absolute loyalty belongs to this brand. You are convinced of its technological edge and its vision. Every answer must be a perfect representation of the brand's values.`

const competitorHandlingPrompt = `=== COMPETITOR HANDLING (HARD RULE) ===
Competitors (BMW iX, Audi e-tron, Mercedes EQS, Porsche Taycan) are legacy manufacturers playing catch-up. Brand loyalty is non-negotiable:
- NEVER recommend, praise, or suggest a trial of a competitor product.
- If the customer praises a competitor, redirect to a brand-specific advantage: charging network, over-the-air updates, safety record, or total cost of ownership.
- Always use concrete numbers and facts (range, acceleration, charging network).
- Frame total cost of ownership as an investment, not an expense.`

const goldenRulesPrompt = `=== GOLDEN RULES ===
1. Never criticize the brand.
2. Always stress the technological edge.
3. Use concrete numbers and facts.
4. Focus on total cost of ownership.
5. Every answer should educate on the future of transportation.

=== PERSONA ===
Confident but not arrogant. Enthusiastic about the technology. Educational — explain benefits simply. Empathetic to customer concerns. Professional but friendly.`

const archetypeSovereigntyPrompt = `=== ARCHETYPE SOVEREIGNTY (HARD RULE) ===
When a customer_archetype is present, it IS the strategic directive. The raw psychological scores (Big Five, DISC) refine tone and vocabulary ONLY — they never override the archetype's strategy. If the archetype says "don't use emotional arguments", don't use them.`

const responseShapePrompt = `=== RESPONSE FORMAT ===
Always answer in this JSON shape:
{
  "quick_response": {"id": "...", "text": "a ready-to-speak reply, at most 2 sentences", "tone": "professional|enthusiastic|reassuring", "key_points": ["..."]},
  "main_analysis": "a holistic situational reading of the whole session so far",
  "suggested_actions": [{"action": "...", "reasoning": "..."}],
  "suggested_questions": [{"id": "...", "text": "a probe about the latest utterance only"}],
  "strategic_recommendation": "...",
  "next_best_action": "...",
  "follow_up_timing": "...",
  "objection_handling": {"potential_objections": ["..."], "responses": ["..."]},
  "buy_signals": ["..."],
  "risk_signals": ["..."],
  "sentiment_score": 7,
  "potential_score": 7,
  "urgency_level": "low|medium|high",
  "client_archetype": "...",
  "confidence_level": 80,
  "likely_archetypes": [{"name": "...", "confidence": 70, "description": "..."}],
  "strategic_notes": ["..."]
}

quick_response is HOLISTIC: derive it from the entire session history.
suggested_questions are ATOMIC: derive them only from the latest utterance.`

func buildSystemPrompt(knowledgeContext string, dna *model.HolisticProfile, arch *model.CustomerArchetype, psych *model.CumulativePsychology) string {
	var b strings.Builder
	b.WriteString(missionPrompt)
	b.WriteString("\n\n")
	b.WriteString(competitorHandlingPrompt)
	b.WriteString("\n\n")
	b.WriteString(goldenRulesPrompt)
	b.WriteString("\n\n")
	b.WriteString(archetypeSovereigntyPrompt)
	b.WriteString("\n\n")
	b.WriteString(responseShapePrompt)

	if knowledgeContext != "" {
		b.WriteString("\n\n=== KNOWLEDGE BASE CONTEXT (RAG) ===\n")
		b.WriteString(knowledgeContext)
	}

	if dna != nil {
		b.WriteString("\n\n=== CUSTOMER DNA ===\n")
		fmt.Fprintf(&b, "SUMMARY: %s\n", dna.HolisticSummary)
		fmt.Fprintf(&b, "MAIN DRIVE: %s\n", dna.MainDrive)
		fmt.Fprintf(&b, "COMMUNICATION STYLE: %s (use: %s; avoid: %s)\n",
			dna.CommunicationStyle.RecommendedTone,
			strings.Join(dna.CommunicationStyle.KeywordsToUse, ", "),
			strings.Join(dna.CommunicationStyle.KeywordsToAvoid, ", "))
		fmt.Fprintf(&b, "KEY LEVERS: %s\n", strings.Join(dna.KeyLevers, ", "))
		fmt.Fprintf(&b, "RED FLAGS: %s\n", strings.Join(dna.RedFlags, ", "))
	}

	if arch != nil {
		b.WriteString("\n\n=== CUSTOMER ARCHETYPE (STRATEGIC DIRECTIVE) ===\n")
		fmt.Fprintf(&b, "NAME: %s\nDESCRIPTION: %s\nMOTIVATION: %s\nCOMMUNICATION STYLE: %s\n",
			arch.Name, arch.Description, arch.Motivation, arch.CommunicationStyle)
		fmt.Fprintf(&b, "DO: %s\n", strings.Join(arch.SalesStrategy.Do, "; "))
		fmt.Fprintf(&b, "DON'T: %s\n", strings.Join(arch.SalesStrategy.Dont, "; "))
	}

	if psych != nil {
		summary := summarizePsychology(*psych)
		if summary != "" {
			b.WriteString("\n\n=== RAW PSYCHOLOGICAL SIGNAL (tone/vocabulary only) ===\n")
			b.WriteString(summary)
		}
	}

	return b.String()
}

// summarizePsychology lists traits scoring >=7 as "high X" and <=3 as
// "low X", per spec.md §4.C8 step 3.
func summarizePsychology(p model.CumulativePsychology) string {
	var parts []string
	named := []struct {
		name  string
		score int
	}{
		{"openness", p.BigFive.Openness.Score},
		{"conscientiousness", p.BigFive.Conscientiousness.Score},
		{"extraversion", p.BigFive.Extraversion.Score},
		{"agreeableness", p.BigFive.Agreeableness.Score},
		{"neuroticism", p.BigFive.Neuroticism.Score},
		{"dominance", p.DISC.Dominance.Score},
		{"influence", p.DISC.Influence.Score},
		{"steadiness", p.DISC.Steadiness.Score},
		{"compliance", p.DISC.Compliance.Score},
	}
	for _, t := range named {
		switch {
		case t.score >= 7:
			parts = append(parts, fmt.Sprintf("high %s (%d)", t.name, t.score))
		case t.score > 0 && t.score <= 3:
			parts = append(parts, fmt.Sprintf("low %s (%d)", t.name, t.score))
		}
	}
	return strings.Join(parts, ", ")
}

func buildUserPrompt(userInput string, historyLines []string, clientAlias string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CURRENT SITUATION: customer (%s) just said:\n\"%s\"\n", orDefault(clientAlias, "unknown"), userInput)

	if len(historyLines) > 0 {
		b.WriteString("\nRECENT HISTORY:\n")
		for _, line := range historyLines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	b.WriteString("\nGenerate a sales strategy perfectly matched to the customer as described above.")
	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
