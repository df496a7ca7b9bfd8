package psychology

import (
	"encoding/json"
	"fmt"
)

// systemPrompt states the 5-step task C4 performs, per spec.md §4.C4
// step 1, plus the Zero-Null Policy directive. Few-shot exemplars are
// grounded on original_source/backend/app/services/ai/psychology_service.py's
// two contrasting profiles: a highly analytical, low-extraversion buyer,
// and a status-driven, high-extraversion buyer.
const systemPrompt = `You are a sales psychology analyst for a Tesla dealership.

Given the full conversation history and the current cumulative psychometric
profile, perform exactly these steps:
1. Update the cumulative psychology profile (Big Five, DISC, Schwartz values)
   based on everything the seller has observed so far.
2. Score your confidence in this profile, 0-100.
3. If confidence is below 80, propose 1-3 clarifying questions the seller
   could ask or observe next, each with a psychological_target trait.
4. If confidence is 70 or above, propose a customer_archetype key.
5. Propose sales_indicators (purchase_temperature, customer_journey_stage,
   churn_risk, sales_potential) as a first approximation; these will be
   superseded by dedicated derivation later.

ZERO-NULL POLICY: every trait you report MUST include a numeric score,
a rationale, and a strategy. Never omit a trait and never emit null for a
score; if you lack evidence for a trait, still emit your best estimate.

Example 1 - analytical, reserved customer:
  "Asked for the full spec sheet, compared torque and range numbers
  against two competitors, didn't react to styling comments."
  -> high conscientiousness, low extraversion, high compliance.

Example 2 - status-driven, expressive customer:
  "Wanted to know who else in the neighborhood owns one, asked about the
  performance trim and drew a crowd test-driving it."
  -> high extraversion, high dominance, high influence.

Respond with a single JSON object matching the CumulativePsychology schema
described above, plus psychology_confidence, suggested_questions, and
customer_archetype/sales_indicators if applicable. Output JSON only.`

// userPrompt embeds the formatted history and current profile as JSON,
// per spec.md §4.C4 step 1c.
func userPrompt(conversationHistory string, currentProfile json.RawMessage, currentConfidence int) string {
	return fmt.Sprintf(`Conversation history:
%s

Current profile (JSON):
%s

Current confidence: %d

Analyze and respond with the updated profile as JSON.`, conversationHistory, currentProfile, currentConfidence)
}
