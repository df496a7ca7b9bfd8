package psychology

import (
	"strings"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/internal/model"
)

// toClarifyingQuestion converts a suggested question into its A/B framing
// per spec.md §4.C4 step 5's lexical rules, checked in the order given.
func toClarifyingQuestion(q rawQuestion) model.ClarifyingQuestion {
	optionA, optionB := abOptionsFor(q.Question)
	return model.ClarifyingQuestion{
		ID:                  shortID(),
		Question:            q.Question,
		OptionA:             optionA,
		OptionB:             optionB,
		PsychologicalTarget: q.PsychologicalTarget,
	}
}

func abOptionsFor(question string) (string, string) {
	lower := strings.ToLower(strings.TrimSpace(question))

	switch {
	case strings.HasPrefix(lower, "czy"), strings.HasPrefix(lower, "jak często"), strings.HasPrefix(lower, "jakie"):
		return "confirms", "denies"
	case strings.HasPrefix(lower, "jak"):
		return "quickly, directly", "slowly, thoroughly"
	case strings.HasPrefix(lower, "co"):
		return "general benefits", "technical details"
	default:
		return "confirms", "denies"
	}
}

func shortID() string {
	// opaque short string derived from a snowflake id, base36-encoded to
	// stay compact for a UI-facing question identifier.
	return "q" + toBase36(id.New())
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func toBase36(n int64) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		n = -n
	}
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = base36Alphabet[n%36]
		n /= 36
	}
	return string(buf[i:])
}
