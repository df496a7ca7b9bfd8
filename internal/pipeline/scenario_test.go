package pipeline_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"copilot.dev/backend/common/id"
	"copilot.dev/backend/internal/archetype"
	"copilot.dev/backend/internal/indicators"
	"copilot.dev/backend/internal/llmgw"
	"copilot.dev/backend/internal/model"
	"copilot.dev/backend/internal/pipeline"
	"copilot.dev/backend/internal/pipeline/sessionlock"
	"copilot.dev/backend/internal/psychology"
	"copilot.dev/backend/internal/store/memstore"
	"copilot.dev/backend/internal/strategy"
	"copilot.dev/backend/internal/synthesis"
)

func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline Scenario Suite")
}

func psychologyJSON(score func(trait string) int, confidence int, summary string, questions []model.ClarifyingQuestion) string {
	return `{
		"big_five": {
			"openness": {"score": ` + itoa(score("openness")) + `, "rationale": "r", "strategy": "s"},
			"conscientiousness": {"score": ` + itoa(score("conscientiousness")) + `, "rationale": "r", "strategy": "s"},
			"extraversion": {"score": ` + itoa(score("extraversion")) + `, "rationale": "r", "strategy": "s"},
			"agreeableness": {"score": ` + itoa(score("agreeableness")) + `, "rationale": "r", "strategy": "s"},
			"neuroticism": {"score": ` + itoa(score("neuroticism")) + `, "rationale": "r", "strategy": "s"}
		},
		"disc": {
			"dominance": {"score": ` + itoa(score("dominance")) + `, "rationale": "r", "strategy": "s"},
			"influence": {"score": ` + itoa(score("influence")) + `, "rationale": "r", "strategy": "s"},
			"steadiness": {"score": ` + itoa(score("steadiness")) + `, "rationale": "r", "strategy": "s"},
			"compliance": {"score": ` + itoa(score("compliance")) + `, "rationale": "r", "strategy": "s"}
		},
		"schwartz_values": [],
		"observations_summary": "` + summary + `",
		"psychology_confidence": ` + itoa(confidence) + `,
		"suggested_questions": ` + questionsJSON(questions) + `
	}`
}

func itoa(n int) string {
	digits := "0123456789"
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{digits[n%10]}, b...)
		n /= 10
	}
	return string(b)
}

func questionsJSON(questions []model.ClarifyingQuestion) string {
	if len(questions) == 0 {
		return "[]"
	}
	out := "["
	for i, q := range questions {
		if i > 0 {
			out += ","
		}
		out += `{"id":"` + q.ID + `","question":"` + q.Question + `","option_a":"` + q.OptionA + `","option_b":"` + q.OptionB + `","psychological_target":"` + q.PsychologicalTarget + `"}`
	}
	out += "]"
	return out
}

const scenarioDNA = `{
	"holistic_summary": "Buyer profile derived for scenario testing.",
	"main_drive": "scenario-specific",
	"communication_style": {"recommended_tone": "adaptive", "keywords_to_use": [], "keywords_to_avoid": []},
	"key_levers": ["safety ratings", "autopilot reliability"],
	"red_flags": [],
	"missing_data_gaps": "",
	"confidence": 80
}`

func scenarioIndicators(temperature, churn int) string {
	return `{
		"purchase_temperature": {"value": ` + itoa(temperature) + `, "rationale": "r", "strategy": "s", "confidence": 80, "risk_factors": []},
		"customer_journey_stage": {"value": "decision", "next_stage": "purchase", "progress_percentage": 80, "confidence": 75, "rationale": "r", "strategy": "s"},
		"churn_risk": {"value": ` + itoa(churn) + `, "rationale": "r", "strategy": "s", "confidence": 70, "risk_factors": ["worried about autopilot safety with children in the car"]},
		"sales_potential": {"value": 120000, "probability": 70, "estimated_timeframe": "1-2 weeks", "rationale": "r", "strategy": "s", "confidence": 70}
	}`
}

func scenarioStrategy(text string, action string) string {
	return `{
		"quick_response": {"id": "qr_s", "text": "` + text + `", "tone": "confident", "key_points": ["value"]},
		"suggested_questions": [{"id": "q_s1", "text": "What matters most to you in this decision?"}],
		"strategic_recommendation": "Tailor the pitch to the observed archetype.",
		"next_best_action": "` + action + `",
		"suggested_actions": [{"action": "` + action + `", "reasoning": "matches observed archetype"}],
		"objection_handling": {"potential_objections": ["price"], "responses": ["a"]},
		"sentiment_score": 7,
		"potential_score": 8,
		"urgency_level": "high"
	}`
}

func newScenarioOrchestrator(psychResp string, strategyResp string) (*pipeline.Orchestrator, *memstore.Store, int64) {
	_ = id.Init(1)
	st := memstore.New()
	ctx := context.Background()

	client, _ := st.CreateClient(ctx, model.Client{Alias: "Scenario Client"})
	session, _ := st.CreateSession(ctx, &client.ID, model.SessionActive)

	orch := pipeline.New(
		st,
		sessionlock.NewInProcess(),
		psychology.New(&llmgw.Fake{Responses: []string{psychResp}}),
		archetype.New("automotive"),
		synthesis.New(&llmgw.Fake{Responses: []string{scenarioDNA}}),
		indicators.New(&llmgw.Fake{Responses: []string{scenarioIndicators(70, 20)}}),
		strategy.New(&llmgw.Fake{Responses: []string{strategyResp}}, nil),
	)

	return orch, st, session.ID
}

var _ = Describe("concrete pipeline scenarios (spec.md §8)", func() {
	It("reads an analytic CFO as a pragmatic analyst", func() {
		psych := psychologyJSON(func(trait string) int {
			switch trait {
			case "conscientiousness", "compliance":
				return 9
			case "dominance", "influence":
				return 3
			case "extraversion":
				return 4
			default:
				return 5
			}
		}, 80, "CFO focused on TCO and fleet economics", nil)

		orch, st, sessionID := newScenarioOrchestrator(psych, scenarioStrategy(
			"Here is the TCO breakdown and the data your finance team will want to see.", "Send a detailed TCO and service-schedule comparison"))

		interaction, err := orch.ProcessObservation(context.Background(),
			sessionID,
			"CFO logistics firm asks about TCO for 25 fleet cars, requests detailed service schedule, says emotions matter but I care about Excel numbers.",
			nil)
		Expect(err).NotTo(HaveOccurred())

		ai := interaction.AIResponse
		Expect(ai.QuickResponse.Text).To(Or(ContainSubstring("data"), ContainSubstring("TCO"), ContainSubstring("cost")))
		Expect(ai.SalesIndicators).NotTo(BeNil())
		Expect(ai.SalesIndicators.PurchaseTemperature.Value).To(BeNumerically(">=", 60))

		sctx, err := st.GetSessionContext(context.Background(), sessionID)
		Expect(err).NotTo(HaveOccurred())
		Expect(sctx.Session.CustomerArchetype).NotTo(BeNil())
		Expect(sctx.Session.CustomerArchetype.Key).To(Equal(model.ArchetypePragmaticAnalyst))
	})

	It("reads a quick-decider CEO as hot with a closing action", func() {
		psych := psychologyJSON(func(trait string) int {
			switch trait {
			case "openness", "influence", "dominance", "extraversion":
				return 9
			default:
				return 5
			}
		}, 85, "CEO wants five cars immediately, skips technical detail", nil)

		orch, _, sessionID := newScenarioOrchestrator(psych, scenarioStrategy(
			"Let's get the paperwork moving today so you can take delivery this week.", "Present the closing offer and propose signing today"))

		interaction, err := orch.ProcessObservation(context.Background(),
			sessionID,
			"CEO startup wants 5 cars immediately, asks only when can I have them, what's the price, sign today or tomorrow, ignores technical detail.",
			nil)
		Expect(err).NotTo(HaveOccurred())

		ai := interaction.AIResponse
		Expect(ai.SalesIndicators.PurchaseTemperature.Level).To(Equal(model.TemperatureHot))
		Expect(ai.NextBestAction).To(Or(ContainSubstring("clos"), ContainSubstring("sign")))
	})

	It("reads a family buyer as a family guardian with a safety-themed concern", func() {
		psych := psychologyJSON(func(trait string) int {
			switch trait {
			case "conscientiousness", "steadiness", "compliance":
				return 9
			default:
				return 4
			}
		}, 75, "Parent asking repeatedly about safety ratings and autopilot with kids in the car", nil)

		orch, st, sessionID := newScenarioOrchestrator(psych, scenarioStrategy(
			"Our safety ratings and driver-assist features are built to protect your family.", "Walk through the top safety ratings and autopilot safeguards"))

		interaction, err := orch.ProcessObservation(context.Background(),
			sessionID,
			"Parent of two children, asks repeatedly about safety ratings, mentions worry about autopilot behaviour with kids in car.",
			nil)
		Expect(err).NotTo(HaveOccurred())

		ai := interaction.AIResponse
		Expect(ai.SalesIndicators.ChurnRisk.RiskFactors).To(ContainElement(ContainSubstring("autopilot")))

		sctx, err := st.GetSessionContext(context.Background(), sessionID)
		Expect(err).NotTo(HaveOccurred())
		Expect(sctx.Session.CustomerArchetype).NotTo(BeNil())
		Expect(sctx.Session.CustomerArchetype.Key).To(Equal(model.ArchetypeFamilyGuardian))
	})

	It("raises confidence after a clarifying question is answered", func() {
		firstPsych := psychologyJSON(func(string) int { return 5 }, 55, "hesitant buyer, underspecified", []model.ClarifyingQuestion{
			{ID: "q_1", Question: "Is the hesitation about price or about the technology itself?", OptionA: "Price", OptionB: "Technology", PsychologicalTarget: "risk_tolerance"},
		})
		secondPsych := psychologyJSON(func(string) int { return 6 }, 82, "buyer clarified the hesitation is about price", nil)

		_ = id.Init(1)
		st := memstore.New()
		ctx := context.Background()
		client, _ := st.CreateClient(ctx, model.Client{Alias: "Clarification Client"})
		session, _ := st.CreateSession(ctx, &client.ID, model.SessionActive)

		psychFake := &llmgw.Fake{Responses: []string{firstPsych, secondPsych}}
		orch := pipeline.New(
			st,
			sessionlock.NewInProcess(),
			psychology.New(psychFake),
			archetype.New("automotive"),
			synthesis.New(&llmgw.Fake{Responses: []string{scenarioDNA, scenarioDNA}}),
			indicators.New(&llmgw.Fake{Responses: []string{scenarioIndicators(50, 30), scenarioIndicators(50, 30)}}),
			strategy.New(&llmgw.Fake{Responses: []string{
				scenarioStrategy("Could you tell me more about what's holding you back?", "Ask a clarifying question"),
				scenarioStrategy("Let's address the price concern directly with a financing option.", "Present financing options"),
			}}, nil),
		)

		first, err := orch.ProcessObservation(ctx, session.ID, "Customer is hesitant.", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.AIResponse.SalesIndicators).NotTo(BeNil())

		sctx, err := st.GetSessionContext(ctx, session.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(sctx.Session.ActiveClarifyingQuestions).To(HaveLen(1))
		firstConfidence := sctx.Session.PsychologyConfidence

		second, err := orch.AnswerClarifyingQuestion(ctx, session.ID, sctx.Session.ActiveClarifyingQuestions[0].ID, "Price")
		Expect(err).NotTo(HaveOccurred())
		Expect(second.UserInput).To(Equal("Price"))

		sctx2, err := st.GetSessionContext(ctx, session.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(sctx2.Session.PsychologyConfidence).To(BeNumerically(">", firstConfidence))
	})
})
