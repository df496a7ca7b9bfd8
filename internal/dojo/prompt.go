package dojo

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPromptTemplate = `You are the training assistant inside the Tesla sales co-pilot's AI Dojo. An expert is teaching you new domain knowledge or correcting a mistake through conversation. Mode: %s.

Decide how to respond:
- If the expert's message is ambiguous or underspecified, ask a clarifying question (response_type="question").
- If you have enough information to turn the message into a reusable knowledge nugget, propose the structured nugget for the expert to approve (response_type="confirmation", with structured_data set).
- Otherwise, acknowledge or summarize (response_type="status").

structured_data, when present, must have the shape:
{"title": string, "content": string, "knowledge_type": one of general|objection|closing|product|pricing|competition|demo|follow_up|technical, "archetype": string or null, "tags": [string], "source": string}

Respond with a single JSON object:
{"response": string, "response_type": "question"|"confirmation"|"status", "structured_data": object or null, "confidence_level": integer 0-100, "suggested_follow_up": [string]}
%s`

func buildSystemPrompt(mode string, clientContext map[string]any) string {
	contextBlock := ""
	if len(clientContext) > 0 {
		if b, err := json.Marshal(clientContext); err == nil {
			contextBlock = fmt.Sprintf("\nThe expert's message concerns this client context: %s", string(b))
		}
	}
	return fmt.Sprintf(systemPromptTemplate, mode, contextBlock)
}

func buildUserPrompt(message string, history []string) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Recent training conversation:\n")
		b.WriteString(strings.Join(history, "\n"))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Expert: %s", message)
	return b.String()
}
