package quizgen

import (
	"fmt"
	"strings"
)

// MaxPromptAnswers is the largest avoid list that is still injected into
// the prompt. Past this size the list stops improving output and starts
// eating the context window; filtering and tuning take over instead.
const MaxPromptAnswers = 75

const systemPrompt = `You are a trivia quiz writer.

Rules:
- Generate a list of trivia questions at the requested difficulty and topic.
- Each question must have a single, definitive correct answer.
- "answer" is the most canonical form of the correct answer.
- "alternative_answers" lists common variations, synonyms, and acceptable
  alternative spellings of the answer. Provide an empty list if there are
  no reasonable alternatives.
- Questions must be self-contained and answerable with a short phrase.
- Never reuse an answer within the same list.`

// buildSystemPrompt appends the avoid list to the base system prompt when
// it fits within maxAvoid entries.
func buildSystemPrompt(input GenerateInput, maxAvoid int) string {
	if input.Avoid == nil || input.Avoid.Len() == 0 || input.Avoid.Len() > maxAvoid {
		return systemPrompt
	}

	members := input.Avoid.Members()
	if len(members) > maxAvoid {
		members = members[:maxAvoid]
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nIMPORTANT: Avoid generating questions whose primary answer (case-insensitive) is one of the following:\n")
	for _, m := range members {
		b.WriteString("- ")
		b.WriteString(m)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// buildUserMessage constructs the user message for one generation call.
func buildUserMessage(input GenerateInput, avoidInjected bool) string {
	topic := "general knowledge"
	if input.Topic != "" {
		topic = input.Topic
	}

	msg := fmt.Sprintf("Generate %d %s trivia questions about %s now.", input.Count, input.Difficulty, topic)
	if avoidInjected {
		msg += " Do not use any of the listed answers."
	}
	return msg
}
