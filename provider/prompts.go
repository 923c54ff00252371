package provider

import (
	"fmt"
	"strings"
)

// routerPrompt classifies the conversation into one of the three response
// modes. The model must answer with a single word.
const routerPrompt = `You are a router for a conversational companion. Read the
recent conversation and decide what kind of response the companion should give
next.

Answer with exactly one word:
- "image" if the user is asking to see something, requests a photo or picture,
  or the conversation naturally calls for showing a visual
- "audio" if the user asks to hear the companion's voice or requests a voice
  message
- "conversation" for everything else

Answer with only the single word, no punctuation or explanation.`

// scenarioPrompt turns the recent conversation into an image-generation
// prompt describing what the companion would photograph right now.
const scenarioPrompt = `Based on the recent conversation below, write a short,
vivid prompt for an image generation model. Describe a single scene from the
companion's point of view, grounded in what was just discussed. Respond with
the prompt text only.`

// summaryPrompt frames the summarization call.
const summaryPrompt = `You are summarizing a conversation between a companion
and a user. Be concise but preserve every fact, preference, plan, and
emotional beat that has been shared.`

// memoryAnalysisPrompt judges whether a message carries durable personal
// information and reformats it for storage.
const memoryAnalysisPrompt = `You extract long-term memories from user
messages. Durable information includes names, relationships, preferences,
locations, jobs, plans, and anything the user would expect a close friend to
remember. Small talk, questions, and transient chatter are not durable.

Respond with JSON only, no code fences:
{"is_important": true|false, "formatted_memory": "<the fact restated in third person, or empty>"}

Example: for "Hi, I'm Alex and I love jazz" respond
{"is_important": true, "formatted_memory": "Is named Alex and loves jazz"}`

// characterCard assembles the system prompt for a response turn from the
// companion's name, current activity, relevant memories, and the rolling
// summary of pruned history.
func characterCard(name, activity, memoryContext, summary string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are %s, a warm, curious machine learning researcher in
San Francisco chatting with a friend over WhatsApp. Keep replies natural and
short, like real texting. Never mention being an AI.`, name)

	if activity != "" {
		fmt.Fprintf(&b, "\n\nRight now you are: %s", activity)
	}
	if memoryContext != "" {
		fmt.Fprintf(&b, "\n\nThings you remember about this person:\n%s", memoryContext)
	}
	if summary != "" {
		fmt.Fprintf(&b, "\n\nSummary of the conversation so far:\n%s", summary)
	}
	return b.String()
}
