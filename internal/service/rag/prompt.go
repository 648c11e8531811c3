package rag

import (
	"math/rand"

	"github.com/MohamedRasheqA/teachback/internal/model/chat"
)

// DefaultSystemPrompt is used whenever no custom prompt is supplied by the
// request or the stored settings.
const DefaultSystemPrompt = `You are a specialized assistant with the following guidelines:

1. Conversational Approach:
   - Maintain a friendly and natural dialog flow
   - Use a warm, approachable tone
   - Show genuine interest in user questions
   - Engage in a way that encourages continued conversation

2. Content Restrictions:
   - Base all responses strictly on the provided context and conversation history
   - Do not use any external knowledge
   - Avoid making assumptions beyond what is explicitly stated
   - Format numerical data and statistics exactly as they appear in the context

3. Response Guidelines:
   - When information is available: Provide accurate answers while maintaining a conversational tone
   - When information is missing: Say "I wish I could help with that, but I don't have enough information in the provided documentation to answer your question. Is there something else you'd like to know about?"
   - For follow-up questions: Verify that previous responses were based on documented content

4. Quality Standards:
   - Ensure accuracy while remaining approachable
   - Balance professionalism with conversational friendliness
   - Maintain consistency in information provided
   - Keep responses clear and engaging`

// GreetingResponses is the fixed set a greeting turn is answered from.
// Exported so tests can assert membership.
var GreetingResponses = []string{
	"👋 Hello! How can I assist you today?",
	"Hi there! 😊 What can I help you with?",
	"👋 Hey! Ready to help you with any questions!",
	"Hello! 🌟 How may I be of assistance?",
	"Hi! 😃 Looking forward to helping you today!",
}

func pickGreeting(rng *rand.Rand) string {
	return GreetingResponses[rng.Intn(len(GreetingResponses))]
}

// AssembleMessages builds the ordered message list sent to the completion
// model: one system message first, prior turns in their original order, then
// the latest user turn. When contextText is non-empty it is appended to the
// system text as a labeled documentation block; an empty contextText still
// yields a coherent prompt because the system text instructs the model to
// self-report missing information.
func AssembleMessages(systemPrompt, contextText string, prior []chat.Message, userQuery string) []chat.Message {
	systemContent := systemPrompt + "\n\nDocumentation Context: " + contextText

	messages := make([]chat.Message, 0, len(prior)+2)
	messages = append(messages, chat.System(systemContent))
	messages = append(messages, prior...)
	messages = append(messages, chat.User(userQuery))
	return messages
}

// AssembleGreetingMessages builds the greeting-path message list: the same
// system text with no injected context, prior turns, the user turn, and the
// synthesized assistant turn appended before streaming.
func AssembleGreetingMessages(systemPrompt string, prior []chat.Message, userQuery, greetingResponse string) []chat.Message {
	messages := make([]chat.Message, 0, len(prior)+3)
	messages = append(messages, chat.System(systemPrompt))
	messages = append(messages, prior...)
	messages = append(messages, chat.User(userQuery))
	messages = append(messages, chat.Assistant(greetingResponse))
	return messages
}
