package rag

import (
	"strings"
	"testing"

	"github.com/MohamedRasheqA/teachback/internal/model/chat"
)

func TestAssembleMessagesOrdering(t *testing.T) {
	prior := []chat.Message{
		chat.User("first question"),
		chat.Assistant("first answer"),
		chat.User("second question"),
		chat.Assistant("second answer"),
	}

	messages := AssembleMessages(DefaultSystemPrompt, "some context", prior, "third question")

	if len(messages) != len(prior)+2 {
		t.Fatalf("expected %d messages, got %d", len(prior)+2, len(messages))
	}
	if messages[0].Role != chat.RoleSystem {
		t.Fatalf("expected system message first, got role %q", messages[0].Role)
	}
	for i, msg := range prior {
		if messages[i+1] != msg {
			t.Fatalf("prior turn %d not preserved: got %+v", i, messages[i+1])
		}
	}
	last := messages[len(messages)-1]
	if last.Role != chat.RoleUser || last.Content != "third question" {
		t.Fatalf("expected latest user turn last, got %+v", last)
	}
}

func TestAssembleMessagesSingleSystemMessage(t *testing.T) {
	prior := []chat.Message{chat.User("q"), chat.Assistant("a")}
	messages := AssembleMessages("custom prompt", "", prior, "next")

	systemCount := 0
	for _, msg := range messages {
		if msg.Role == chat.RoleSystem {
			systemCount++
		}
	}
	if systemCount != 1 {
		t.Fatalf("expected exactly one system message, got %d", systemCount)
	}
}

func TestAssembleMessagesInjectsContextBlock(t *testing.T) {
	messages := AssembleMessages("base prompt", "snippet one\n\nsnippet two", nil, "q")

	system := messages[0].Content
	if !strings.HasPrefix(system, "base prompt") {
		t.Fatalf("system message does not start with the prompt: %q", system)
	}
	if !strings.Contains(system, "Documentation Context: snippet one\n\nsnippet two") {
		t.Fatalf("system message missing documentation context block: %q", system)
	}
}

func TestAssembleMessagesEmptyContextStillCoherent(t *testing.T) {
	messages := AssembleMessages("base prompt", "", nil, "q")

	if len(messages) != 2 {
		t.Fatalf("expected system + user, got %d messages", len(messages))
	}
	if !strings.Contains(messages[0].Content, "Documentation Context:") {
		t.Fatalf("expected labeled context block even when empty, got %q", messages[0].Content)
	}
}

func TestAssembleGreetingMessagesAppendsAssistantTurn(t *testing.T) {
	prior := []chat.Message{chat.User("hi"), chat.Assistant("hello!")}
	messages := AssembleGreetingMessages("prompt", prior, "hey", "👋 Hello! How can I assist you today?")

	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	if strings.Contains(messages[0].Content, "Documentation Context") {
		t.Fatalf("greeting path must not inject context, got %q", messages[0].Content)
	}
	last := messages[len(messages)-1]
	if last.Role != chat.RoleAssistant {
		t.Fatalf("expected synthesized assistant turn last, got role %q", last.Role)
	}
}
