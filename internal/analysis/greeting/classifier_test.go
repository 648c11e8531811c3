package greeting

import "testing"

func TestIsGreetingMatchesOpeners(t *testing.T) {
	positives := []string{
		"hi",
		"Hello there",
		"hey, quick question",
		"Good morning!",
		"  greetings  ",
		"HOW ARE YOU?",
		"what's up",
		"sup",
		"Hola amigo",
		"bonjour",
		"Ciao",
	}

	for _, input := range positives {
		if !IsGreeting(input) {
			t.Fatalf("expected %q to classify as greeting", input)
		}
	}
}

func TestIsGreetingRejectsQuestions(t *testing.T) {
	negatives := []string{
		"What is AWP?",
		"explain the discharge instructions",
		"say hello world in Go",
		"highway driving rules",
		"superb work",
		"",
	}

	for _, input := range negatives {
		if IsGreeting(input) {
			t.Fatalf("expected %q not to classify as greeting", input)
		}
	}
}
