package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	"learneasy/internal/llm"
	"learneasy/internal/models"
)

var evalQuestion = models.Question{
	Text:    "What is 300 + 200?",
	Options: []string{"400", "500", "600", "700"},
	Correct: "500",
}

func TestEvaluateCorrectVerdict(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantCorrect bool
	}{
		{
			name:        "plain correct",
			response:    "Correct! B is the right answer.",
			wantCorrect: true,
		},
		{
			name:        "correct mentioned mid-sentence",
			response:    "That is Correct, well done.",
			wantCorrect: true,
		},
		{
			name:        "incorrect with feedback",
			response:    "Not quite. 300 + 200 = 500, so B was the answer.",
			wantCorrect: false,
		},
		{
			name:        "lowercase correct does not match",
			response:    "That answer is correct.",
			wantCorrect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := llm.NewMockProvider(llm.MockResponse{Content: tt.response})
			evaluator := NewEvaluator(provider)

			isCorrect, feedback := evaluator.Evaluate(context.Background(), evalQuestion, "B")
			if isCorrect != tt.wantCorrect {
				t.Errorf("Evaluate() correct = %v, want %v", isCorrect, tt.wantCorrect)
			}
			if feedback != tt.response {
				t.Errorf("feedback = %q, want raw response", feedback)
			}
		})
	}
}

func TestEvaluateDegradesOnError(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Err: errors.New("rate limited")})
	evaluator := NewEvaluator(provider)

	isCorrect, feedback := evaluator.Evaluate(context.Background(), evalQuestion, "A")
	if isCorrect {
		t.Error("Evaluate() = correct, want incorrect on call failure")
	}
	if !strings.HasPrefix(feedback, "Error: ") {
		t.Errorf("feedback = %q, want Error: prefix", feedback)
	}
}

func TestEvaluatePromptIncludesAnswerContext(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: "Correct"})
	evaluator := NewEvaluator(provider)

	evaluator.Evaluate(context.Background(), evalQuestion, "B")

	if len(provider.Prompts) != 1 {
		t.Fatalf("prompt count = %d, want 1", len(provider.Prompts))
	}
	prompt := provider.Prompts[0]
	for _, want := range []string{"'B'", evalQuestion.Text, "Correct: 500"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}
}
