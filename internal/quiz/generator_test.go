package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"learneasy/internal/llm"
)

func TestParseQuestion(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
		wantText string
	}{
		{
			name:     "valid response",
			response: "What is 12 + 8?|18|20|22|24|20",
			wantText: "What is 12 + 8?",
		},
		{
			name:     "valid with surrounding whitespace",
			response: "  Amina buys 3 mangoes for 15 shillings each. Total? | 40 | 45 | 50 | 55 | 45 ",
			wantText: "Amina buys 3 mangoes for 15 shillings each. Total?",
		},
		{
			name:     "too few fields",
			response: "What is 1 + 1?|1|2|3",
			wantErr:  true,
		},
		{
			name:     "too many fields",
			response: "Q|1|2|3|4|5|extra",
			wantErr:  true,
		},
		{
			name:     "empty field",
			response: "What is 1 + 1?|1||3|4|2",
			wantErr:  true,
		},
		{
			name:     "prose instead of format",
			response: "Sure! Here is a question about farming.",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, err := parseQuestion(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseQuestion() expected error, got %+v", question)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseQuestion() error: %v", err)
			}
			if question.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", question.Text, tt.wantText)
			}
			if len(question.Options) != 4 {
				t.Errorf("Options length = %d, want 4", len(question.Options))
			}
		})
	}
}

func TestQuestionFallsBackOnError(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Err: errors.New("connection refused")})
	generator := NewGenerator(provider)

	question := generator.Question(context.Background(), 4, "Math")

	fallback := Fallback()
	if question.Text != fallback.Text {
		t.Errorf("Text = %q, want fallback %q", question.Text, fallback.Text)
	}
	if question.Correct != "500" {
		t.Errorf("Correct = %q, want 500", question.Correct)
	}
}

func TestQuestionFallsBackOnMalformedOutput(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: "not a pipe delimited response"})
	generator := NewGenerator(provider)

	question := generator.Question(context.Background(), 4, "Math")

	if question.Text != Fallback().Text {
		t.Errorf("Text = %q, want fallback", question.Text)
	}
}

func TestUniqueBatchCollectsDistinctQuestions(t *testing.T) {
	var responses []llm.MockResponse
	for i := 0; i < BatchSize; i++ {
		responses = append(responses, llm.MockResponse{
			Content: fmt.Sprintf("What is %d + %d?|%d|%d|%d|%d|%d", i, i, 2*i, 2*i+1, 2*i+2, 2*i+3, 2*i),
		})
	}
	provider := llm.NewMockProvider(responses...)
	generator := NewGenerator(provider)

	batch, err := generator.UniqueBatch(context.Background(), 4, "Math", BatchSize)
	if err != nil {
		t.Fatalf("UniqueBatch() error: %v", err)
	}
	if len(batch) != BatchSize {
		t.Fatalf("batch length = %d, want %d", len(batch), BatchSize)
	}

	seen := make(map[string]bool)
	for _, question := range batch {
		if seen[question.Text] {
			t.Errorf("duplicate question text in batch: %q", question.Text)
		}
		seen[question.Text] = true
	}
}

func TestUniqueBatchSkipsDuplicates(t *testing.T) {
	provider := llm.NewMockProvider(
		llm.MockResponse{Content: "What is 1 + 1?|1|2|3|4|2"},
		llm.MockResponse{Content: "What is 1 + 1?|1|2|3|4|2"},
		llm.MockResponse{Content: "What is 2 + 2?|2|3|4|5|4"},
	)
	generator := NewGenerator(provider)

	batch, err := generator.UniqueBatch(context.Background(), 4, "Math", 2)
	if err != nil {
		t.Fatalf("UniqueBatch() error: %v", err)
	}
	if len(batch) != 2 {
		t.Fatalf("batch length = %d, want 2", len(batch))
	}
	if batch[0].Text == batch[1].Text {
		t.Errorf("batch contains duplicate text %q", batch[0].Text)
	}
}

func TestUniqueBatchTerminatesUnderConstantFallback(t *testing.T) {
	// An exhausted provider yields the fallback question on every call.
	// The attempt budget must end the loop with an explicit error instead
	// of regenerating forever.
	provider := llm.NewMockProvider()
	generator := NewGenerator(provider)

	_, err := generator.UniqueBatch(context.Background(), 4, "Math", BatchSize)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("UniqueBatch() error = %v, want ErrServiceUnavailable", err)
	}

	if provider.CallCount() != attemptsPerQuestion*BatchSize {
		t.Errorf("CallCount = %d, want %d", provider.CallCount(), attemptsPerQuestion*BatchSize)
	}
}
