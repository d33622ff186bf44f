package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"learneasy/internal/llm"
	"learneasy/internal/models"
)

// BatchSize is the number of questions in one play-through.
const BatchSize = 5

// attemptsPerQuestion bounds batch generation: a batch of n questions gets at
// most attemptsPerQuestion*n completion calls before giving up. Without a cap
// a provider stuck on the fallback question would be re-asked forever, since
// every fallback shares one text and all but the first are rejected as
// duplicates.
const attemptsPerQuestion = 4

// ErrServiceUnavailable is returned when batch generation cannot collect
// enough unique questions within the attempt budget.
var ErrServiceUnavailable = errors.New("question service unavailable")

// Generator produces multiple-choice questions from a completion provider,
// degrading to a fixed fallback question on any failure.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a question generator backed by the given provider.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Fallback returns the constant question used when generation fails.
// It is always valid, so callers never see an error from Question.
func Fallback() models.Question {
	return models.Question{
		Text:    "What is 300 + 200?",
		Options: []string{"400", "500", "600", "700"},
		Correct: "500",
	}
}

// Question generates a single question for the given grade and subject.
// Parse failures and call failures both degrade to the fallback question.
func (g *Generator) Question(ctx context.Context, grade int, subject string) models.Question {
	seed := rand.IntN(1000) + 1
	prompt := fmt.Sprintf(
		"Generate a unique Grade %d %s question (Kenyan curriculum, addition/subtraction). "+
			"Use a varied context (e.g., shopping, farming, travel, school) and ensure the question is distinct (seed: %d). "+
			"Provide a multiple-choice question with 4 options and correct answer. "+
			"Format: Question|OptionA|OptionB|OptionC|OptionD|Correct",
		grade, subject, seed)

	response, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		log.Printf("Error generating question: %v", err)
		return Fallback()
	}

	question, err := parseQuestion(response)
	if err != nil {
		log.Printf("Invalid question response %q: %v", response, err)
		return Fallback()
	}

	return question
}

// UniqueBatch collects n questions with pairwise-distinct text. Duplicates
// are discarded and regenerated within a bounded attempt budget; if the
// budget is exhausted before n unique questions exist, it fails with
// ErrServiceUnavailable rather than serving a batch with repeats.
func (g *Generator) UniqueBatch(ctx context.Context, grade int, subject string, n int) ([]models.Question, error) {
	seen := make(map[string]bool, n)
	batch := make([]models.Question, 0, n)

	maxAttempts := attemptsPerQuestion * n
	for attempts := 0; attempts < maxAttempts && len(batch) < n; attempts++ {
		question := g.Question(ctx, grade, subject)
		if seen[question.Text] {
			log.Printf("Duplicate question detected: %s, regenerating", question.Text)
			continue
		}
		seen[question.Text] = true
		batch = append(batch, question)
	}

	if len(batch) < n {
		return nil, fmt.Errorf("collected %d of %d unique questions: %w", len(batch), n, ErrServiceUnavailable)
	}
	return batch, nil
}

// parseQuestion splits a pipe-delimited completion into a question.
// The response must contain exactly 6 non-empty fields:
// question|A|B|C|D|correct.
func parseQuestion(response string) (models.Question, error) {
	parts := strings.Split(strings.TrimSpace(response), "|")
	if want := models.OptionCount + 2; len(parts) != want {
		return models.Question{}, fmt.Errorf("expected %d fields, got %d", want, len(parts))
	}

	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
		if parts[i] == "" {
			return models.Question{}, fmt.Errorf("field %d is empty", i+1)
		}
	}

	return models.Question{
		Text:    parts[0],
		Options: []string{parts[1], parts[2], parts[3], parts[4]},
		Correct: parts[5],
	}, nil
}
