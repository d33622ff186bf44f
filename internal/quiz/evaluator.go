package quiz

import (
	"context"
	"fmt"
	"strings"

	"learneasy/internal/llm"
	"learneasy/internal/models"
)

// Evaluator judges submitted answers against a question's recorded correct
// option using a completion call. Failures degrade to a negative verdict
// with the error text as feedback, never to a crash or retry.
type Evaluator struct {
	provider llm.Provider
}

// NewEvaluator creates an answer evaluator backed by the given provider.
func NewEvaluator(provider llm.Provider) *Evaluator {
	return &Evaluator{provider: provider}
}

// Evaluate classifies the submitted choice as correct or incorrect and
// returns short feedback text. Correctness is determined by the literal word
// "Correct" appearing in the model's raw response.
func (e *Evaluator) Evaluate(ctx context.Context, question models.Question, choice string) (bool, string) {
	prompt := fmt.Sprintf(
		"Evaluate if '%s' is correct for '%s' with options %v. Correct: %s. "+
			"Provide feedback (under 100 chars) if incorrect.",
		choice, question.Text, question.Options, question.Correct)

	response, err := e.provider.Complete(ctx, prompt)
	if err != nil {
		return false, fmt.Sprintf("Error: %v", err)
	}

	return strings.Contains(response, "Correct"), response
}
