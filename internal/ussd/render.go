package ussd

import (
	"fmt"
	"strings"

	"learneasy/internal/models"
)

// startingLives is the life count granted at the start of every batch.
const startingLives = 3

// Screen prefixes required by the gateway: CON continues the dialogue, END
// terminates it. The gateway matches on the first token, so these must be
// preserved exactly.
const (
	prefixContinue = "CON "
	prefixEnd      = "END "
)

const (
	screenMainMenu           = prefixContinue + "Welcome to LearnEasy! Reply:\n1) Start Math\n2) View Points\n3) Exit"
	screenFarewell           = prefixEnd + "Thank you for using LearnEasy!"
	screenInvalidInput       = prefixEnd + "Invalid input. Try again."
	screenNoActiveSession    = prefixEnd + "No active session. Start a new game with 1."
	screenServiceUnavailable = prefixEnd + "Service unavailable. Please try again later."
)

const (
	feedbackCorrect    = "Correct! +10 points."
	smsGameOver        = "Game Over! Your score: %d. Dial USSD to play again!"
	smsSessionComplete = "Session Complete! Your score: %d. Dial USSD to play again!"
)

// renderQuestion renders a question screen, optionally prefixed with
// feedback from the previous answer.
func renderQuestion(index int, question models.Question, feedback string) string {
	var b strings.Builder
	b.WriteString(prefixContinue)
	if feedback != "" {
		b.WriteString(feedback)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Q%d: %s\n", index+1, question.Text)
	for i, label := range models.ChoiceLabels {
		if i < len(question.Options) {
			fmt.Fprintf(&b, "%s) %s\n", label, question.Options[i])
		}
	}
	b.WriteString("Reply with A, B, C, or D")
	return b.String()
}

// renderPoints renders the points summary with the follow-up menu.
func renderPoints(points int) string {
	return fmt.Sprintf("%sYour Points: %d\nReply:\n1) Start Math\n3) Exit", prefixContinue, points)
}

// renderGameOver renders the lives-exhausted terminal screen.
func renderGameOver(points int) string {
	return fmt.Sprintf("%sGame Over! Score: %d\nDial again to play.", prefixEnd, points)
}

// renderSessionComplete renders the batch-finished terminal screen.
func renderSessionComplete(points int) string {
	return fmt.Sprintf("%sSession complete! Score: %d\nDial again to play.", prefixEnd, points)
}
