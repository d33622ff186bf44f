package ussd

import (
	"context"
	"fmt"
	"log"

	"learneasy/internal/models"
	"learneasy/internal/quiz"
)

// Request carries the gateway parameters for one menu exchange. Text is the
// accumulated input since dialogue start; the quiz menu treats it as a flat
// token.
type Request struct {
	SessionID   string
	ServiceCode string
	PhoneNumber string
	Text        string
}

// PlayerStore persists the per-phone session record.
type PlayerStore interface {
	GetOrCreate(phone string) (*models.Player, error)
	StartBatch(phone string, questions []models.Question) error
	UpdateProgress(phone string, points, lives, currentQuestion int) error
	EndGame(phone string, points, lives int) error
}

// QuestionSource produces a batch of questions with pairwise-distinct text.
type QuestionSource interface {
	UniqueBatch(ctx context.Context, grade int, subject string, n int) ([]models.Question, error)
}

// AnswerChecker judges a submitted choice and returns feedback text.
type AnswerChecker interface {
	Evaluate(ctx context.Context, question models.Question, choice string) (bool, string)
}

// Notifier delivers a fire-and-forget text message.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// Machine interprets menu input against the stored session record, advances
// state, and renders the next screen. All dependencies are injected; the
// machine holds no state of its own between requests.
type Machine struct {
	players   PlayerStore
	questions QuestionSource
	answers   AnswerChecker
	sms       Notifier
}

// NewMachine creates a menu state machine with its collaborators.
func NewMachine(players PlayerStore, questions QuestionSource, answers AnswerChecker, sms Notifier) *Machine {
	return &Machine{
		players:   players,
		questions: questions,
		answers:   answers,
		sms:       sms,
	}
}

// Handle processes one menu exchange and returns the rendered screen.
// External-service failures degrade to valid screens; only storage errors
// propagate.
func (m *Machine) Handle(ctx context.Context, req Request) (string, error) {
	player, err := m.players.GetOrCreate(req.PhoneNumber)
	if err != nil {
		return "", fmt.Errorf("failed to load player %s: %w", req.PhoneNumber, err)
	}

	switch req.Text {
	case "":
		return screenMainMenu, nil
	case "1":
		return m.handleStart(ctx, player)
	case "A", "B", "C", "D":
		return m.handleAnswer(ctx, player, req.Text)
	case "2":
		return renderPoints(player.Points), nil
	case "3":
		return screenFarewell, nil
	default:
		return screenInvalidInput, nil
	}
}

// handleStart begins a new game, or resumes the pending one when a batch is
// already stored.
func (m *Machine) handleStart(ctx context.Context, player *models.Player) (string, error) {
	if !player.HasActiveGame() {
		batch, err := m.questions.UniqueBatch(ctx, player.Grade, player.Subject, quiz.BatchSize)
		if err != nil {
			log.Printf("Failed to generate question batch for %s: %v", player.Phone, err)
			return screenServiceUnavailable, nil
		}

		if err := m.players.StartBatch(player.Phone, batch); err != nil {
			return "", fmt.Errorf("failed to start batch for %s: %w", player.Phone, err)
		}

		player.Questions = batch
		player.Lives = startingLives
		player.CurrentQuestion = 0
	}

	question, ok := player.Current()
	if !ok {
		return screenInvalidInput, nil
	}
	return renderQuestion(player.CurrentQuestion, question, ""), nil
}

// handleAnswer scores a submitted choice and advances or ends the game.
func (m *Machine) handleAnswer(ctx context.Context, player *models.Player, choice string) (string, error) {
	if !player.HasActiveGame() {
		return screenNoActiveSession, nil
	}

	question, ok := player.Current()
	if !ok {
		return screenNoActiveSession, nil
	}

	isCorrect, feedback := m.answers.Evaluate(ctx, question, choice)
	if isCorrect {
		player.Points += 10
		feedback = feedbackCorrect
	} else {
		player.Lives--
	}

	if !isCorrect && player.Lives <= 0 {
		if err := m.players.EndGame(player.Phone, player.Points, 0); err != nil {
			return "", fmt.Errorf("failed to end game for %s: %w", player.Phone, err)
		}
		m.notify(ctx, player.Phone, fmt.Sprintf(smsGameOver, player.Points))
		return renderGameOver(player.Points), nil
	}

	player.CurrentQuestion++
	if player.CurrentQuestion >= len(player.Questions) {
		if err := m.players.EndGame(player.Phone, player.Points, player.Lives); err != nil {
			return "", fmt.Errorf("failed to complete session for %s: %w", player.Phone, err)
		}
		m.notify(ctx, player.Phone, fmt.Sprintf(smsSessionComplete, player.Points))
		return renderSessionComplete(player.Points), nil
	}

	if err := m.players.UpdateProgress(player.Phone, player.Points, player.Lives, player.CurrentQuestion); err != nil {
		return "", fmt.Errorf("failed to save progress for %s: %w", player.Phone, err)
	}

	next, _ := player.Current()
	return renderQuestion(player.CurrentQuestion, next, feedback), nil
}

// notify dispatches an SMS summary. Delivery failure is logged, never
// surfaced to the menu response.
func (m *Machine) notify(ctx context.Context, phone, message string) {
	if err := m.sms.Send(ctx, phone, message); err != nil {
		log.Printf("Failed to send SMS to %s: %v", phone, err)
	}
}
