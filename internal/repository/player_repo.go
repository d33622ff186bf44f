package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"learneasy/internal/database"
	"learneasy/internal/models"
)

// Defaults applied when a player record is created on first contact.
const (
	DefaultGrade   = 4
	DefaultSubject = "Math"
	DefaultLives   = 3
)

// PlayerRepository handles player record database operations
type PlayerRepository struct {
	db *database.DB
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetByPhone retrieves a player record by phone number.
// Returns (nil, nil) when no record exists.
func (r *PlayerRepository) GetByPhone(phone string) (*models.Player, error) {
	query := `
		SELECT phone, grade, subject, points, lives, current_question, session_questions
		FROM players
		WHERE phone = ?
	`

	player := &models.Player{}
	var questionsJSON string

	err := r.db.QueryRow(query, phone).Scan(
		&player.Phone,
		&player.Grade,
		&player.Subject,
		&player.Points,
		&player.Lives,
		&player.CurrentQuestion,
		&questionsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	player.Questions, err = unmarshalQuestions(questionsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session questions for %s: %w", phone, err)
	}

	return player, nil
}

// Create inserts a new player record with default values
func (r *PlayerRepository) Create(phone string) (*models.Player, error) {
	query := `
		INSERT INTO players (phone, grade, subject, points, lives, current_question, session_questions)
		VALUES (?, ?, ?, 0, ?, 0, '[]')
	`

	if _, err := r.db.Exec(query, phone, DefaultGrade, DefaultSubject, DefaultLives); err != nil {
		return nil, err
	}

	return &models.Player{
		Phone:     phone,
		Grade:     DefaultGrade,
		Subject:   DefaultSubject,
		Lives:     DefaultLives,
		Questions: []models.Question{},
	}, nil
}

// GetOrCreate looks up a player record, creating it on first contact
func (r *PlayerRepository) GetOrCreate(phone string) (*models.Player, error) {
	player, err := r.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if player != nil {
		return player, nil
	}
	return r.Create(phone)
}

// StartBatch stores a fresh question batch and resets lives and question index
func (r *PlayerRepository) StartBatch(phone string, questions []models.Question) error {
	questionsJSON, err := marshalQuestions(questions)
	if err != nil {
		return fmt.Errorf("failed to encode session questions: %w", err)
	}

	query := `
		UPDATE players
		SET lives = ?, current_question = 0, session_questions = ?
		WHERE phone = ?
	`
	_, err = r.db.Exec(query, DefaultLives, questionsJSON, phone)
	return err
}

// UpdateProgress persists mid-game state after a scored answer
func (r *PlayerRepository) UpdateProgress(phone string, points, lives, currentQuestion int) error {
	query := `
		UPDATE players
		SET points = ?, lives = ?, current_question = ?
		WHERE phone = ?
	`
	_, err := r.db.Exec(query, points, lives, currentQuestion, phone)
	return err
}

// EndGame clears the pending batch and resets the question index, persisting
// the final points and lives in the same statement
func (r *PlayerRepository) EndGame(phone string, points, lives int) error {
	query := `
		UPDATE players
		SET points = ?, lives = ?, current_question = 0, session_questions = '[]'
		WHERE phone = ?
	`
	_, err := r.db.Exec(query, points, lives, phone)
	return err
}

func marshalQuestions(questions []models.Question) (string, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalQuestions(questionsJSON string) ([]models.Question, error) {
	if questionsJSON == "" {
		return []models.Question{}, nil
	}
	var questions []models.Question
	if err := json.Unmarshal([]byte(questionsJSON), &questions); err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return questions, nil
}
