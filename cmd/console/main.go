package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"learneasy/internal/config"
	"learneasy/internal/database"
	"learneasy/internal/llm"
	"learneasy/internal/models"
	"learneasy/internal/quiz"
	"learneasy/internal/repository"

	"github.com/joho/godotenv"
)

// Interactive terminal play-through of the same quiz the USSD menu serves.

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.GroqAPIKey,
		Model:   cfg.GroqModel,
		BaseURL: cfg.GroqBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize completion provider: %v", err)
	}

	playerRepo := repository.NewPlayerRepository(db)
	generator := quiz.NewGenerator(provider)
	evaluator := quiz.NewEvaluator(provider)

	reader := bufio.NewReader(os.Stdin)
	fmt.Println("Welcome to LearnEasy! Enter your phone number to start (e.g., test123):")
	phone := readLine(reader)
	if phone == "" {
		log.Fatal("A phone number is required")
	}

	player, err := playerRepo.GetOrCreate(phone)
	if err != nil {
		log.Fatalf("Failed to load player: %v", err)
	}

	ctx := context.Background()
	for {
		fmt.Println("\nMenu: 1) Start Math  2) View Points  3) Exit")
		fmt.Print("Enter choice (1-3): ")

		switch readLine(reader) {
		case "1":
			playRound(ctx, playerRepo, generator, evaluator, player, reader)
		case "2":
			fmt.Printf("Your Points: %d\n", player.Points)
		case "3":
			fmt.Println("Thank you for using LearnEasy!")
			return
		default:
			fmt.Println("Invalid choice! Please enter 1, 2, or 3.")
		}
	}
}

// playRound runs one batch to completion or elimination.
func playRound(ctx context.Context, playerRepo *repository.PlayerRepository, generator *quiz.Generator,
	evaluator *quiz.Evaluator, player *models.Player, reader *bufio.Reader) {

	if !player.HasActiveGame() {
		batch, err := generator.UniqueBatch(ctx, player.Grade, player.Subject, quiz.BatchSize)
		if err != nil {
			fmt.Println("Question service unavailable. Try again later.")
			return
		}
		if err := playerRepo.StartBatch(player.Phone, batch); err != nil {
			log.Printf("Failed to store batch: %v", err)
			return
		}
		player.Questions = batch
		player.Lives = repository.DefaultLives
		player.CurrentQuestion = 0
	}

	for player.CurrentQuestion < len(player.Questions) && player.Lives > 0 {
		question := player.Questions[player.CurrentQuestion]
		fmt.Printf("\nQ%d: %s\n", player.CurrentQuestion+1, question.Text)
		fmt.Printf("A) %s  B) %s\n", question.Options[0], question.Options[1])
		fmt.Printf("C) %s  D) %s\n", question.Options[2], question.Options[3])
		fmt.Print("Enter answer (A, B, C, D): ")

		answer := strings.ToUpper(readLine(reader))
		if question.OptionForChoice(answer) == "" {
			fmt.Println("Invalid answer! Please enter A, B, C, or D.")
			continue
		}

		isCorrect, feedback := evaluator.Evaluate(ctx, question, answer)
		if isCorrect {
			player.Points += 10
			fmt.Println("Correct! +10 points.")
		} else {
			player.Lives--
			fmt.Printf("Incorrect. %s\n", feedback)
			fmt.Printf("Lives remaining: %d\n", player.Lives)
		}

		player.CurrentQuestion++
		if err := playerRepo.UpdateProgress(player.Phone, player.Points, player.Lives, player.CurrentQuestion); err != nil {
			log.Printf("Failed to save progress: %v", err)
		}

		if player.Lives == 0 {
			fmt.Printf("Game Over! Final Score: %d\n", player.Points)
			finishRound(playerRepo, player)
			return
		}
		if player.CurrentQuestion >= len(player.Questions) {
			fmt.Printf("Session Complete! Final Score: %d\n", player.Points)
			finishRound(playerRepo, player)
			return
		}
	}
}

// finishRound clears the pending batch in storage and in memory.
func finishRound(playerRepo *repository.PlayerRepository, player *models.Player) {
	if err := playerRepo.EndGame(player.Phone, player.Points, player.Lives); err != nil {
		log.Printf("Failed to end game: %v", err)
	}
	player.Questions = []models.Question{}
	player.CurrentQuestion = 0
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
