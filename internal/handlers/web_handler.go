package handlers

import (
	"html/template"
	"log"
	"net/http"

	"learneasy/internal/models"
	"learneasy/internal/quiz"
	"learneasy/internal/repository"
	"learneasy/internal/ussd"

	"github.com/google/uuid"
)

// playerCookieName identifies anonymous browser players across requests.
const playerCookieName = "player_id"

// WebHandler serves the browser play-through of the quiz
type WebHandler struct {
	players   ussd.PlayerStore
	questions ussd.QuestionSource
	answers   ussd.AnswerChecker
}

// NewWebHandler creates a new web play handler
func NewWebHandler(players ussd.PlayerStore, questions ussd.QuestionSource, answers ussd.AnswerChecker) *WebHandler {
	return &WebHandler{
		players:   players,
		questions: questions,
		answers:   answers,
	}
}

type playData struct {
	Player         *models.Player
	QuestionNumber int
	Question       models.Question
	Labels         []string
}

var playTemplate = template.Must(template.New("play").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>LearnEasy</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
    <h1>LearnEasy: {{.Player.Subject}} Grade {{.Player.Grade}}</h1>
    <p>Points: {{.Player.Points}} | Lives: {{.Player.Lives}}</p>
    <h3>Q{{.QuestionNumber}}: {{.Question.Text}}</h3>
    <form method="POST" action="/web">
        {{range $i, $label := .Labels}}
        <label><input type="radio" name="answer" value="{{$label}}"> {{index $.Question.Options $i}}</label><br>
        {{end}}
        <input type="submit" value="Submit">
    </form>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>LearnEasy</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body>
    <h1>Game Over! Score: {{.Score}}</h1>
    <p><a href="/web">Play Again</a></p>
</body>
</html>
`))

// Play renders the current question, starting a new batch when none is pending
func (h *WebHandler) Play(w http.ResponseWriter, r *http.Request) {
	phone := h.playerIdentity(w, r)

	player, err := h.players.GetOrCreate(phone)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error",
			"Error loading web player", err)
		return
	}

	if !player.HasActiveGame() {
		batch, err := h.questions.UniqueBatch(r.Context(), player.Grade, player.Subject, quiz.BatchSize)
		if err != nil {
			respondWithError(w, http.StatusServiceUnavailable, "Question service unavailable. Try again later.",
				"Error generating web batch", err)
			return
		}
		if err := h.players.StartBatch(phone, batch); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error",
				"Error storing web batch", err)
			return
		}
		player.Questions = batch
		player.Lives = repository.DefaultLives
		player.CurrentQuestion = 0
	}

	question, ok := player.Current()
	if !ok {
		// Stale record with an out-of-range index: clear and restart.
		if err := h.players.EndGame(phone, player.Points, player.Lives); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error",
				"Error resetting web player", err)
			return
		}
		http.Redirect(w, r, "/web", http.StatusSeeOther)
		return
	}

	data := playData{
		Player:         player,
		QuestionNumber: player.CurrentQuestion + 1,
		Question:       question,
		Labels:         models.ChoiceLabels,
	}
	if err := playTemplate.Execute(w, data); err != nil {
		log.Printf("Error rendering play template: %v", err)
	}
}

// Submit scores a submitted answer and advances or ends the game
func (h *WebHandler) Submit(w http.ResponseWriter, r *http.Request) {
	phone := h.playerIdentity(w, r)

	player, err := h.players.GetOrCreate(phone)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error",
			"Error loading web player", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	answer := r.FormValue("answer")
	question, ok := player.Current()
	if !player.HasActiveGame() || !ok || question.OptionForChoice(answer) == "" {
		http.Redirect(w, r, "/web", http.StatusSeeOther)
		return
	}

	isCorrect, _ := h.answers.Evaluate(r.Context(), question, answer)
	if isCorrect {
		player.Points += 10
	} else {
		player.Lives--
	}
	player.CurrentQuestion++

	if player.Lives <= 0 || player.CurrentQuestion >= len(player.Questions) {
		if err := h.players.EndGame(phone, player.Points, player.Lives); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error",
				"Error ending web game", err)
			return
		}
		if err := resultTemplate.Execute(w, map[string]int{"Score": player.Points}); err != nil {
			log.Printf("Error rendering result template: %v", err)
		}
		return
	}

	if err := h.players.UpdateProgress(phone, player.Points, player.Lives, player.CurrentQuestion); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Internal server error",
			"Error saving web progress", err)
		return
	}

	http.Redirect(w, r, "/web", http.StatusSeeOther)
}

// playerIdentity resolves the player key from the phone query parameter or
// an identity cookie, minting a new cookie for first-time browser players.
func (h *WebHandler) playerIdentity(w http.ResponseWriter, r *http.Request) string {
	if phone := r.URL.Query().Get("phone"); phone != "" {
		return phone
	}

	if cookie, err := r.Cookie(playerCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := "web-" + uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
