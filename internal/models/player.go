package models

// OptionCount is the number of answer choices on every question.
const OptionCount = 4

// ChoiceLabels are the reply tokens accepted for an answer, in option order.
var ChoiceLabels = []string{"A", "B", "C", "D"}

// Question is a single generated multiple-choice question. The JSON field
// names match the serialized form stored in the players table.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct string   `json:"correct"`
}

// OptionForChoice returns the option text for a choice letter (A-D).
// Returns "" if the letter or the options slice is malformed.
func (q Question) OptionForChoice(choice string) string {
	for i, label := range ChoiceLabels {
		if label == choice && i < len(q.Options) {
			return q.Options[i]
		}
	}
	return ""
}

// Player is the per-phone session record. One row per phone number, created
// lazily on first contact and never deleted.
type Player struct {
	Phone           string
	Grade           int
	Subject         string
	Points          int
	Lives           int
	CurrentQuestion int
	Questions       []Question
}

// HasActiveGame reports whether a question batch is pending.
func (p *Player) HasActiveGame() bool {
	return len(p.Questions) > 0
}

// Current returns the question at the current index. The caller must ensure
// an active game exists; returns false if the index is out of range.
func (p *Player) Current() (Question, bool) {
	if p.CurrentQuestion < 0 || p.CurrentQuestion >= len(p.Questions) {
		return Question{}, false
	}
	return p.Questions[p.CurrentQuestion], true
}
