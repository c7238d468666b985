// Package quiz implements the temperament self-test: a fixed question set
// where every question feeds one of four temperaments and answers are scored
// on a 0..3 scale. Pure arithmetic, nothing is persisted.
package quiz

import "fmt"

type Temperament string

const (
	Choleric    Temperament = "choleric"
	Melancholic Temperament = "melancholic"
	Sanguine    Temperament = "sanguine"
	Phlegmatic  Temperament = "phlegmatic"
)

// temperamentOrder fixes iteration order for deterministic results; the
// first entry wins ties.
var temperamentOrder = []Temperament{Choleric, Melancholic, Sanguine, Phlegmatic}

type Question struct {
	Text string
	Type Temperament
}

func Questions() []Question {
	return []Question{
		{"Do you make decisions quickly?", Choleric},
		{"Are you prone to frequent mood swings?", Melancholic},
		{"Do you make new acquaintances easily?", Sanguine},
		{"Are you more comfortable working alone?", Phlegmatic},
		{"Are you energetic and active?", Choleric},
		{"Do you often reflect on your emotions?", Melancholic},
		{"Are you usually positive and cheerful?", Sanguine},
		{"Are you patient and calm?", Phlegmatic},
		{"Do you lose patience quickly?", Choleric},
		{"Do you think through every detail?", Melancholic},
		{"Do you easily meet new people at parties?", Sanguine},
		{"Do you avoid conflicts?", Phlegmatic},
		{"Do you often take the lead?", Choleric},
		{"Do you worry about small things?", Melancholic},
		{"Do you look at the world with optimism?", Sanguine},
		{"Do you rarely express your emotions?", Phlegmatic},
	}
}

type Answer struct {
	Label string
	Value int
}

// AnswerScale is the fixed four-step answer scale, weakest first.
func AnswerScale() []Answer {
	return []Answer{
		{"Not at all", 0},
		{"Sometimes", 1},
		{"Often", 2},
		{"Always", 3},
	}
}

// Session walks the fixed question list and tallies weighted scores.
type Session struct {
	questions []Question
	index     int
	scores    map[Temperament]int
}

func NewSession() *Session {
	return &Session{
		questions: Questions(),
		scores:    make(map[Temperament]int, len(temperamentOrder)),
	}
}

// Current returns the question awaiting an answer, or false when the
// session is finished.
func (s *Session) Current() (Question, bool) {
	if s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Progress reports answered and total question counts.
func (s *Session) Progress() (int, int) {
	return s.index, len(s.questions)
}

func (s *Session) Done() bool {
	return s.index >= len(s.questions)
}

// Answer scores the current question and advances. It reports whether the
// session is now complete; values outside the scale are an error.
func (s *Session) Answer(value int) (bool, error) {
	if s.Done() {
		return true, fmt.Errorf("quiz: session already complete")
	}
	if value < 0 || value > 3 {
		return false, fmt.Errorf("quiz: answer value %d out of range", value)
	}
	q := s.questions[s.index]
	s.scores[q.Type] += value
	s.index++
	return s.Done(), nil
}

type Result struct {
	Dominant Temperament
	Scores   map[Temperament]int
	Percent  map[Temperament]float64
}

// Result classifies the tallied scores. An all-zero tally still yields a
// deterministic dominant temperament and a zero profile.
func (s *Session) Result() Result {
	total := 0
	for _, t := range temperamentOrder {
		total += s.scores[t]
	}
	safeTotal := total
	if safeTotal == 0 {
		safeTotal = 1
	}

	out := Result{
		Dominant: temperamentOrder[0],
		Scores:   make(map[Temperament]int, len(temperamentOrder)),
		Percent:  make(map[Temperament]float64, len(temperamentOrder)),
	}
	best := -1
	for _, t := range temperamentOrder {
		score := s.scores[t]
		out.Scores[t] = score
		out.Percent[t] = float64(score) / float64(safeTotal) * 100
		if score > best {
			best = score
			out.Dominant = t
		}
	}
	return out
}
