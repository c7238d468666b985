package quiz

import (
	"math"
	"testing"
)

func TestSessionWalksAllQuestions(t *testing.T) {
	s := NewSession()
	total := len(Questions())

	for i := 0; i < total; i++ {
		q, ok := s.Current()
		if !ok {
			t.Fatalf("ran out of questions at %d", i)
		}
		if q.Text == "" || q.Type == "" {
			t.Fatalf("malformed question: %#v", q)
		}
		done, err := s.Answer(1)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if done != (i == total-1) {
			t.Fatalf("unexpected done=%v at question %d", done, i)
		}
	}

	if _, ok := s.Current(); ok {
		t.Fatalf("expected no current question after completion")
	}
	if _, err := s.Answer(1); err == nil {
		t.Fatalf("expected error answering a finished session")
	}
}

func TestAnswerRejectsOutOfScaleValues(t *testing.T) {
	s := NewSession()
	if _, err := s.Answer(-1); err == nil {
		t.Fatalf("expected error for negative value")
	}
	if _, err := s.Answer(4); err == nil {
		t.Fatalf("expected error for value above scale")
	}
	answered, _ := s.Progress()
	if answered != 0 {
		t.Fatalf("rejected answers must not advance, got %d", answered)
	}
}

func TestResultPicksDominantTemperament(t *testing.T) {
	s := NewSession()
	// Max out every sanguine question, minimum for the rest.
	for {
		q, ok := s.Current()
		if !ok {
			break
		}
		value := 0
		if q.Type == Sanguine {
			value = 3
		}
		if _, err := s.Answer(value); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	res := s.Result()
	if res.Dominant != Sanguine {
		t.Fatalf("expected sanguine dominant, got %s", res.Dominant)
	}
	if math.Abs(res.Percent[Sanguine]-100) > 0.001 {
		t.Fatalf("expected 100%% sanguine, got %v", res.Percent[Sanguine])
	}
	for _, other := range []Temperament{Choleric, Melancholic, Phlegmatic} {
		if res.Percent[other] != 0 {
			t.Fatalf("expected 0%% for %s, got %v", other, res.Percent[other])
		}
	}
}

func TestResultPercentagesSumToHundred(t *testing.T) {
	s := NewSession()
	values := []int{3, 2, 1, 0}
	i := 0
	for {
		if _, ok := s.Current(); !ok {
			break
		}
		if _, err := s.Answer(values[i%len(values)]); err != nil {
			t.Fatalf("answer: %v", err)
		}
		i++
	}

	res := s.Result()
	sum := 0.0
	for _, pct := range res.Percent {
		sum += pct
	}
	if math.Abs(sum-100) > 0.001 {
		t.Fatalf("percentages sum to %v, want 100", sum)
	}
}

func TestResultOnEmptyTallyIsDeterministic(t *testing.T) {
	s := NewSession()
	res := s.Result()
	if res.Dominant != Choleric {
		t.Fatalf("expected first-in-order dominant on empty tally, got %s", res.Dominant)
	}
	for _, pct := range res.Percent {
		if pct != 0 {
			t.Fatalf("expected zero profile, got %#v", res.Percent)
		}
	}
}
