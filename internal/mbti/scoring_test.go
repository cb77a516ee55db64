package mbti

import (
	"errors"
	"fmt"
	"testing"
)

// prefixAxisOf resolves ids of the form "<axis>_<n>" the way the
// question catalog does.
func prefixAxisOf(id string) (Axis, bool) {
	if len(id) < 2 {
		return "", false
	}
	switch id[:2] {
	case "ei":
		return AxisEI, true
	case "sn":
		return AxisSN, true
	case "tf":
		return AxisTF, true
	case "jp":
		return AxisJP, true
	}
	return "", false
}

func fullAnswerSet(value int) []Answer {
	answers := make([]Answer, 0, 24)
	for _, prefix := range []string{"ei", "sn", "tf", "jp"} {
		for i := 1; i <= 6; i++ {
			answers = append(answers, Answer{
				QuestionID: fmt.Sprintf("%s_%d", prefix, i),
				Value:      value,
			})
		}
	}
	return answers
}

func TestScoreAllMinimum(t *testing.T) {
	res, err := Score(fullAnswerSet(1), prefixAxisOf)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Type != "ESTJ" {
		t.Errorf("type = %s, want ESTJ", res.Type)
	}
	if res.Confidence <= 80 {
		t.Errorf("confidence = %d, want > 80", res.Confidence)
	}
	for _, axis := range Axes {
		if got := res.Scores.ByAxis(axis); got != -100 {
			t.Errorf("score[%s] = %d, want -100", axis, got)
		}
	}
}

func TestScoreAllMaximum(t *testing.T) {
	res, err := Score(fullAnswerSet(7), prefixAxisOf)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Type != "INFP" {
		t.Errorf("type = %s, want INFP", res.Type)
	}
	for _, axis := range Axes {
		if got := res.Scores.ByAxis(axis); got != 100 {
			t.Errorf("score[%s] = %d, want 100", axis, got)
		}
	}
}

func TestScoreAllNeutral(t *testing.T) {
	res, err := Score(fullAnswerSet(4), prefixAxisOf)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Type != "ESTJ" {
		t.Errorf("type = %s, want ESTJ (zero scores take the first pole)", res.Type)
	}
	if res.Scores != (Scores{}) {
		t.Errorf("scores = %+v, want all zero", res.Scores)
	}
	if res.Confidence >= 30 {
		t.Errorf("confidence = %d, want < 30", res.Confidence)
	}
}

func TestScoreDeterministic(t *testing.T) {
	answers := fullAnswerSet(6)
	first, err := Score(answers, prefixAxisOf)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Score(answers, prefixAxisOf)
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if again != first {
			t.Fatalf("run %d produced %+v, first run %+v", i, again, first)
		}
	}
}

func TestScorePartialAnswers(t *testing.T) {
	// One strong answer on a single axis; the other axes score zero.
	answers := []Answer{{QuestionID: "ei_1", Value: 7}}
	res, err := Score(answers, prefixAxisOf)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Scores.EI != 100 {
		t.Errorf("EI = %d, want 100", res.Scores.EI)
	}
	if res.Scores.SN != 0 || res.Scores.TF != 0 || res.Scores.JP != 0 {
		t.Errorf("unanswered axes scored: %+v", res.Scores)
	}
	if res.Type != "ISTJ" {
		t.Errorf("type = %s, want ISTJ", res.Type)
	}
	if res.Confidence != 25 {
		t.Errorf("confidence = %d, want 25", res.Confidence)
	}
}

func TestScoreBounds(t *testing.T) {
	for value := MinValue; value <= MaxValue; value++ {
		res, err := Score(fullAnswerSet(value), prefixAxisOf)
		if err != nil {
			t.Fatalf("Score(value=%d): %v", value, err)
		}
		for _, axis := range Axes {
			got := res.Scores.ByAxis(axis)
			if got < -100 || got > 100 {
				t.Errorf("value %d: score[%s] = %d out of range", value, axis, got)
			}
		}
		if res.Confidence < 0 || res.Confidence > 100 {
			t.Errorf("value %d: confidence = %d out of range", value, res.Confidence)
		}
	}
}

func TestScoreRejectsOutOfRangeValues(t *testing.T) {
	for _, value := range []int{0, 8, -1, 100} {
		_, err := Score([]Answer{{QuestionID: "ei_1", Value: value}}, prefixAxisOf)
		if !errors.Is(err, ErrValueOutOfRange) {
			t.Errorf("value %d: err = %v, want ErrValueOutOfRange", value, err)
		}
	}
}

func TestScoreEmptyAnswers(t *testing.T) {
	if _, err := Score(nil, prefixAxisOf); !errors.Is(err, ErrNoAnswers) {
		t.Errorf("err = %v, want ErrNoAnswers", err)
	}
}

func TestScoreIgnoresUnknownQuestions(t *testing.T) {
	answers := append(fullAnswerSet(4), Answer{QuestionID: "xx_1", Value: 7})
	res, err := Score(answers, prefixAxisOf)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Scores != (Scores{}) {
		t.Errorf("unknown question affected scores: %+v", res.Scores)
	}
}

func TestParseCode(t *testing.T) {
	if c, err := ParseCode(" intj "); err != nil || c != "INTJ" {
		t.Errorf("ParseCode(intj) = %q, %v", c, err)
	}
	for _, bad := range []string{"", "XXXX", "INT", "INTJX"} {
		if _, err := ParseCode(bad); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("ParseCode(%q) err = %v, want ErrInvalidCode", bad, err)
		}
	}
}
