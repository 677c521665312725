package model

import (
	"errors"
	"fmt"
	"strings"
)

// ExplanationResult is the structured answer to a question about the document.
type ExplanationResult struct {
	Explanation string   `json:"explanation"`
	KeyConcepts []string `json:"key_concepts"`
	Examples    []string `json:"examples"`
}

// Validate rejects an empty explanation and fills the optional lists so they encode as [].
func (r *ExplanationResult) Validate() error {
	if strings.TrimSpace(r.Explanation) == "" {
		return errors.New("explanation is empty")
	}
	if r.KeyConcepts == nil {
		r.KeyConcepts = []string{}
	}
	if r.Examples == nil {
		r.Examples = []string{}
	}
	return nil
}

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type QuizResult struct {
	Questions []QuizQuestion `json:"questions"`
}

// Validate checks that every correct answer is one of its question's options.
func (r *QuizResult) Validate() error {
	var errs []error
	for i, q := range r.Questions {
		if !q.hasOption(q.CorrectAnswer) {
			errs = append(errs, fmt.Errorf("questions[%d]: correct_answer %q is not one of the options", i, q.CorrectAnswer))
		}
	}
	return errors.Join(errs...)
}

func (q QuizQuestion) hasOption(answer string) bool {
	answer = strings.TrimSpace(answer)
	for _, o := range q.Options {
		if strings.TrimSpace(o) == answer {
			return true
		}
	}
	return false
}

type DailyPlanEntry struct {
	Day   string   `json:"day"`
	Tasks []string `json:"tasks"`
}

type StudyPlanResult struct {
	DailyPlan []DailyPlanEntry `json:"daily_plan"`
}
