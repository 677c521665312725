package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplanationResult_Validate(t *testing.T) {
	t.Run("fills empty lists", func(t *testing.T) {
		r := &ExplanationResult{Explanation: "Photosynthesis turns light into sugar."}
		require.NoError(t, r.Validate())

		b, err := json.Marshal(r)
		require.NoError(t, err)
		assert.JSONEq(t, `{"explanation":"Photosynthesis turns light into sugar.","key_concepts":[],"examples":[]}`, string(b))
	})

	t.Run("empty explanation", func(t *testing.T) {
		r := &ExplanationResult{Explanation: "  "}
		assert.Error(t, r.Validate())
	})
}

func TestQuizResult_Validate(t *testing.T) {
	ok := QuizQuestion{
		Question:      "2+2?",
		Options:       []string{"1", "2", "3", "4"},
		CorrectAnswer: "4",
	}
	bad := QuizQuestion{
		Question:      "Capital of France?",
		Options:       []string{"Berlin", "Madrid", "Rome", "Lisbon"},
		CorrectAnswer: "Paris",
	}

	assert.NoError(t, (&QuizResult{Questions: []QuizQuestion{ok}}).Validate())

	err := (&QuizResult{Questions: []QuizQuestion{ok, bad}}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions[1]")
	assert.Contains(t, err.Error(), "Paris")
}
