package generation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/model"
	"studybuddy/internal/prompt"
)

func TestTasks(t *testing.T) {
	p := DefaultPersonas()

	tests := []struct {
		name       string
		task       Task
		kind       prompt.Kind
		schemaName string
		persona    string
	}{
		{"explain", p.ExplainTask(), prompt.KindExplain, "explanation", p.Explain},
		{"quiz", p.QuizTask(5), prompt.KindQuiz, "quiz", p.Quiz},
		{"study plan", p.StudyPlanTask(7), prompt.KindStudyPlan, "study_plan", p.StudyPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.task.Kind)
			assert.Equal(t, tt.schemaName, tt.task.SchemaName)
			assert.Equal(t, tt.persona, tt.task.Persona)
			assert.Equal(t, "object", tt.task.Schema["type"])
		})
	}
}

func TestStudyPlanTask_ExactDays(t *testing.T) {
	task := DefaultPersonas().StudyPlanTask(2)

	var out model.StudyPlanResult
	ok := `{"daily_plan":[{"day":"Day 1","tasks":["Read chapter 1"]},{"day":"Day 2","tasks":["Review"]}]}`
	require.NoError(t, coerce(ok, task.Schema, &out))
	assert.Len(t, out.DailyPlan, 2)

	tooFew := `{"daily_plan":[{"day":"Day 1","tasks":["Read"]}]}`
	assert.Error(t, coerce(tooFew, task.Schema, &out))

	noTasks := `{"daily_plan":[{"day":"Day 1","tasks":[]},{"day":"Day 2","tasks":["Review"]}]}`
	assert.Error(t, coerce(noTasks, task.Schema, &out))
}

func TestQuizTask_FourOptions(t *testing.T) {
	task := DefaultPersonas().QuizTask(1)

	var out model.QuizResult
	three := `{"questions":[{"question":"Q","options":["A","B","C"],"correct_answer":"A","explanation":"x"}]}`
	assert.Error(t, coerce(three, task.Schema, &out))

	missing := `{"questions":[{"question":"Q","options":["A","B","C","D"],"correct_answer":"A"}]}`
	assert.Error(t, coerce(missing, task.Schema, &out))
}

func TestLoadPersonas(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		p, err := LoadPersonas("")
		require.NoError(t, err)
		assert.Equal(t, DefaultPersonas(), p)
	})

	t.Run("partial override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "personas.yaml")
		require.NoError(t, os.WriteFile(path, []byte("quiz: You write tricky exam questions.\n"), 0o600))

		p, err := LoadPersonas(path)
		require.NoError(t, err)
		assert.Equal(t, "You write tricky exam questions.", p.Quiz)
		assert.Equal(t, DefaultPersonas().Explain, p.Explain)
		assert.Equal(t, DefaultPersonas().StudyPlan, p.StudyPlan)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPersonas(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "personas.yaml")
		require.NoError(t, os.WriteFile(path, []byte("quiz: [unterminated"), 0o600))
		_, err := LoadPersonas(path)
		assert.Error(t, err)
	})
}
