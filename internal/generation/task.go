package generation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"studybuddy/internal/prompt"
)

// Task pairs a persona with the output schema for one kind of request.
// It is a plain value; build one per request and pass it to Client.Generate.
type Task struct {
	Kind       prompt.Kind
	Persona    string
	SchemaName string
	Schema     map[string]any
}

// Personas are the role descriptions given to the model as system context.
type Personas struct {
	Explain   string `yaml:"explain"`
	Quiz      string `yaml:"quiz"`
	StudyPlan string `yaml:"study_plan"`
}

// DefaultPersonas returns the built-in role descriptions.
func DefaultPersonas() Personas {
	return Personas{
		Explain: "You are a helpful study buddy AI assistant. Your job is to explain concepts " +
			"from study materials in a clear, simple, and engaging way. Break down complex topics into " +
			"digestible parts. Provide relevant examples and highlight key concepts. Always be encouraging " +
			"and supportive.",
		Quiz: "You are a quiz generator AI. Create thoughtful multiple-choice questions " +
			"based on study material. Each question should have 4 options with one correct answer. " +
			"Provide clear explanations for correct answers. Questions should test understanding, not " +
			"just memorization.",
		StudyPlan: "You are a study planner AI. Create realistic, achievable daily study plans " +
			"based on the content provided. Break down topics into manageable daily tasks. Include review " +
			"sessions and practice time. Be encouraging and realistic about time commitments.",
	}
}

// LoadPersonas returns the defaults overridden by any non-empty entry in the YAML file at path.
// An empty path returns the defaults.
func LoadPersonas(path string) (Personas, error) {
	p := DefaultPersonas()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read personas file: %w", err)
	}
	var override Personas
	if err := yaml.Unmarshal(b, &override); err != nil {
		return p, fmt.Errorf("parse personas file: %w", err)
	}
	if override.Explain != "" {
		p.Explain = override.Explain
	}
	if override.Quiz != "" {
		p.Quiz = override.Quiz
	}
	if override.StudyPlan != "" {
		p.StudyPlan = override.StudyPlan
	}
	return p, nil
}

// ExplainTask describes an ExplanationResult.
func (p Personas) ExplainTask() Task {
	return Task{
		Kind:       prompt.KindExplain,
		Persona:    p.Explain,
		SchemaName: "explanation",
		Schema: object(map[string]any{
			"explanation":  stringType(),
			"key_concepts": arrayOf(stringType(), 0, 0),
			"examples":     arrayOf(stringType(), 0, 0),
		}, "explanation"),
	}
}

// QuizTask describes a QuizResult with exactly n questions of exactly 4 options.
func (p Personas) QuizTask(n int) Task {
	question := object(map[string]any{
		"question":       stringType(),
		"options":        arrayOf(stringType(), 4, 4),
		"correct_answer": stringType(),
		"explanation":    stringType(),
	}, "question", "options", "correct_answer", "explanation")

	return Task{
		Kind:       prompt.KindQuiz,
		Persona:    p.Quiz,
		SchemaName: "quiz",
		Schema: object(map[string]any{
			"questions": arrayOf(question, n, n),
		}, "questions"),
	}
}

// StudyPlanTask describes a StudyPlanResult with exactly days entries, each with at least one task.
func (p Personas) StudyPlanTask(days int) Task {
	entry := object(map[string]any{
		"day":   stringType(),
		"tasks": arrayOf(stringType(), 1, 0),
	}, "day", "tasks")

	return Task{
		Kind:       prompt.KindStudyPlan,
		Persona:    p.StudyPlan,
		SchemaName: "study_plan",
		Schema: object(map[string]any{
			"daily_plan": arrayOf(entry, days, days),
		}, "daily_plan"),
	}
}

func stringType() map[string]any {
	return map[string]any{"type": "string"}
}

// arrayOf builds an array schema; zero bounds are left out.
func arrayOf(items map[string]any, minItems, maxItems int) map[string]any {
	s := map[string]any{"type": "array", "items": items}
	if minItems > 0 {
		s["minItems"] = minItems
	}
	if maxItems > 0 {
		s["maxItems"] = maxItems
	}
	return s
}

func object(props map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}
