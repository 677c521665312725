// Package prompt renders the task instructions sent to the model.
// Build is pure: the same inputs always produce the same prompt.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"studybuddy/internal/pkg/textutil"
)

// Kind selects the template, persona and output schema of a generation task.
type Kind string

const (
	KindExplain   Kind = "explain"
	KindQuiz      Kind = "quiz"
	KindStudyPlan Kind = "study-plan"
)

const (
	// ExcerptChars bounds how much of the document is embedded in a prompt.
	ExcerptChars = 3000

	DefaultNumQuestions = 5
	DefaultDays         = 7
)

// Params carries the task-specific inputs. Zero counts fall back to the defaults.
type Params struct {
	Question     string
	NumQuestions int
	Days         int
}

const header = `Based on the following study material:

{{.Excerpt}}

`

var templates = map[Kind]*template.Template{
	KindExplain: template.Must(template.New("explain").Parse(header +
		`Answer this question in a clear, simple way: {{.Question}}

Provide:
1. A detailed explanation
2. Key concepts (3-5 important terms or ideas)
3. 2-3 practical examples to illustrate the concept
`)),
	KindQuiz: template.Must(template.New("quiz").Parse(header +
		`Create {{.NumQuestions}} multiple-choice questions that test understanding.

For each question:
- Write a clear question
- Provide exactly 4 options (A, B, C, D)
- Indicate the correct answer
- Provide a brief explanation of why it's correct

Questions should cover different aspects of the material and test comprehension, not just memorization.
`)),
	KindStudyPlan: template.Must(template.New("study-plan").Parse(header +
		`Create a {{.Days}}-day study plan to master this content.

For each day:
- Provide the day label (e.g., "Day 1", "Day 2")
- List 3-5 specific tasks/topics to study
- Include time for practice and review
- Make it realistic and achievable

The plan should be progressive, building from basics to advanced concepts.
`)),
}

type data struct {
	Excerpt      string
	Question     string
	NumQuestions int
	Days         int
}

// Build renders the prompt for kind. Only the first ExcerptChars characters of
// documentText are embedded.
func Build(kind Kind, documentText string, p Params) (string, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown task kind %q", kind)
	}
	if p.NumQuestions <= 0 {
		p.NumQuestions = DefaultNumQuestions
	}
	if p.Days <= 0 {
		p.Days = DefaultDays
	}

	var b strings.Builder
	err := tmpl.Execute(&b, data{
		Excerpt:      textutil.Truncate(documentText, ExcerptChars),
		Question:     p.Question,
		NumQuestions: p.NumQuestions,
		Days:         p.Days,
	})
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", kind, err)
	}
	return b.String(), nil
}
