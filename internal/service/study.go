package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"studybuddy/internal/extract"
	"studybuddy/internal/generation"
	"studybuddy/internal/model"
	"studybuddy/internal/pkg/textutil"
	"studybuddy/internal/prompt"
)

// Generator produces a schema-valid result for a task. *generation.Client implements it.
type Generator interface {
	Generate(ctx context.Context, task generation.Task, userPrompt string, out any) error
}

// StudyService defines the use cases of the study buddy.
type StudyService interface {
	// Upload extracts the text of an uploaded document and applies the length bounds.
	// Nothing is stored; the caller resubmits the returned content on later calls.
	Upload(ctx context.Context, doc model.UploadedDocument) (*model.UploadResult, error)

	// Explain answers question about documentContent.
	Explain(ctx context.Context, documentContent, question string) (*model.ExplanationResult, error)

	// GenerateQuiz builds numQuestions multiple-choice questions. Zero means the default of 5.
	GenerateQuiz(ctx context.Context, documentContent string, numQuestions int) (*model.QuizResult, error)

	// StudyPlan builds a plan covering days days. Zero means the default of 7.
	StudyPlan(ctx context.Context, documentContent string, days int) (*model.StudyPlanResult, error)
}

type studyService struct {
	gen      Generator
	personas generation.Personas
	log      *zap.Logger
}

// NewStudyService constructs a new StudyService.
func NewStudyService(gen Generator, personas generation.Personas, log *zap.Logger) StudyService {
	if log == nil {
		log = zap.NewNop()
	}
	return &studyService{gen: gen, personas: personas, log: log}
}

func (s *studyService) Upload(_ context.Context, doc model.UploadedDocument) (*model.UploadResult, error) {
	text, err := extract.Document(doc.Data, doc.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Filename, err)
	}
	length := textutil.Len(text)
	s.log.Info("document uploaded",
		zap.String("filename", doc.Filename),
		zap.String("content_type", doc.ContentType),
		zap.Int("length", length),
	)
	return &model.UploadResult{
		Success:  true,
		Filename: doc.Filename,
		Content:  text,
		Length:   length,
	}, nil
}

func (s *studyService) Explain(ctx context.Context, documentContent, question string) (*model.ExplanationResult, error) {
	p, err := prompt.Build(prompt.KindExplain, documentContent, prompt.Params{Question: question})
	if err != nil {
		return nil, err
	}
	var out model.ExplanationResult
	if err := s.gen.Generate(ctx, s.personas.ExplainTask(), p, &out); err != nil {
		return nil, err
	}
	s.log.Info("explanation generated", zap.String("question", textutil.Truncate(question, 50)))
	return &out, nil
}

func (s *studyService) GenerateQuiz(ctx context.Context, documentContent string, numQuestions int) (*model.QuizResult, error) {
	if numQuestions <= 0 {
		numQuestions = prompt.DefaultNumQuestions
	}
	p, err := prompt.Build(prompt.KindQuiz, documentContent, prompt.Params{NumQuestions: numQuestions})
	if err != nil {
		return nil, err
	}
	var out model.QuizResult
	if err := s.gen.Generate(ctx, s.personas.QuizTask(numQuestions), p, &out); err != nil {
		return nil, err
	}
	s.log.Info("quiz generated", zap.Int("questions", len(out.Questions)))
	return &out, nil
}

func (s *studyService) StudyPlan(ctx context.Context, documentContent string, days int) (*model.StudyPlanResult, error) {
	if days <= 0 {
		days = prompt.DefaultDays
	}
	p, err := prompt.Build(prompt.KindStudyPlan, documentContent, prompt.Params{Days: days})
	if err != nil {
		return nil, err
	}
	var out model.StudyPlanResult
	if err := s.gen.Generate(ctx, s.personas.StudyPlanTask(days), p, &out); err != nil {
		return nil, err
	}
	s.log.Info("study plan generated", zap.Int("days", days))
	return &out, nil
}
