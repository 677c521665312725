package mocks

import (
	"context"

	"studybuddy/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockStudyService struct {
	mock.Mock
}

func (m *MockStudyService) Upload(ctx context.Context, doc model.UploadedDocument) (*model.UploadResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadResult), args.Error(1)
}

func (m *MockStudyService) Explain(ctx context.Context, documentContent, question string) (*model.ExplanationResult, error) {
	args := m.Called(ctx, documentContent, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExplanationResult), args.Error(1)
}

func (m *MockStudyService) GenerateQuiz(ctx context.Context, documentContent string, numQuestions int) (*model.QuizResult, error) {
	args := m.Called(ctx, documentContent, numQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizResult), args.Error(1)
}

func (m *MockStudyService) StudyPlan(ctx context.Context, documentContent string, days int) (*model.StudyPlanResult, error) {
	args := m.Called(ctx, documentContent, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StudyPlanResult), args.Error(1)
}
