package model

// UploadedDocument is the raw file received on upload.
// It lives only for the duration of the request; nothing is persisted.
type UploadedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UploadResult is returned to the client, which resubmits Content on later calls.
type UploadResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Length   int    `json:"length"`
}

// ExplainRequest asks for an explanation of a question about the document.
type ExplainRequest struct {
	DocumentContent string `json:"document_content" validate:"required"`
	Question        string `json:"question" validate:"required"`
}

// QuizRequest asks for a multiple-choice quiz. NumQuestions defaults to 5 when omitted.
type QuizRequest struct {
	DocumentContent string `json:"document_content" validate:"required"`
	NumQuestions    *int   `json:"num_questions,omitempty" validate:"omitempty,min=1,max=50"`
}

// StudyPlanRequest asks for a day-by-day plan. DaysUntilExam defaults to 7 when omitted.
type StudyPlanRequest struct {
	DocumentContent string `json:"document_content" validate:"required"`
	DaysUntilExam   *int   `json:"days_until_exam,omitempty" validate:"omitempty,min=1,max=90"`
}
