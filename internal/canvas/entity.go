package canvas

type Submission struct {
	ID              int64  `json:"id"`
	Attempt         int    `json:"attempt"`
	ValidationToken string `json:"validation_token"`
}

type Answer struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type Question struct {
	ID      int64    `json:"id"`
	Type    string   `json:"question_type"`
	Text    string   `json:"question_text"`
	Answers []Answer `json:"answers"`
	// Only populated by FetchResults.
	Correct bool `json:"correct"`
}

type AnswerSubmission struct {
	QuestionID int64 `json:"id"`
	AnswerID   int64 `json:"answer"`
}

type startResponse struct {
	QuizSubmissions []Submission `json:"quiz_submissions"`
}

type questionsResponse struct {
	Questions *[]Question `json:"quiz_submission_questions"`
}

type submitRequest struct {
	Attempt         int                `json:"attempt"`
	ValidationToken string             `json:"validation_token"`
	QuizQuestions   []AnswerSubmission `json:"quiz_questions,omitempty"`
}
