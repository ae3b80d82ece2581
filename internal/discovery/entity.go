package discovery

const (
	TypeMultipleChoice = "multiple_choice_question"
	TypeTrueFalse      = "true_false_question"
)

func Answerable(questionType string) bool {
	return questionType == TypeMultipleChoice || questionType == TypeTrueFalse
}

// KnowledgeBase is everything learned about one quiz. The JSON field names
// match the files written by earlier versions of the tool so existing
// quiz-data directories keep loading.
type KnowledgeBase struct {
	Origin    string            `json:"origin"`
	CourseID  string            `json:"courseID"`
	QuizID    string            `json:"quizID"`
	Questions []*QuestionRecord `json:"questions"`
	Attempts  []AttemptRecord   `json:"submissions"`
}

type QuestionRecord struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Choices     []Choice `json:"answers"`
	Tried       []int64  `json:"attempted"`
	CorrectID   *int64   `json:"correctID"`
	Encountered int      `json:"encountered"`
}

type Choice struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type AttemptRecord struct {
	Attempt         int    `json:"attempt"`
	SubmissionID    int64  `json:"id"`
	ValidationToken string `json:"validationToken"`
}

// Question is a question as observed during an attempt.
type Question struct {
	ID      int64
	Type    string
	Text    string
	Choices []Choice
}

type Submitted struct {
	QuestionID int64
	AnswerID   int64
}

type Result struct {
	QuestionID int64
	Correct    bool
}

type Lookup int

const (
	Found Lookup = iota
	Inserted
)

func NewKnowledgeBase(origin, courseID, quizID string) *KnowledgeBase {
	return &KnowledgeBase{
		Origin:    origin,
		CourseID:  courseID,
		QuizID:    quizID,
		Questions: []*QuestionRecord{},
		Attempts:  []AttemptRecord{},
	}
}

func (kb *KnowledgeBase) Question(id int64) *QuestionRecord {
	for _, q := range kb.Questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// LookupOrInsert returns the record for q, creating an empty one in
// first-discovery order when the id has not been seen.
func (kb *KnowledgeBase) LookupOrInsert(q Question) (*QuestionRecord, Lookup) {
	if rec := kb.Question(q.ID); rec != nil {
		return rec, Found
	}

	rec := &QuestionRecord{
		ID:      q.ID,
		Type:    q.Type,
		Text:    q.Text,
		Choices: append([]Choice(nil), q.Choices...),
		Tried:   []int64{},
	}
	kb.Questions = append(kb.Questions, rec)
	return rec, Inserted
}

// IsSatisfied reports whether every known question has a known correct
// answer and has been seen at least twice. A single lucky guess on a
// true/false question is not enough.
func (kb *KnowledgeBase) IsSatisfied() bool {
	if len(kb.Questions) == 0 {
		return false
	}
	for _, q := range kb.Questions {
		if q.Encountered < 2 || q.CorrectID == nil {
			return false
		}
	}
	return true
}

type Stats struct {
	Seen       int `json:"seen"`
	Known      int `json:"known"`
	Confirming int `json:"confirming"`
}

func (kb *KnowledgeBase) Stats() Stats {
	s := Stats{Seen: len(kb.Questions)}
	for _, q := range kb.Questions {
		if q.CorrectID != nil {
			s.Known++
		}
		if q.Encountered == 1 {
			s.Confirming++
		}
	}
	return s
}

func (kb *KnowledgeBase) Clone() *KnowledgeBase {
	out := &KnowledgeBase{
		Origin:    kb.Origin,
		CourseID:  kb.CourseID,
		QuizID:    kb.QuizID,
		Questions: make([]*QuestionRecord, 0, len(kb.Questions)),
		Attempts:  append([]AttemptRecord{}, kb.Attempts...),
	}
	for _, q := range kb.Questions {
		out.Questions = append(out.Questions, q.clone())
	}
	return out
}

func (q *QuestionRecord) clone() *QuestionRecord {
	c := *q
	c.Choices = append([]Choice{}, q.Choices...)
	c.Tried = append([]int64{}, q.Tried...)
	if q.CorrectID != nil {
		id := *q.CorrectID
		c.CorrectID = &id
	}
	return &c
}

func (q *QuestionRecord) HasTried(id int64) bool {
	for _, t := range q.Tried {
		if t == id {
			return true
		}
	}
	return false
}
