package session

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/careerforge/careerforge/internal/domains/interview"
	"github.com/careerforge/careerforge/pkg/engine"
)

// SessionEntity is the GORM mapping for interview sessions. The
// transcript-shaped fields are stored as JSON columns rather than
// normalized tables; they are only ever read back whole.
type SessionEntity struct {
	ID              string          `gorm:"primaryKey;type:char(36);not null"`
	UserID          string          `gorm:"column:user_id;type:char(36);index"`
	Role            string          `gorm:"type:varchar(255);not null"`
	InterviewType   string          `gorm:"column:interview_type;type:varchar(64);not null"`
	State           string          `gorm:"type:varchar(32);not null"`
	Context         json.RawMessage `gorm:"type:json"`
	History         json.RawMessage `gorm:"type:json"`
	Answers         json.RawMessage `gorm:"type:json"`
	Evaluations     json.RawMessage `gorm:"type:json"`
	CurrentQuestion int             `gorm:"column:current_question;not null;default:0"`
	Summary         string          `gorm:"type:text"`
	TechnicalScore  float64         `gorm:"column:technical_score"`
	CommScore       float64         `gorm:"column:communication_score"`
	RelevanceScore  float64         `gorm:"column:relevance_score"`
	CreatedAt       time.Time       `gorm:"autoCreateTime(3)"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime(3)"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

func (SessionEntity) TableName() string {
	return "interview_sessions"
}

func (e *SessionEntity) ToDomain() (*interview.Session, error) {
	s := &interview.Session{
		ID:              e.ID,
		UserID:          e.UserID,
		Role:            e.Role,
		InterviewType:   e.InterviewType,
		State:           e.State,
		CurrentQuestion: e.CurrentQuestion,
		Summary:         e.Summary,
		TechnicalScore:  e.TechnicalScore,
		CommScore:       e.CommScore,
		RelevanceScore:  e.RelevanceScore,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if len(e.Context) > 0 {
		if err := json.Unmarshal(e.Context, &s.Context); err != nil {
			return nil, err
		}
	}
	if len(e.History) > 0 {
		if err := json.Unmarshal(e.History, &s.History); err != nil {
			return nil, err
		}
	}
	if len(e.Answers) > 0 {
		if err := json.Unmarshal(e.Answers, &s.Answers); err != nil {
			return nil, err
		}
	}
	if len(e.Evaluations) > 0 {
		if err := json.Unmarshal(e.Evaluations, &s.Evaluations); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func NewSessionEntityFromDomain(s *interview.Session) (*SessionEntity, error) {
	contextJSON, err := json.Marshal(s.Context)
	if err != nil {
		return nil, err
	}
	historyJSON, err := json.Marshal(orEmpty(s.History))
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(orEmptyAnswers(s.Answers))
	if err != nil {
		return nil, err
	}
	evaluationsJSON, err := json.Marshal(orEmptyEvals(s.Evaluations))
	if err != nil {
		return nil, err
	}
	return &SessionEntity{
		ID:              s.ID,
		UserID:          s.UserID,
		Role:            s.Role,
		InterviewType:   s.InterviewType,
		State:           s.State,
		Context:         contextJSON,
		History:         historyJSON,
		Answers:         answersJSON,
		Evaluations:     evaluationsJSON,
		CurrentQuestion: s.CurrentQuestion,
		Summary:         s.Summary,
		TechnicalScore:  s.TechnicalScore,
		CommScore:       s.CommScore,
		RelevanceScore:  s.RelevanceScore,
	}, nil
}

func orEmpty(v []engine.Exchange) []engine.Exchange {
	if v == nil {
		return []engine.Exchange{}
	}
	return v
}

func orEmptyAnswers(v []interview.AnswerRecord) []interview.AnswerRecord {
	if v == nil {
		return []interview.AnswerRecord{}
	}
	return v
}

func orEmptyEvals(v []engine.Evaluation) []engine.Evaluation {
	if v == nil {
		return []engine.Evaluation{}
	}
	return v
}
