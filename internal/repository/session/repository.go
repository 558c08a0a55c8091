package session

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/careerforge/careerforge/internal/domains/interview"
)

type GormSessionRepo struct {
	db *gorm.DB
}

func NewGormSessionRepo(db *gorm.DB) interview.SessionRepository {
	return &GormSessionRepo{db: db}
}

// Create implements interview.SessionRepository
func (g *GormSessionRepo) Create(s *interview.Session) error {
	entity, err := NewSessionEntityFromDomain(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := g.db.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	s.CreatedAt = entity.CreatedAt
	s.UpdatedAt = entity.UpdatedAt
	return nil
}

// Get implements interview.SessionRepository
func (g *GormSessionRepo) Get(id string) (*interview.Session, error) {
	var entity SessionEntity
	if err := g.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interview.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s, err := entity.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return s, nil
}

// Update implements interview.SessionRepository
func (g *GormSessionRepo) Update(s *interview.Session) error {
	entity, err := NewSessionEntityFromDomain(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	result := g.db.Model(&SessionEntity{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"state":               entity.State,
		"context":             entity.Context,
		"history":             entity.History,
		"answers":             entity.Answers,
		"evaluations":         entity.Evaluations,
		"current_question":    entity.CurrentQuestion,
		"summary":             entity.Summary,
		"technical_score":     entity.TechnicalScore,
		"communication_score": entity.CommScore,
		"relevance_score":     entity.RelevanceScore,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return interview.ErrSessionNotFound
	}
	return nil
}

// List implements interview.SessionRepository
func (g *GormSessionRepo) List() ([]interview.Session, error) {
	var entities []SessionEntity
	if err := g.db.Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	out := make([]interview.Session, 0, len(entities))
	for _, e := range entities {
		s, err := e.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to decode session %s: %w", e.ID, err)
		}
		out = append(out, *s)
	}
	return out, nil
}
