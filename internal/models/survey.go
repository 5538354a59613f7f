package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SurveyStatus string

const (
	StatusEmpty     SurveyStatus = "empty"
	StatusPending   SurveyStatus = "pending"
	StatusReady     SurveyStatus = "ready"
	StatusPublished SurveyStatus = "published"
	StatusFinished  SurveyStatus = "finished"
)

// statusRank orders the lifecycle. Status only ever moves forward.
var statusRank = map[SurveyStatus]int{
	StatusEmpty:     0,
	StatusPending:   1,
	StatusReady:     2,
	StatusPublished: 3,
	StatusFinished:  4,
}

type SurveyTheme string

const (
	ThemeDark    SurveyTheme = "dark"
	ThemeForest  SurveyTheme = "forest"
	ThemeIceland SurveyTheme = "iceland"
	ThemeLight   SurveyTheme = "light"
	ThemeOcean   SurveyTheme = "ocean"
	ThemeSunrise SurveyTheme = "sunrise"
)

// Themes lists the selectable survey themes.
var Themes = []SurveyTheme{ThemeDark, ThemeForest, ThemeIceland, ThemeLight, ThemeOcean, ThemeSunrise}

// ValidTheme reports whether theme is one of the selectable themes.
func ValidTheme(theme SurveyTheme) bool {
	for _, t := range Themes {
		if t == theme {
			return true
		}
	}
	return false
}

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidSurveyData = errors.New("Invalid survey data!")
)

// Survey is a named collection of ordered questions with a publish window.
type Survey struct {
	ID           string       `gorm:"primaryKey;type:uuid"`
	CustomerID   string       `gorm:"type:uuid;not null;index"`
	Customer     Customer     `gorm:"foreignKey:CustomerID"`
	Name         string       `gorm:"not null"`
	Theme        SurveyTheme  `gorm:"type:varchar(20);default:light"`
	Status       SurveyStatus `gorm:"type:varchar(20);default:empty;index"`
	From         *time.Time
	To           *time.Time
	Timezone     string `gorm:"default:UTC"`
	Redirect     *string
	FinalMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE"`
}

func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// CanTransition reports whether moving from the current status to next is a
// forward move through the lifecycle. Deletion is allowed from any state and
// is not modeled here.
func (s *Survey) CanTransition(next SurveyStatus) bool {
	cur, ok := statusRank[s.Status]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// Editable reports whether survey features and questions may still be
// mutated. Only empty and pending surveys are editable.
func (s *Survey) Editable() bool {
	return s.Status == StatusEmpty || s.Status == StatusPending
}

// CheckReady validates the preconditions for the pending -> ready transition:
// pending status, at least one question, every question structurally valid,
// and from < to.
func (s *Survey) CheckReady() error {
	if s.Status != StatusPending {
		return ErrInvalidSurveyData
	}
	if len(s.Questions) == 0 {
		return ErrInvalidSurveyData
	}
	if s.From == nil || s.To == nil || !s.From.Before(*s.To) {
		return ErrInvalidSurveyData
	}
	for i := range s.Questions {
		if err := s.Questions[i].Validate(); err != nil {
			return ErrInvalidSurveyData
		}
	}
	return nil
}

// SweepPublish is the pure transition rule behind the automatic publish
// sweep: ready surveys whose window has opened become published, everything
// else is unchanged.
func SweepPublish(status SurveyStatus, from *time.Time, now time.Time) SurveyStatus {
	if status == StatusReady && from != nil && !from.After(now) {
		return StatusPublished
	}
	return status
}

// SweepFinish is the pure transition rule behind the automatic finish sweep:
// published surveys whose window has closed become finished.
func SweepFinish(status SurveyStatus, to *time.Time, now time.Time) SurveyStatus {
	if status == StatusPublished && to != nil && !to.After(now) {
		return StatusFinished
	}
	return status
}
