package models

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionType string

const (
	TypeButtonsGroup      QuestionType = "buttons-group"
	TypeCheckbox          QuestionType = "checkbox"
	TypeDatePicker        QuestionType = "date-picker"
	TypeDropdownList      QuestionType = "dropdown-list"
	TypeEmail             QuestionType = "email"
	TypeFeedback          QuestionType = "feedback"
	TypeLongText          QuestionType = "long-text"
	TypeMultipleSelection QuestionType = "multiple-selection"
	TypeNumber            QuestionType = "number"
	TypePhone             QuestionType = "phone"
	TypeRange             QuestionType = "range"
	TypeRating            QuestionType = "rating"
	TypeSingleSelection   QuestionType = "single-selection"
	TypeSlider            QuestionType = "slider"
	TypeText              QuestionType = "text"
	TypeTimePicker        QuestionType = "time-picker"
)

// QuestionTypes lists every selectable question kind.
var QuestionTypes = []QuestionType{
	TypeButtonsGroup,
	TypeCheckbox,
	TypeDatePicker,
	TypeDropdownList,
	TypeEmail,
	TypeFeedback,
	TypeLongText,
	TypeMultipleSelection,
	TypeNumber,
	TypePhone,
	TypeRange,
	TypeRating,
	TypeSingleSelection,
	TypeSlider,
	TypeText,
	TypeTimePicker,
}

// ValidQuestionType reports whether t is a known question kind.
func ValidQuestionType(t QuestionType) bool {
	for _, qt := range QuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}

// HasOptions reports whether the type is a choice-style kind that renders a
// list of selectable options.
func (t QuestionType) HasOptions() bool {
	switch t {
	case TypeButtonsGroup, TypeDropdownList, TypeMultipleSelection, TypeSingleSelection:
		return true
	}
	return false
}

// HasBounds reports whether min/max/step carry meaning for the type. For
// multiple-selection, min/max bound the selection count and step is unused.
func (t QuestionType) HasBounds() bool {
	switch t {
	case TypeMultipleSelection, TypeNumber, TypeRange, TypeSlider:
		return true
	}
	return false
}

// Numeric reports whether answer values for the type must parse as numbers.
func (t QuestionType) Numeric() bool {
	switch t {
	case TypeNumber, TypeRange, TypeSlider, TypeRating, TypeFeedback:
		return true
	}
	return false
}

// Unique reports whether the is_unique flag is meaningful for the type.
func (t QuestionType) Unique() bool {
	return t == TypeEmail || t == TypePhone
}

var (
	ErrInvalidQuestion = errors.New("invalid question data")
	ErrNoOptions       = errors.New("choice questions need at least one option")
)

// Question is a single prompt of one typed kind, optionally with selectable
// options and numeric bounds. Order is contiguous per survey starting at 0;
// NextQuestion is the denormalized pointer to the question at order+1 so the
// answer flow can jump forward without a lookup.
type Question struct {
	ID           string       `gorm:"primaryKey;type:uuid"`
	SurveyID     string       `gorm:"type:uuid;not null;index"`
	CustomerID   string       `gorm:"type:uuid;not null"`
	Type         QuestionType `gorm:"type:varchar(30);not null"`
	RegisterName string       `gorm:"not null"`
	Order        int          `gorm:"column:position;not null"`
	Label        string       `gorm:"not null"`
	SubmitLabel  string
	IsUnique     bool
	Min          *float64
	Max          *float64
	Step         *float64
	NextQuestion *string `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	Answers []Answer `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}

// Option is one selectable value of a choice-style question.
type Option struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	QuestionID string `gorm:"type:uuid;not null;index"`
	Value      string `gorm:"not null"`
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// Normalize coerces field combinations that carry no meaning for the
// question's type: is_unique survives only on email/phone, bounds only on
// number/range/slider/multiple-selection (range and slider clamped to
// [0,100], step defaulted to 1), options only on choice kinds. Empty option
// values are dropped.
func (q *Question) Normalize() {
	if !q.Type.Unique() {
		q.IsUnique = false
	}

	if q.Type.HasBounds() {
		if q.Type == TypeRange || q.Type == TypeSlider {
			if q.Min == nil || *q.Min < 0 {
				q.Min = ptr(0.0)
			}
			if q.Max == nil || *q.Max > 100 {
				q.Max = ptr(100.0)
			}
		}
		if q.Type == TypeMultipleSelection {
			q.Step = nil
		} else if q.Step == nil || *q.Step <= 0 {
			q.Step = ptr(1.0)
		}
	} else {
		q.Min = nil
		q.Max = nil
		q.Step = nil
	}

	if q.Type.HasOptions() {
		opts := q.Options[:0]
		for _, o := range q.Options {
			if o.Value != "" {
				opts = append(opts, o)
			}
		}
		q.Options = opts
	} else {
		q.Options = nil
	}
}

// Validate checks the structural invariants of a normalized question.
func (q *Question) Validate() error {
	if !ValidQuestionType(q.Type) {
		return ErrInvalidQuestion
	}
	if q.RegisterName == "" || q.Label == "" {
		return ErrInvalidQuestion
	}
	if q.Order < 0 {
		return ErrInvalidQuestion
	}
	if q.Min != nil && q.Max != nil && *q.Max <= *q.Min {
		return ErrInvalidQuestion
	}
	if q.Step != nil && *q.Step <= 0 {
		return ErrInvalidQuestion
	}
	if q.Type.HasOptions() && len(q.Options) == 0 {
		return ErrNoOptions
	}
	return nil
}

// Relink sorts questions by order, reassigns contiguous order values
// starting at 0 and rewrites each next_question pointer to the id of the
// question that follows (nil on the last one). Must run after every question
// add or remove.
func Relink(questions []Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	for i := range questions {
		questions[i].Order = i
		if i+1 < len(questions) {
			next := questions[i+1].ID
			questions[i].NextQuestion = &next
		} else {
			questions[i].NextQuestion = nil
		}
	}
}

func ptr(f float64) *float64 { return &f }
