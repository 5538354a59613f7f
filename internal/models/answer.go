package models

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/differentgrowth/newgenforms/internal/utils"
)

// Answer validation failures carry the user-facing message; anything that the
// respondent cannot act on collapses to ErrAnswerInvalid.
var (
	ErrAnswerInvalid        = errors.New("Invalid data!")
	ErrValueNotAllowed      = errors.New("Value not allowed")
	ErrInvalidEmailFormat   = errors.New("Invalid email format")
	ErrInvalidPhoneFormat   = errors.New("Invalid phone format")
	ErrDuplicateClient      = errors.New("previous response with same client")
	ErrDuplicateUniqueValue = errors.New("This question requires a unique answer and this one has already been answered.")
)

// Answer is one respondent's submitted value(s) for one question. Client is
// a generated per-session token, not a customer id. Value is multi-valued to
// carry multi-selection picks and range endpoints.
type Answer struct {
	ID         string         `gorm:"primaryKey;type:uuid"`
	QuestionID string         `gorm:"type:uuid;not null;index"`
	SurveyID   string         `gorm:"type:uuid;not null;index"`
	Client     string         `gorm:"type:uuid;not null;index"`
	Value      pq.StringArray `gorm:"type:text[];not null"`
	CreatedAt  time.Time
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// ValidateAnswer enforces the per-type acceptance rules on a submitted value
// list before insertion. Bounds come from the answering question.
func (q *Question) ValidateAnswer(values []string) error {
	if len(values) == 0 {
		return ErrAnswerInvalid
	}

	if q.Type.Numeric() {
		for _, v := range values {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return ErrAnswerInvalid
			}
		}
	}

	// Value-count rule: two endpoints for a range, a bounded set for
	// multiple-selection, exactly one everywhere else.
	switch q.Type {
	case TypeMultipleSelection:
		min, max := 1.0, math.Inf(1)
		if q.Min != nil {
			min = *q.Min
		}
		if q.Max != nil {
			max = *q.Max
		}
		if n := float64(len(values)); n < min || n > max {
			return fmt.Errorf("Select between %s and %s options", formatBound(q.Min, "1"), formatBound(q.Max, "unlimited"))
		}
		return nil
	case TypeRange:
		if len(values) != 2 {
			return ErrAnswerInvalid
		}
	default:
		if len(values) != 1 {
			return ErrAnswerInvalid
		}
	}

	switch q.Type {
	case TypeRange:
		lo, _ := strconv.ParseFloat(values[0], 64)
		hi, _ := strconv.ParseFloat(values[1], 64)
		if lo <= boundOr(q.Min, 0) || hi >= boundOr(q.Max, 100) {
			return fmt.Errorf("Answer must be between %s and %s.", formatBound(q.Min, "0"), formatBound(q.Max, "100"))
		}
	case TypeSlider:
		v, _ := strconv.ParseFloat(values[0], 64)
		if v >= boundOr(q.Max, 100) {
			return fmt.Errorf("Answer must be between 0 and %s.", formatBound(q.Max, "100"))
		}
	case TypeNumber:
		v, _ := strconv.ParseFloat(values[0], 64)
		if v <= boundOr(q.Min, 0) || v >= boundOr(q.Max, 100) {
			return fmt.Errorf("Answer must be between %s and %s.", formatBound(q.Min, "0"), formatBound(q.Max, "100"))
		}
	case TypeRating, TypeFeedback:
		v, _ := strconv.ParseFloat(values[0], 64)
		if v <= 0 || v >= 6 {
			return ErrValueNotAllowed
		}
	case TypeCheckbox:
		if values[0] != "on" && values[0] != "off" {
			return ErrValueNotAllowed
		}
	case TypeEmail:
		if _, err := mail.ParseAddress(values[0]); err != nil {
			return ErrInvalidEmailFormat
		}
	case TypePhone:
		if !utils.IsValidPhone(values[0]) {
			return ErrInvalidPhoneFormat
		}
	}

	return nil
}

func boundOr(b *float64, def float64) float64 {
	if b != nil {
		return *b
	}
	return def
}

func formatBound(b *float64, def string) string {
	if b == nil {
		return def
	}
	return strconv.FormatFloat(*b, 'f', -1, 64)
}
