package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAnswerEmpty(t *testing.T) {
	q := Question{Type: TypeText}
	assert.ErrorIs(t, q.ValidateAnswer(nil), ErrAnswerInvalid)
	assert.ErrorIs(t, q.ValidateAnswer([]string{}), ErrAnswerInvalid)
}

func TestValidateAnswerNumber(t *testing.T) {
	q := Question{Type: TypeNumber, Min: ptr(0), Max: ptr(10)}

	assert.NoError(t, q.ValidateAnswer([]string{"7"}))
	assert.ErrorIs(t, q.ValidateAnswer([]string{"a"}), ErrAnswerInvalid)
	assert.ErrorIs(t, q.ValidateAnswer([]string{"1", "2"}), ErrAnswerInvalid)

	err := q.ValidateAnswer([]string{"11"})
	assert.EqualError(t, err, "Answer must be between 0 and 10.")
	assert.EqualError(t, q.ValidateAnswer([]string{"0"}), "Answer must be between 0 and 10.")
	assert.EqualError(t, q.ValidateAnswer([]string{"10"}), "Answer must be between 0 and 10.")
}

func TestValidateAnswerRange(t *testing.T) {
	q := Question{Type: TypeRange, Min: ptr(0), Max: ptr(100)}

	assert.NoError(t, q.ValidateAnswer([]string{"20", "80"}))
	assert.ErrorIs(t, q.ValidateAnswer([]string{"20"}), ErrAnswerInvalid)
	assert.EqualError(t, q.ValidateAnswer([]string{"0", "80"}), "Answer must be between 0 and 100.")
	assert.EqualError(t, q.ValidateAnswer([]string{"20", "100"}), "Answer must be between 0 and 100.")
}

func TestValidateAnswerSlider(t *testing.T) {
	q := Question{Type: TypeSlider, Max: ptr(50)}

	assert.NoError(t, q.ValidateAnswer([]string{"0"}))
	assert.NoError(t, q.ValidateAnswer([]string{"49"}))
	assert.EqualError(t, q.ValidateAnswer([]string{"50"}), "Answer must be between 0 and 50.")
}

func TestValidateAnswerMultipleSelection(t *testing.T) {
	q := Question{Type: TypeMultipleSelection, Min: ptr(1), Max: ptr(2)}

	assert.NoError(t, q.ValidateAnswer([]string{"a"}))
	assert.NoError(t, q.ValidateAnswer([]string{"a", "b"}))
	assert.EqualError(t, q.ValidateAnswer([]string{"a", "b", "c"}), "Select between 1 and 2 options")

	unbounded := Question{Type: TypeMultipleSelection}
	assert.NoError(t, unbounded.ValidateAnswer([]string{"a", "b", "c", "d"}))
}

func TestValidateAnswerRatingAndFeedback(t *testing.T) {
	for _, typ := range []QuestionType{TypeRating, TypeFeedback} {
		q := Question{Type: typ}
		assert.NoError(t, q.ValidateAnswer([]string{"1"}))
		assert.NoError(t, q.ValidateAnswer([]string{"5"}))
		assert.ErrorIs(t, q.ValidateAnswer([]string{"0"}), ErrValueNotAllowed)
		assert.ErrorIs(t, q.ValidateAnswer([]string{"6"}), ErrValueNotAllowed)
		assert.ErrorIs(t, q.ValidateAnswer([]string{"nope"}), ErrAnswerInvalid)
	}
}

func TestValidateAnswerCheckbox(t *testing.T) {
	q := Question{Type: TypeCheckbox}

	assert.NoError(t, q.ValidateAnswer([]string{"on"}))
	assert.NoError(t, q.ValidateAnswer([]string{"off"}))
	assert.ErrorIs(t, q.ValidateAnswer([]string{"yes"}), ErrValueNotAllowed)
}

func TestValidateAnswerEmail(t *testing.T) {
	q := Question{Type: TypeEmail}

	assert.NoError(t, q.ValidateAnswer([]string{"someone@example.com"}))
	assert.ErrorIs(t, q.ValidateAnswer([]string{"not-an-email"}), ErrInvalidEmailFormat)
}

func TestValidateAnswerPhone(t *testing.T) {
	q := Question{Type: TypePhone}

	assert.NoError(t, q.ValidateAnswer([]string{"600123456"}))
	assert.NoError(t, q.ValidateAnswer([]string{"(34)600123456"}))
	assert.ErrorIs(t, q.ValidateAnswer([]string{"not a phone"}), ErrInvalidPhoneFormat)
}

func TestValidateAnswerFreeText(t *testing.T) {
	q := Question{Type: TypeLongText}

	assert.NoError(t, q.ValidateAnswer([]string{"anything goes here"}))
	assert.ErrorIs(t, q.ValidateAnswer([]string{"two", "values"}), ErrAnswerInvalid)
}
