package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClearsUniqueOnNonContactTypes(t *testing.T) {
	q := Question{Type: TypeText, IsUnique: true}
	q.Normalize()
	assert.False(t, q.IsUnique)

	email := Question{Type: TypeEmail, IsUnique: true}
	email.Normalize()
	assert.True(t, email.IsUnique)

	phone := Question{Type: TypePhone, IsUnique: true}
	phone.Normalize()
	assert.True(t, phone.IsUnique)
}

func TestNormalizeBounds(t *testing.T) {
	t.Run("cleared on unbounded types", func(t *testing.T) {
		q := Question{Type: TypeText, Min: ptr(1), Max: ptr(5), Step: ptr(1)}
		q.Normalize()
		assert.Nil(t, q.Min)
		assert.Nil(t, q.Max)
		assert.Nil(t, q.Step)
	})

	t.Run("range clamps to 0..100", func(t *testing.T) {
		q := Question{Type: TypeRange, Min: ptr(-10), Max: ptr(200)}
		q.Normalize()
		require.NotNil(t, q.Min)
		require.NotNil(t, q.Max)
		assert.Equal(t, 0.0, *q.Min)
		assert.Equal(t, 100.0, *q.Max)
	})

	t.Run("slider defaults missing bounds", func(t *testing.T) {
		q := Question{Type: TypeSlider}
		q.Normalize()
		require.NotNil(t, q.Min)
		require.NotNil(t, q.Max)
		assert.Equal(t, 0.0, *q.Min)
		assert.Equal(t, 100.0, *q.Max)
	})

	t.Run("step defaults to 1", func(t *testing.T) {
		q := Question{Type: TypeNumber, Step: ptr(-2)}
		q.Normalize()
		require.NotNil(t, q.Step)
		assert.Equal(t, 1.0, *q.Step)
	})

	t.Run("multiple selection drops step", func(t *testing.T) {
		q := Question{Type: TypeMultipleSelection, Min: ptr(1), Max: ptr(3), Step: ptr(1)}
		q.Normalize()
		assert.Nil(t, q.Step)
		require.NotNil(t, q.Min)
		assert.Equal(t, 1.0, *q.Min)
	})
}

func TestNormalizeOptions(t *testing.T) {
	choice := Question{Type: TypeDropdownList, Options: []Option{
		{Value: "a"}, {Value: ""}, {Value: "b"},
	}}
	choice.Normalize()
	require.Len(t, choice.Options, 2)
	assert.Equal(t, "a", choice.Options[0].Value)
	assert.Equal(t, "b", choice.Options[1].Value)

	text := Question{Type: TypeText, Options: []Option{{Value: "a"}}}
	text.Normalize()
	assert.Nil(t, text.Options)
}

func TestValidate(t *testing.T) {
	valid := Question{Type: TypeText, RegisterName: "name", Label: "Your name?"}
	assert.NoError(t, valid.Validate())

	unknown := Question{Type: "magic", RegisterName: "x", Label: "y"}
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidQuestion)

	noRegister := Question{Type: TypeText, Label: "y"}
	assert.ErrorIs(t, noRegister.Validate(), ErrInvalidQuestion)

	noLabel := Question{Type: TypeText, RegisterName: "x"}
	assert.ErrorIs(t, noLabel.Validate(), ErrInvalidQuestion)

	negativeOrder := Question{Type: TypeText, RegisterName: "x", Label: "y", Order: -1}
	assert.ErrorIs(t, negativeOrder.Validate(), ErrInvalidQuestion)

	invertedBounds := Question{Type: TypeNumber, RegisterName: "x", Label: "y", Min: ptr(5), Max: ptr(5)}
	assert.ErrorIs(t, invertedBounds.Validate(), ErrInvalidQuestion)

	noOptions := Question{Type: TypeButtonsGroup, RegisterName: "x", Label: "y"}
	assert.ErrorIs(t, noOptions.Validate(), ErrNoOptions)
}

func TestRelink(t *testing.T) {
	questions := []Question{
		{ID: "c", Order: 7},
		{ID: "a", Order: 0},
		{ID: "b", Order: 3},
	}

	Relink(questions)

	require.Len(t, questions, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{questions[0].ID, questions[1].ID, questions[2].ID})
	for i, q := range questions {
		assert.Equal(t, i, q.Order)
	}
	require.NotNil(t, questions[0].NextQuestion)
	assert.Equal(t, "b", *questions[0].NextQuestion)
	require.NotNil(t, questions[1].NextQuestion)
	assert.Equal(t, "c", *questions[1].NextQuestion)
	assert.Nil(t, questions[2].NextQuestion)
}

func TestRelinkAfterRemoval(t *testing.T) {
	questions := []Question{
		{ID: "a", Order: 0},
		{ID: "c", Order: 2},
	}

	Relink(questions)

	assert.Equal(t, 0, questions[0].Order)
	assert.Equal(t, 1, questions[1].Order)
	require.NotNil(t, questions[0].NextQuestion)
	assert.Equal(t, "c", *questions[0].NextQuestion)
	assert.Nil(t, questions[1].NextQuestion)
}

func TestRelinkSingleQuestion(t *testing.T) {
	questions := []Question{{ID: "only", Order: 4}}
	Relink(questions)
	assert.Equal(t, 0, questions[0].Order)
	assert.Nil(t, questions[0].NextQuestion)
}
