package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestCanTransitionOnlyForward(t *testing.T) {
	s := &Survey{Status: StatusReady}

	assert.True(t, s.CanTransition(StatusPublished))
	assert.True(t, s.CanTransition(StatusFinished))
	assert.False(t, s.CanTransition(StatusPending))
	assert.False(t, s.CanTransition(StatusEmpty))
	assert.False(t, s.CanTransition(StatusReady))
}

func TestEditable(t *testing.T) {
	assert.True(t, (&Survey{Status: StatusEmpty}).Editable())
	assert.True(t, (&Survey{Status: StatusPending}).Editable())
	assert.False(t, (&Survey{Status: StatusReady}).Editable())
	assert.False(t, (&Survey{Status: StatusPublished}).Editable())
	assert.False(t, (&Survey{Status: StatusFinished}).Editable())
}

func TestCheckReady(t *testing.T) {
	now := time.Now()
	valid := Survey{
		Status: StatusPending,
		From:   timePtr(now),
		To:     timePtr(now.Add(time.Hour)),
		Questions: []Question{
			{Type: TypeText, RegisterName: "name", Label: "Your name?"},
		},
	}

	assert.NoError(t, valid.CheckReady())

	empty := valid
	empty.Questions = nil
	assert.ErrorIs(t, empty.CheckReady(), ErrInvalidSurveyData)

	notPending := valid
	notPending.Status = StatusEmpty
	assert.ErrorIs(t, notPending.CheckReady(), ErrInvalidSurveyData)

	noWindow := valid
	noWindow.From = nil
	assert.ErrorIs(t, noWindow.CheckReady(), ErrInvalidSurveyData)

	inverted := valid
	inverted.From = timePtr(now.Add(time.Hour))
	inverted.To = timePtr(now)
	assert.ErrorIs(t, inverted.CheckReady(), ErrInvalidSurveyData)

	badQuestion := valid
	badQuestion.Questions = []Question{{Type: TypeText, Label: "missing register name"}}
	assert.ErrorIs(t, badQuestion.CheckReady(), ErrInvalidSurveyData)
}

func TestSweepPublish(t *testing.T) {
	now := time.Now()

	assert.Equal(t, StatusPublished, SweepPublish(StatusReady, timePtr(now.Add(-time.Minute)), now))
	assert.Equal(t, StatusPublished, SweepPublish(StatusReady, timePtr(now), now))
	assert.Equal(t, StatusReady, SweepPublish(StatusReady, timePtr(now.Add(time.Minute)), now))
	assert.Equal(t, StatusReady, SweepPublish(StatusReady, nil, now))

	// Only ready surveys are promoted.
	assert.Equal(t, StatusPending, SweepPublish(StatusPending, timePtr(now.Add(-time.Minute)), now))
	assert.Equal(t, StatusFinished, SweepPublish(StatusFinished, timePtr(now.Add(-time.Minute)), now))
}

func TestSweepFinish(t *testing.T) {
	now := time.Now()

	assert.Equal(t, StatusFinished, SweepFinish(StatusPublished, timePtr(now.Add(-time.Minute)), now))
	assert.Equal(t, StatusFinished, SweepFinish(StatusPublished, timePtr(now), now))
	assert.Equal(t, StatusPublished, SweepFinish(StatusPublished, timePtr(now.Add(time.Minute)), now))
	assert.Equal(t, StatusPublished, SweepFinish(StatusPublished, nil, now))

	// Only published surveys are finished.
	assert.Equal(t, StatusReady, SweepFinish(StatusReady, timePtr(now.Add(-time.Minute)), now))
}

func TestSweepsAreIdempotent(t *testing.T) {
	now := time.Now()
	from := timePtr(now.Add(-time.Hour))

	once := SweepPublish(StatusReady, from, now)
	twice := SweepPublish(once, from, now)
	assert.Equal(t, once, twice)
}

func TestValidTheme(t *testing.T) {
	for _, theme := range Themes {
		assert.True(t, ValidTheme(theme))
	}
	assert.False(t, ValidTheme("neon"))
	assert.False(t, ValidTheme(""))
}
