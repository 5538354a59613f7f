package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/differentgrowth/newgenforms/internal/models"
)

func fixtureQuestions() []models.Question {
	return []models.Question{
		{ID: "q2", RegisterName: "comments", Label: "Comments", Type: models.TypeLongText, Order: 1},
		{ID: "q1", RegisterName: "name", Label: "Name", Type: models.TypeText, Order: 0},
		{ID: "q3", RegisterName: "sessions", Label: "Sessions", Type: models.TypeMultipleSelection, Order: 2},
	}
}

func fixtureAnswers(base time.Time) []models.Answer {
	return []models.Answer{
		{QuestionID: "q1", Client: "client-a", Value: []string{"Alice"}, CreatedAt: base},
		{QuestionID: "q3", Client: "client-a", Value: []string{"Workshop A", "Workshop B"}, CreatedAt: base.Add(time.Minute)},
		{QuestionID: "q1", Client: "client-b", Value: []string{"Bob"}, CreatedAt: base.Add(2 * time.Minute)},
		{QuestionID: "q2", Client: "client-b", Value: []string{"great event"}, CreatedAt: base.Add(3 * time.Minute)},
	}
}

func TestBuildColumns(t *testing.T) {
	table := Build(fixtureQuestions(), nil)

	require.Len(t, table.Columns, 3)
	assert.Equal(t, "name", table.Columns[0].RegisterName)
	assert.Equal(t, "comments", table.Columns[1].RegisterName)
	assert.Equal(t, "sessions", table.Columns[2].RegisterName)

	assert.True(t, table.Columns[0].Sortable)
	assert.False(t, table.Columns[1].Sortable, "long-text columns are not sortable")
	assert.True(t, table.Columns[2].Sortable)
}

func TestBuildOneRowPerClient(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	table := Build(fixtureQuestions(), fixtureAnswers(base))

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "client-a", table.Rows[0].Client)
	assert.Equal(t, "client-b", table.Rows[1].Client)

	assert.Equal(t, "Alice", table.Rows[0].Cell("name"))
	assert.Equal(t, "Workshop A | Workshop B", table.Rows[0].Cell("sessions"))
	assert.Equal(t, "", table.Rows[0].Cell("comments"), "unanswered questions render empty")

	// Row timestamp is the client's earliest submission.
	assert.Equal(t, base, table.Rows[0].CreatedAt)
}

func TestBuildIgnoresAnswersOfDeletedQuestions(t *testing.T) {
	base := time.Now()
	answers := []models.Answer{
		{QuestionID: "gone", Client: "client-a", Value: []string{"x"}, CreatedAt: base},
	}
	table := Build(fixtureQuestions(), answers)
	assert.Empty(t, table.Rows)
}

func TestFilter(t *testing.T) {
	base := time.Now()
	table := Build(fixtureQuestions(), fixtureAnswers(base))

	filtered := table.Filter("name", "ali")
	require.Len(t, filtered.Rows, 1)
	assert.Equal(t, "client-a", filtered.Rows[0].Client)

	// Long-text and unknown columns leave the table untouched.
	assert.Len(t, table.Filter("comments", "great").Rows, 2)
	assert.Len(t, table.Filter("nope", "x").Rows, 2)
	assert.Len(t, table.Filter("name", "").Rows, 2)
}

func TestSort(t *testing.T) {
	base := time.Now()
	table := Build(fixtureQuestions(), fixtureAnswers(base))

	asc := table.Sort("name", false)
	assert.Equal(t, "Alice", asc.Rows[0].Cell("name"))

	desc := table.Sort("name", true)
	assert.Equal(t, "Bob", desc.Rows[0].Cell("name"))

	// Long-text columns keep submission order.
	same := table.Sort("comments", false)
	assert.Equal(t, table.Rows[0].Client, same.Rows[0].Client)
}
