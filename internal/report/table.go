// Package report pivots survey answers into the wide table shown on the
// dashboard: one row per respondent, one column per question keyed by
// register name, in question order.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/differentgrowth/newgenforms/internal/models"
)

// valueSeparator joins multi-valued answers for display in one cell.
const valueSeparator = " | "

// Column is one question of the survey projected as a table column.
// Long-text columns are excluded from sorting and filtering; tables become
// unwieldy otherwise.
type Column struct {
	QuestionID   string
	RegisterName string
	Label        string
	Type         models.QuestionType
	Order        int
	Sortable     bool
}

// Row is one respondent's answers keyed by register name, alongside the
// fixed client and created_at columns.
type Row struct {
	Client    string
	CreatedAt time.Time
	Values    map[string]string
}

// Cell returns the row's value for a column key, empty when the respondent
// skipped the question.
func (r Row) Cell(registerName string) string {
	return r.Values[registerName]
}

type Table struct {
	Columns []Column
	Rows    []Row
}

// Build pivots the survey's answers into a table. Column order follows
// question order; row order follows each respondent's first submission time.
func Build(questions []models.Question, answers []models.Answer) Table {
	byID := make(map[string]models.Question, len(questions))
	columns := make([]Column, 0, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
		columns = append(columns, Column{
			QuestionID:   q.ID,
			RegisterName: q.RegisterName,
			Label:        q.Label,
			Type:         q.Type,
			Order:        q.Order,
			Sortable:     q.Type != models.TypeLongText,
		})
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Order < columns[j].Order
	})

	byClient := make(map[string]*Row)
	order := make([]string, 0)
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		row, ok := byClient[a.Client]
		if !ok {
			row = &Row{
				Client:    a.Client,
				CreatedAt: a.CreatedAt,
				Values:    make(map[string]string),
			}
			byClient[a.Client] = row
			order = append(order, a.Client)
		}
		if a.CreatedAt.Before(row.CreatedAt) {
			row.CreatedAt = a.CreatedAt
		}
		row.Values[q.RegisterName] = strings.Join(a.Value, valueSeparator)
	}

	rows := make([]Row, 0, len(order))
	for _, client := range order {
		rows = append(rows, *byClient[client])
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})

	return Table{Columns: columns, Rows: rows}
}

// column resolves a register name to its column, if filterable/sortable.
func (t Table) column(registerName string) (Column, bool) {
	for _, c := range t.Columns {
		if c.RegisterName == registerName && c.Sortable {
			return c, true
		}
	}
	return Column{}, false
}

// Filter keeps the rows whose value for the named column contains term
// (case-insensitive). Unknown and long-text columns leave the table as is.
func (t Table) Filter(registerName, term string) Table {
	if term == "" {
		return t
	}
	if _, ok := t.column(registerName); !ok {
		return t
	}

	term = strings.ToLower(term)
	rows := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		if strings.Contains(strings.ToLower(r.Cell(registerName)), term) {
			rows = append(rows, r)
		}
	}
	return Table{Columns: t.Columns, Rows: rows}
}

// Sort orders the rows by the named column's text value. Unknown and
// long-text columns leave the table as is.
func (t Table) Sort(registerName string, desc bool) Table {
	if _, ok := t.column(registerName); !ok {
		return t
	}

	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Cell(registerName), rows[j].Cell(registerName)
		if desc {
			return a > b
		}
		return a < b
	})
	return Table{Columns: t.Columns, Rows: rows}
}
