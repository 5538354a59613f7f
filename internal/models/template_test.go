package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templatesYAML = `
surveys:
  - name: "Customer satisfaction"
    theme: "light"
    timezone: "UTC"
    final_message: "Thanks!"
    questions:
      - type: "rating"
        register_name: "overall"
        label: "How would you rate us?"
      - type: "single-selection"
        register_name: "channel"
        label: "How did you hear about us?"
        options: ["Search", "A friend"]
  - name: "Empty shell"
    theme: "sunrise"
`

func writeTemplatesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(templatesYAML), 0644))
	return path
}

func TestLoadSurveyTemplates(t *testing.T) {
	templates, err := LoadSurveyTemplates(writeTemplatesFile(t))
	require.NoError(t, err)
	require.Len(t, templates, 2)

	assert.Equal(t, "Customer satisfaction", templates[0].Name)
	assert.Len(t, templates[0].Questions, 2)
	assert.Equal(t, TypeRating, templates[0].Questions[0].Type)
}

func TestLoadSurveyTemplatesMissingFile(t *testing.T) {
	_, err := LoadSurveyTemplates(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMaterialize(t *testing.T) {
	templates, err := LoadSurveyTemplates(writeTemplatesFile(t))
	require.NoError(t, err)

	survey := templates[0].Materialize("customer-1")
	assert.Equal(t, "customer-1", survey.CustomerID)
	assert.Equal(t, StatusPending, survey.Status, "surveys with questions start pending")
	require.Len(t, survey.Questions, 2)
	assert.Equal(t, 0, survey.Questions[0].Order)
	assert.Equal(t, 1, survey.Questions[1].Order)
	require.Len(t, survey.Questions[1].Options, 2)

	shell := templates[1].Materialize("customer-1")
	assert.Equal(t, StatusEmpty, shell.Status)
	assert.Equal(t, "UTC", shell.Timezone, "missing timezone defaults to UTC")
}
