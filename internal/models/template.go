package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SurveyTemplate describes a survey to bootstrap into the database on a
// fresh install, read from a YAML file referenced by seed.templates_file.
type SurveyTemplate struct {
	Name         string             `yaml:"name"`
	Theme        SurveyTheme        `yaml:"theme"`
	Timezone     string             `yaml:"timezone"`
	FinalMessage string             `yaml:"final_message"`
	Questions    []QuestionTemplate `yaml:"questions"`
}

type QuestionTemplate struct {
	Type         QuestionType `yaml:"type"`
	RegisterName string       `yaml:"register_name"`
	Label        string       `yaml:"label"`
	SubmitLabel  string       `yaml:"submit_label"`
	IsUnique     bool         `yaml:"is_unique,omitempty"`
	Min          *float64     `yaml:"min,omitempty"`
	Max          *float64     `yaml:"max,omitempty"`
	Step         *float64     `yaml:"step,omitempty"`
	Options      []string     `yaml:"options,omitempty"`
}

// LoadSurveyTemplates reads and parses the survey templates file.
func LoadSurveyTemplates(path string) ([]SurveyTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var wrapper struct {
		Surveys []SurveyTemplate `yaml:"surveys"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal templates YAML: %w", err)
	}

	return wrapper.Surveys, nil
}

// Materialize converts a template into a survey with normalized, linked
// questions, owned by the given customer.
func (t SurveyTemplate) Materialize(customerID string) Survey {
	survey := Survey{
		CustomerID:   customerID,
		Name:         t.Name,
		Theme:        t.Theme,
		Status:       StatusEmpty,
		Timezone:     t.Timezone,
		FinalMessage: t.FinalMessage,
	}
	if survey.Timezone == "" {
		survey.Timezone = "UTC"
	}
	if !ValidTheme(survey.Theme) {
		survey.Theme = ThemeLight
	}

	for i, qt := range t.Questions {
		q := Question{
			CustomerID:   customerID,
			Type:         qt.Type,
			RegisterName: qt.RegisterName,
			Order:        i,
			Label:        qt.Label,
			SubmitLabel:  qt.SubmitLabel,
			IsUnique:     qt.IsUnique,
			Min:          qt.Min,
			Max:          qt.Max,
			Step:         qt.Step,
		}
		for _, v := range qt.Options {
			q.Options = append(q.Options, Option{Value: v})
		}
		q.Normalize()
		survey.Questions = append(survey.Questions, q)
	}
	if len(survey.Questions) > 0 {
		survey.Status = StatusPending
	}

	return survey
}
