// Package types defines the request payload and the structured result shapes
// produced by the LLM backends. Structured results are validated at
// construction time; an instance that fails validation never leaves the
// structured-completion path.
package types

import (
	"github.com/go-playground/validator/v10"
)

// validate is shared across all Validate calls; the validator is safe for
// concurrent use and caches struct metadata.
var validate = validator.New()

// JobPostingInput is the caller-supplied job posting under evaluation.
// Both fields must be non-empty; no length bound is enforced at this layer.
type JobPostingInput struct {
	JobTitle       string `json:"job_title" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// Validate checks that both fields are present and non-empty.
func (in JobPostingInput) Validate() error {
	return validate.Struct(in)
}

// AlternativeTitles holds between one and three alternative job titles,
// best first.
type AlternativeTitles struct {
	AlternativeTitles []string `json:"alternative_titles" validate:"required,min=1,max=3,dive,required"`
}

// Validate enforces the 1..3 entry bound.
func (t AlternativeTitles) Validate() error {
	return validate.Struct(t)
}

// PositiveContentCheck flags which of the eight recommended job-posting
// sections are present in a description. This is presence detection, not
// generation; every field must appear in the model's reply.
type PositiveContentCheck struct {
	EmployeeValueProposition         bool `json:"employee_value_proposition"`
	JobSummaryAndResponsibilities    bool `json:"job_summary_and_responsibilities"`
	RequiredTechnicalCompetencies    bool `json:"required_technical_competencies"`
	RequiredBehaviouralCompetencies  bool `json:"required_behavioural_competencies"`
	PreferredTechnicalCompetencies   bool `json:"preferred_technical_competencies"`
	PreferredBehaviouralCompetencies bool `json:"preferred_behavioural_competencies"`
	ExampleActivities                bool `json:"example_activities"`
	RequiredCertification            bool `json:"required_certification"`
}

// NegativeContentCheck flags discouraged requirements found in a description:
// an explicit years-of-experience demand and a formal-education demand.
type NegativeContentCheck struct {
	RequiredYearsOfExperience bool `json:"required_years_of_experience"`
	RequiredFormalEducation   bool `json:"required_formal_education"`
}
