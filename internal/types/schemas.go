package types

// JSON Schemas for the structured-completion path. Each schema serves double
// duty: it is rendered into the prompt as the required output shape, and the
// model's reply is validated against it before decoding. additionalProperties
// is disabled so a reply with stray or misspelled fields is rejected rather
// than silently partially decoded.

// AlternativeTitlesSchema constrains the alternative-title reply to an array
// of one to three strings.
const AlternativeTitlesSchema = `{
  "type": "object",
  "properties": {
    "alternative_titles": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 1,
      "maxItems": 3,
      "description": "List of alternative job titles"
    }
  },
  "required": ["alternative_titles"],
  "additionalProperties": false
}`

// PositiveContentCheckSchema requires all eight section-presence flags.
const PositiveContentCheckSchema = `{
  "type": "object",
  "properties": {
    "employee_value_proposition": {"type": "boolean", "description": "Whether the Employee Value Proposition is present"},
    "job_summary_and_responsibilities": {"type": "boolean", "description": "Whether the Job Summary and Responsibilities are present"},
    "required_technical_competencies": {"type": "boolean", "description": "Whether the Required Technical Competencies are present"},
    "required_behavioural_competencies": {"type": "boolean", "description": "Whether the Required Behavioural Competencies are present"},
    "preferred_technical_competencies": {"type": "boolean", "description": "Whether the Preferred Technical Competencies are present"},
    "preferred_behavioural_competencies": {"type": "boolean", "description": "Whether the Preferred Behavioural Competencies are present"},
    "example_activities": {"type": "boolean", "description": "Whether Example Activities are present"},
    "required_certification": {"type": "boolean", "description": "Whether a Required Certification is present"}
  },
  "required": [
    "employee_value_proposition",
    "job_summary_and_responsibilities",
    "required_technical_competencies",
    "required_behavioural_competencies",
    "preferred_technical_competencies",
    "preferred_behavioural_competencies",
    "example_activities",
    "required_certification"
  ],
  "additionalProperties": false
}`

// NegativeContentCheckSchema requires both discouraged-content flags.
const NegativeContentCheckSchema = `{
  "type": "object",
  "properties": {
    "required_years_of_experience": {"type": "boolean", "description": "Whether a years-of-experience requirement is present"},
    "required_formal_education": {"type": "boolean", "description": "Whether a specific formal-education requirement is present"}
  },
  "required": ["required_years_of_experience", "required_formal_education"],
  "additionalProperties": false
}`
