package prompts

import (
	"fmt"
	"strings"
)

// RAGExtractCount is the number of report extracts the job-design prompt
// embeds by fixed position. The composer refuses anything else; padding a
// short retrieval with empty extracts would silently degrade the prompt.
const RAGExtractCount = 5

// Keys for the embedded system messages.
const (
	KeyClassifyJobTitle       = "classify_job_title"
	KeyClassifyJobDescription = "classify_job_description"
	KeyClassifyTitleAccuracy  = "classify_title_accuracy"
	KeySuggestAltTitles       = "suggest_alt_titles"
	KeyScanJobDescription     = "scan_job_description"
	KeyJobDesignSuggestions   = "job_design_suggestions"
	KeyRewriteJobDescription  = "rewrite_job_description"
)

// JobPosting composes the user-turn prompt embedding both title and
// description.
func JobPosting(jobTitle, jobDescription string) string {
	return fmt.Sprintf("JOB_TITLE: %s, JOB_DESCRIPTION: %s", jobTitle, jobDescription)
}

// JobDesignRAG composes the retrieval-augmented prompt for job-design
// suggestions. The description is delimited by "###" and the report extracts
// by "$$$"; exactly RAGExtractCount extracts are required.
func JobDesignRAG(jobTitle, jobDescription string, extracts []string) (string, error) {
	if len(extracts) != RAGExtractCount {
		return "", fmt.Errorf("job design prompt requires exactly %d extracts, got %d", RAGExtractCount, len(extracts))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "The job description for %s is delimited by \"###\", and report extracts delimited by \"$$$\"\n\n", jobTitle)
	sb.WriteString("###\n")
	sb.WriteString(jobDescription)
	sb.WriteString("\n\n$$$\n")
	for _, extract := range extracts {
		sb.WriteString(extract)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
