package model

import (
	"strings"
	"time"
)

// Analysis is the AI-produced explanation of a solution.
type Analysis struct {
	Lines []string `json:"analysis"`
	Tags  []string `json:"tags"`
}

// Page is a document ready to be uploaded to the document store.
type Page struct {
	Title  string
	Date   time.Time
	Tags   []string
	Blocks []Block
}

// Credentials are the static tokens a run needs. JudgeCookie is optional
// and only sent when fetching submission sources.
type Credentials struct {
	GeminiKey   string
	NotionToken string
	DatabaseID  string
	JudgeCookie string
}

// Missing lists the required settings that are blank after trimming.
func (c Credentials) Missing() []string {
	var missing []string
	if strings.TrimSpace(c.GeminiKey) == "" {
		missing = append(missing, "gemini_key")
	}
	if strings.TrimSpace(c.NotionToken) == "" {
		missing = append(missing, "notion_token")
	}
	if strings.TrimSpace(c.DatabaseID) == "" {
		missing = append(missing, "database_id")
	}
	return missing
}

// RunResult is the uniform outcome of one pipeline run.
type RunResult struct {
	Success bool
	Title   string
	Message string
}
