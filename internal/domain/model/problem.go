package model

import "fmt"

// ProblemSnapshot is the plain-text view of a BOJ problem page.
type ProblemSnapshot struct {
	ID           string
	Title        string
	Description  string
	Input        string
	Output       string
	Hint         string // empty when the problem has no hint section
	SampleInput  string
	SampleOutput string
	Tags         []string
}

// FullTitle returns the page title used for the uploaded document, e.g. "1000번: A+B".
func (p ProblemSnapshot) FullTitle() string {
	return fmt.Sprintf("%s번: %s", p.ID, p.Title)
}
