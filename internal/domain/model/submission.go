package model

import "strings"

// AcceptedMarker is the verdict text BOJ shows for an accepted submission.
const AcceptedMarker = "맞았습니다"

const rowIDPrefix = "solution-"

// Submission is one row of the judge's status table.
type Submission struct {
	ID        string
	ProblemID string
	Language  string
	Verdict   string
}

// IsAccepted reports whether the verdict signals acceptance.
func (s Submission) IsAccepted() bool {
	return strings.Contains(s.Verdict, AcceptedMarker)
}

// RowSnapshot is the raw content of the first row of the status table.
type RowSnapshot struct {
	RowID     string `json:"rowId"`
	Verdict   string `json:"verdict"`
	Language  string `json:"language"`
	ProblemID string `json:"problemId"`
}

// Submission converts the snapshot into a Submission. The DOM row id has the
// form "solution-<id>".
func (r RowSnapshot) Submission() Submission {
	return Submission{
		ID:        strings.TrimPrefix(strings.TrimSpace(r.RowID), rowIDPrefix),
		ProblemID: strings.TrimSpace(r.ProblemID),
		Language:  strings.TrimSpace(r.Language),
		Verdict:   strings.TrimSpace(r.Verdict),
	}
}
