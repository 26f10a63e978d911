package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"boj-notion/internal/apperr"
	"boj-notion/internal/domain/model"
)

// FailedAnalysis is the line used when the reply holds no usable JSON.
const FailedAnalysis = "분석 실패"

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// ExtractAnalysis pulls the {analysis, tags} object out of a model reply.
// Code fences are removed and the span from the first '{' to the last '}'
// is decoded. When that fails the fallback analysis is returned together
// with a JSONExtraction error; callers may ignore the error.
func ExtractAnalysis(text string) (model.Analysis, error) {
	fallback := model.Analysis{Lines: []string{FailedAnalysis}}

	cleaned := strings.TrimSpace(fenceReplacer.Replace(text))
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return fallback, apperr.JSONExtraction(errors.New("no json object in reply"))
	}

	var payload struct {
		Analysis []string `json:"analysis"`
		Tags     []string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &payload); err != nil {
		return fallback, apperr.JSONExtraction(fmt.Errorf("decode reply: %w", err))
	}

	return model.Analysis{Lines: payload.Analysis, Tags: payload.Tags}, nil
}
