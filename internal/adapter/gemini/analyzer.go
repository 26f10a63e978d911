package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"boj-notion/internal/apperr"
	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// DefaultModel is the lite model used for solution explanations.
const DefaultModel = "gemini-2.5-flash-lite"

const op = "Gemini"

// Analyzer explains accepted solutions with Gemini.
type Analyzer struct {
	model      string
	baseURL    string
	httpClient *http.Client
	logger     ports.Logger

	mu     sync.Mutex
	apiKey string
	client *genai.Client
}

var _ ports.Analyzer = (*Analyzer)(nil)

// NewAnalyzer constructs an Analyzer. An empty baseURL targets the public
// Gemini API; a zero timeout means no timeout.
func NewAnalyzer(modelName, baseURL string, timeout time.Duration, logger ports.Logger) *Analyzer {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Analyzer{
		model:      modelName,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Analyze sends one generation request and extracts the analysis from the reply.
func (a *Analyzer) Analyze(ctx context.Context, creds model.Credentials, language, code string) (model.Analysis, error) {
	client, err := a.clientFor(ctx, strings.TrimSpace(creds.GeminiKey))
	if err != nil {
		return model.Analysis{}, err
	}

	prompt := buildPrompt(language, code)
	a.logger.Info(ctx, "calling gemini API", "model", a.model, "promptSize", len(prompt))

	resp, err := client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return model.Analysis{}, wrapError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		finishReason := ""
		if len(resp.Candidates) > 0 {
			finishReason = string(resp.Candidates[0].FinishReason)
		}
		a.logger.Error(ctx, "gemini returned empty text", "candidates", len(resp.Candidates), "finishReason", finishReason)
		return model.Analysis{}, apperr.API(op, http.StatusOK, "응답이 비어 있습니다")
	}

	analysis, err := ExtractAnalysis(text)
	if err != nil {
		a.logger.Error(ctx, "gemini reply was not json", "error", err, "reply", truncate(text, 500))
	}
	a.logger.Info(ctx, "gemini response received", "lines", len(analysis.Lines), "tags", len(analysis.Tags))
	return analysis, nil
}

// clientFor reuses the SDK client until the configured key changes.
func (a *Analyzer) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, apperr.ConfigMissing("gemini_key")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil && a.apiKey == apiKey {
		return a.client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: a.httpClient,
	}
	if a.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: a.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, apperr.Network(op, fmt.Errorf("create client: %w", err))
	}
	a.client = client
	a.apiKey = apiKey
	return client, nil
}

func buildPrompt(language, code string) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("너는 알고리즘 멘토야. 아래 **%s** 코드를 분석해줘.\n", language))
	builder.WriteString("[규칙]\n")
	builder.WriteString("1. 결과는 반드시 순수한 JSON.\n")
	builder.WriteString("2. \"analysis\"는 3~5문장의 리스트(Array).\n")
	builder.WriteString("3. 첫 문장은 핵심 요약.\n")
	builder.WriteString("4. JSON 예시: {\"analysis\": [\"BFS 문제입니다.\"], \"tags\": [\"BFS\"]}\n\n")
	builder.WriteString("코드:\n")
	builder.WriteString(code)
	builder.WriteString("\n")
	return builder.String()
}

func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "알 수 없는 에러"
		}
		return apperr.API(op, apiErr.Code, message)
	}
	return apperr.Network(op, err)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
