package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boj-notion/internal/adapter/logging"
	"boj-notion/internal/apperr"
	"boj-notion/internal/domain/model"
)

type fakeJudge struct {
	calls     []string
	source    string
	sourceErr error
	problem   *model.ProblemSnapshot
}

func (f *fakeJudge) FetchSource(_ context.Context, id string) (string, error) {
	f.calls = append(f.calls, "source:"+id)
	return f.source, f.sourceErr
}

func (f *fakeJudge) FetchProblem(_ context.Context, id string) (*model.ProblemSnapshot, error) {
	f.calls = append(f.calls, "problem:"+id)
	return f.problem, nil
}

type fakeAnalyzer struct {
	calls    int
	language string
	analysis model.Analysis
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ model.Credentials, language, _ string) (model.Analysis, error) {
	f.calls++
	f.language = language
	return f.analysis, nil
}

type fakeStore struct {
	pages []model.Page
	err   error
}

func (f *fakeStore) CreatePage(_ context.Context, _ model.Credentials, page model.Page) error {
	f.pages = append(f.pages, page)
	return f.err
}

type fakeNotifier struct {
	got []model.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, n model.Notification) error {
	f.got = append(f.got, n)
	return nil
}

type staticSettings model.Credentials

func (s staticSettings) Credentials() model.Credentials { return model.Credentials(s) }

var validSettings = staticSettings{GeminiKey: "g", NotionToken: "n", DatabaseID: "d"}

type fixture struct {
	judge    *fakeJudge
	analyzer *fakeAnalyzer
	store    *fakeStore
	notifier *fakeNotifier
	pipeline *SolutionPipeline
}

func newFixture(settings staticSettings) *fixture {
	f := &fixture{
		judge: &fakeJudge{
			source:  "print(sum(map(int, input().split())))",
			problem: &model.ProblemSnapshot{ID: "1000", Title: "A+B", Description: "d", Input: "i", Output: "o", SampleInput: "1 2", SampleOutput: "3", Tags: []string{"구현"}},
		},
		analyzer: &fakeAnalyzer{analysis: model.Analysis{Lines: []string{"요약"}, Tags: []string{"수학"}}},
		store:    &fakeStore{},
		notifier: &fakeNotifier{},
	}
	f.pipeline = NewSolutionPipeline(f.judge, f.analyzer, f.store, f.notifier, settings, logging.New(nil))
	f.pipeline.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.FixedZone("KST", 9*3600)) }
	return f
}

var submission = model.Submission{ID: "81234567", ProblemID: "1000", Language: "Python 3", Verdict: "맞았습니다!!"}

func TestRunSuccess(t *testing.T) {
	f := newFixture(validSettings)

	result := f.pipeline.Run(context.Background(), submission)

	assert.Equal(t, model.RunResult{Success: true, Title: "1000번: A+B", Message: `"1000번: A+B" 저장 완료!`}, result)
	assert.Equal(t, []string{"source:81234567", "problem:1000"}, f.judge.calls)
	assert.Equal(t, "Python 3", f.analyzer.language)

	require.Len(t, f.store.pages, 1)
	page := f.store.pages[0]
	assert.Equal(t, "1000번: A+B", page.Title)
	assert.Equal(t, []string{"수학"}, page.Tags)
	assert.Equal(t, time.UTC, page.Date.Location())
	assert.Equal(t, 14, page.Date.Day())

	assert.Equal(t, []model.Notification{
		{Level: model.LevelInfo, Message: "정답! (Python 3) 분석을 시작합니다..."},
		{Level: model.LevelSuccess, Message: `"1000번: A+B" 저장 완료!`},
	}, f.notifier.got)
}

func TestRunConfigMissingBeforeNetwork(t *testing.T) {
	f := newFixture(staticSettings{GeminiKey: "g", NotionToken: " "})

	result := f.pipeline.Run(context.Background(), submission)

	assert.False(t, result.Success)
	assert.Equal(t, apperr.ConfigMissing("notion_token", "database_id").Message, result.Message)
	assert.Empty(t, f.judge.calls)
	assert.Zero(t, f.analyzer.calls)
	assert.Empty(t, f.store.pages)

	require.Len(t, f.notifier.got, 2)
	assert.Equal(t, model.LevelError, f.notifier.got[1].Level)
	assert.Equal(t, "실패: "+result.Message, f.notifier.got[1].Message)
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	f := newFixture(validSettings)
	f.judge.sourceErr = apperr.API("fetch source", 404, "unexpected status 404")

	result := f.pipeline.Run(context.Background(), submission)

	assert.False(t, result.Success)
	assert.Equal(t, "fetch source 오류: unexpected status 404", result.Message)
	assert.Equal(t, []string{"source:81234567"}, f.judge.calls)
	assert.Zero(t, f.analyzer.calls)
}

func TestRunUploadFailure(t *testing.T) {
	f := newFixture(validSettings)
	f.store.err = apperr.API("Notion", 400, "bad database")

	result := f.pipeline.Run(context.Background(), submission)

	assert.Equal(t, model.RunResult{Message: "Notion 오류: bad database"}, result)
	assert.Equal(t, 1, f.analyzer.calls)
}

func TestRunWithoutNotifier(t *testing.T) {
	f := newFixture(validSettings)
	f.pipeline.notifier = nil
	f.store.err = errors.New("boom")

	result := f.pipeline.Run(context.Background(), submission)
	assert.Equal(t, "boom", result.Message)
}
