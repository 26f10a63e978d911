package document

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/richtext"
)

func sampleProblem() model.ProblemSnapshot {
	return model.ProblemSnapshot{
		ID:           "1000",
		Title:        "A+B",
		Description:  "두 정수 $A$와 $B$를 입력받은 다음, $A+B$를 출력하는 프로그램을 작성하시오.",
		Input:        "첫째 줄에 \\(A\\)와 \\(B\\)가 주어진다.",
		Output:       "첫째 줄에 A+B를 출력한다.",
		SampleInput:  "1 2",
		SampleOutput: "3",
		Tags:         []string{"수학", "구현"},
	}
}

func TestAssemble(t *testing.T) {
	in := Input{
		Problem: sampleProblem(),
		Analysis: model.Analysis{
			Lines: []string{"**입출력** 기본 문제입니다.", "- 두 수를 `더해` 출력합니다."},
		},
		Language: "C++17",
		Code:     "int main(){}",
	}

	want := []model.Block{
		model.Toggle("📂 문제 정보: 1000번: A+B (Click)", []model.Block{
			model.Paragraph([]model.Segment{
				model.Text("두 정수 "),
				model.Equation("A"),
				model.Text("와 "),
				model.Equation("B"),
				model.Text("를 입력받은 다음, "),
				model.Equation("A+B"),
				model.Text("를 출력하는 프로그램을 작성하시오."),
			}),
			model.Heading(3, "입력"),
			model.Paragraph([]model.Segment{
				model.Text("첫째 줄에 "),
				model.Equation("A"),
				model.Text("와 "),
				model.Equation("B"),
				model.Text("가 주어진다."),
			}),
			model.Heading(3, "출력"),
			model.Paragraph([]model.Segment{model.Text("첫째 줄에 A+B를 출력한다.")}),
			model.Heading(3, "예제 입력 1"),
			model.Code(PlainText, "1 2"),
			model.Heading(3, "예제 출력 1"),
			model.Code(PlainText, "3"),
		}),
		model.Heading(2, "💡 풀이 전략"),
		model.Quote([]model.Segment{model.Text("입출력 기본 문제입니다.")}),
		model.Bulleted([]model.Segment{model.Text("두 수를 더해 출력합니다.")}),
		model.Heading(2, "💻 C++17 Code"),
		model.Code("c++", "int main(){}"),
	}

	if diff := cmp.Diff(want, Assemble(in)); diff != "" {
		t.Errorf("Assemble() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleHintAndImages(t *testing.T) {
	p := sampleProblem()
	p.Hint = "그림 참고"
	p.Description = "아래 그림\n" + richtext.ImageMarker("https://upload.acmicpc.net/x.png") + "\n끝"

	blocks := Assemble(Input{Problem: p, Language: "Text", Code: "x"})
	children := blocks[0].Children

	assert.Equal(t, model.BlockParagraph, children[0].Kind)
	assert.Equal(t, model.Image("https://upload.acmicpc.net/x.png"), children[1])
	assert.Equal(t, model.BlockParagraph, children[2].Kind)

	var headings []string
	for _, b := range children {
		if b.Kind == model.BlockHeading {
			headings = append(headings, model.Concat(b.Text))
		}
	}
	assert.Equal(t, []string{"입력", "출력", "힌트", "예제 입력 1", "예제 출력 1"}, headings)
}

func TestAssembleEmptyAnalysis(t *testing.T) {
	blocks := Assemble(Input{Problem: sampleProblem(), Language: "Python 3", Code: "print(3)"})

	assert.Equal(t, model.Quote([]model.Segment{model.Text("분석 내용 없음")}), blocks[2])
}

func TestAssembleTruncatesStatement(t *testing.T) {
	p := sampleProblem()
	p.Description = strings.Repeat("가", 2000)
	p.Input = strings.Repeat("나", 1200)

	children := Assemble(Input{Problem: p, Code: "x"})[0].Children

	assert.Len(t, []rune(model.Concat(children[0].Text)), 1500)
	assert.Len(t, []rune(model.Concat(children[2].Text)), 1000)
}

func TestCodeSplitIntoChunks(t *testing.T) {
	code := strings.Repeat("a", 4500)

	blocks := Assemble(Input{Problem: sampleProblem(), Language: "Java 11", Code: code})

	var codes []model.Block
	for _, b := range blocks[1:] {
		if b.Kind == model.BlockCode {
			codes = append(codes, b)
		}
	}
	require.Len(t, codes, 3)
	for i, want := range []int{2000, 2000, 500} {
		assert.Len(t, model.Concat(codes[i].Text), want)
		assert.Equal(t, "java", codes[i].Language)
	}
}

func TestChunkCode(t *testing.T) {
	assert.Nil(t, ChunkCode("", 10))
	assert.Equal(t, []string{"ab", "cd", "e"}, ChunkCode("abcde", 2))
	assert.Equal(t, []string{"한글", "코드"}, ChunkCode("한글코드", 2))
}

func TestMapLanguage(t *testing.T) {
	tests := map[string]string{
		"PyPy3":            "python",
		"Python 3":         "python",
		"C++17":            "c++",
		"C++14 (Clang)":    "c++",
		"Java 11":          "java",
		"Java 8 (OpenJDK)": "java",
		"node.js":          "javascript",
		"JavaScript":       "javascript",
		"TypeScript":       "typescript",
		"C99":              "c",
		"C11":              "c",
		"C":                "c",
		"C (Clang)":        "c",
		"C#":               "c#",
		"Kotlin (JVM)":     "kotlin",
		"Rust 2021":        "rust",
		"Go":               "go",
		"Swift":            "swift",
		"Ruby":             "ruby",
		"Brainfuck":        PlainText,
		"":                 PlainText,
	}

	for label, want := range tests {
		assert.Equal(t, want, MapLanguage(label), label)
	}
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"BFS", "그래프 탐색"}, Tags([]string{" BFS ", "그래프 탐색", "BFS"}, []string{"수학"}))
	assert.Equal(t, []string{"수학", "구현"}, Tags(nil, []string{"수학", "구현"}))
	assert.Equal(t, []string{"수학"}, Tags([]string{"  "}, []string{"수학"}))
	assert.Equal(t, []string{"DP  LIS"}, Tags([]string{"DP, LIS"}, nil))
}

func TestBuild(t *testing.T) {
	date := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	page := Build(Input{Problem: sampleProblem(), Analysis: model.Analysis{Tags: []string{"사칙연산"}}, Code: "x"}, date)

	assert.Equal(t, "1000번: A+B", page.Title)
	assert.Equal(t, date, page.Date)
	assert.Equal(t, []string{"사칙연산"}, page.Tags)
	assert.NotEmpty(t, page.Blocks)
}
