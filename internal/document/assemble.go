// Package document assembles the block tree of an uploaded solution note.
package document

import (
	"fmt"
	"strings"
	"time"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/richtext"
)

const (
	// CodeChunkSize is the maximum text length of one code block in the document store.
	CodeChunkSize = 2000

	descriptionLimit = 1500
	sectionLimit     = 1000

	emptyAnalysis = "분석 내용 없음"
)

// Input is everything a solution note is built from.
type Input struct {
	Problem  model.ProblemSnapshot
	Analysis model.Analysis
	Language string
	Code     string
}

// Build assembles the page for in, dated date.
func Build(in Input, date time.Time) model.Page {
	return model.Page{
		Title:  in.Problem.FullTitle(),
		Date:   date,
		Tags:   Tags(in.Analysis.Tags, in.Problem.Tags),
		Blocks: Assemble(in),
	}
}

// Assemble returns the ordered body: problem toggle, strategy section, code section.
func Assemble(in Input) []model.Block {
	blocks := []model.Block{
		problemToggle(in.Problem),
		model.Heading(2, "💡 풀이 전략"),
	}
	blocks = append(blocks, analysisBlocks(in.Analysis.Lines)...)

	blocks = append(blocks, model.Heading(2, fmt.Sprintf("💻 %s Code", in.Language)))
	language := MapLanguage(in.Language)
	for _, chunk := range ChunkCode(in.Code, CodeChunkSize) {
		blocks = append(blocks, model.Code(language, chunk))
	}
	return blocks
}

func problemToggle(p model.ProblemSnapshot) model.Block {
	children := textBlocks(p.Description, descriptionLimit)

	children = append(children, model.Heading(3, "입력"))
	children = append(children, textBlocks(p.Input, sectionLimit)...)

	children = append(children, model.Heading(3, "출력"))
	children = append(children, textBlocks(p.Output, sectionLimit)...)

	if strings.TrimSpace(p.Hint) != "" {
		children = append(children, model.Heading(3, "힌트"))
		children = append(children, textBlocks(p.Hint, sectionLimit)...)
	}

	children = append(children,
		model.Heading(3, "예제 입력 1"),
		model.Code(PlainText, truncate(p.SampleInput, sectionLimit)),
		model.Heading(3, "예제 출력 1"),
		model.Code(PlainText, truncate(p.SampleOutput, sectionLimit)),
	)

	return model.Toggle(fmt.Sprintf("📂 문제 정보: %s (Click)", p.FullTitle()), children)
}

// textBlocks renders a statement section. Image markers become image blocks;
// the remaining text shares one character budget.
func textBlocks(text string, limit int) []model.Block {
	var blocks []model.Block
	remaining := limit
	for _, frag := range richtext.SplitImages(text) {
		if remaining <= 0 {
			break
		}
		if frag.IsImage() {
			blocks = append(blocks, model.Image(frag.ImageURL))
			continue
		}
		cut := truncate(frag.Text, remaining)
		remaining -= len([]rune(cut))
		blocks = append(blocks, model.Paragraph(richtext.Tokenize(cut)))
	}
	if len(blocks) == 0 {
		blocks = append(blocks, model.Paragraph(nil))
	}
	return blocks
}

func analysisBlocks(lines []string) []model.Block {
	if len(lines) == 0 {
		lines = []string{emptyAnalysis}
	}

	blocks := make([]model.Block, 0, len(lines))
	for i, line := range lines {
		rich := richtext.Tokenize(richtext.Sanitize(line))
		if i == 0 {
			blocks = append(blocks, model.Quote(rich))
			continue
		}
		blocks = append(blocks, model.Bulleted(rich))
	}
	return blocks
}

// ChunkCode splits code into pieces of at most size characters.
func ChunkCode(code string, size int) []string {
	if code == "" || size <= 0 {
		return nil
	}
	runes := []rune(code)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Tags picks the multi-select values for the page: the AI tags when present,
// otherwise the judge's own tags. Multi-select names may not contain commas.
func Tags(ai, scraped []string) []string {
	source := ai
	if len(cleanTags(ai)) == 0 {
		source = scraped
	}
	return cleanTags(source)
}

func cleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ReplaceAll(tag, ",", " "))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
