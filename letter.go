package invoicepdf

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// BlockKind distinguishes the two block types of a letter body.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
)

// Block is one structured element of a letter body. Callers should supply
// blocks directly; ParseBody exists for the ones that still send free text.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
}

// Letter is the input for the generic document variant: a dated, titled
// document of headings and wrapped paragraphs on the letterhead.
type Letter struct {
	Title  string    `json:"title"`
	Date   time.Time `json:"date,omitempty"`
	Blocks []Block   `json:"blocks,omitempty"`

	// Body is legacy free text, converted with ParseBody when Blocks is
	// empty.
	Body string `json:"body,omitempty"`
}

// RenderLetter renders a generic document. Long bodies paginate; each new
// page starts from a fresh letterhead with the cursor reset to the top
// margin.
func (e *Engine) RenderLetter(ctx context.Context, l *Letter) (*Rendered, error) {
	if l.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	blocks := l.Blocks
	if len(blocks) == 0 {
		blocks = ParseBody(l.Body)
	}
	if len(blocks) == 0 {
		return nil, &ValidationError{Field: "body", Reason: "required"}
	}
	for _, b := range blocks {
		if b.Kind != BlockHeading && b.Kind != BlockParagraph {
			return nil, &ValidationError{Field: "blocks.kind", Reason: "must be heading or paragraph"}
		}
	}

	date := l.Date
	if date.IsZero() {
		date = e.now()
	}

	st := &renderState{Canvas: e.newCanvas(), eng: e, date: date}
	th := e.theme
	left := th.Margins.Left
	body := th.body(th.BodySize)
	lh := lineHeight(th.BodySize)

	secs := []section{
		{"title", func(st *renderState) error {
			st.EnsureSpace(lineHeight(th.TitleSize) + lh + 12)
			st.Text(left, st.Y()+th.TitleSize, l.Title, th.bold(th.TitleSize))
			st.Advance(lineHeight(th.TitleSize))
			st.SetTextColor(th.MutedColor)
			st.Text(left, st.Y()+th.BodySize, date.Format("2 January 2006"), body)
			st.SetTextColor(black)
			st.Advance(lh + 12)
			return nil
		}},
		{"body", func(st *renderState) error {
			for _, b := range blocks {
				if b.Kind == BlockHeading {
					st.EnsureSpace(lineHeight(th.SubtitleSize) + 8)
					st.Advance(6)
					st.Text(left, st.Y()+th.SubtitleSize, b.Text, th.bold(th.SubtitleSize))
					st.Advance(lineHeight(th.SubtitleSize) + 2)
					continue
				}
				for _, line := range st.Wrap(b.Text, st.ContentWidth(), body) {
					st.EnsureSpace(lh)
					st.Text(left, st.Y()+th.BodySize, line, body)
					st.Advance(lh)
				}
				st.Advance(8)
			}
			return nil
		}},
	}
	return e.run(st, secs, documentFilename(l.Title))
}

// ParseBody converts free text into blocks: paragraphs are separated by
// blank lines, and a paragraph is detected as a heading when it starts with
// "##" or is a short all-caps line without a period. This sniffing exists
// for legacy callers only; structured Blocks bypass it entirely.
func ParseBody(body string) []Block {
	var blocks []Block
	for _, para := range strings.Split(body, "\n\n") {
		para = strings.TrimSpace(strings.Join(strings.Fields(para), " "))
		if para == "" {
			continue
		}
		if strings.HasPrefix(para, "##") {
			blocks = append(blocks, Block{
				Kind: BlockHeading,
				Text: strings.TrimSpace(strings.TrimLeft(para, "#")),
			})
			continue
		}
		if looksLikeHeading(para) {
			blocks = append(blocks, Block{Kind: BlockHeading, Text: para})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: para})
	}
	return blocks
}

func looksLikeHeading(para string) bool {
	if len(para) > 48 || strings.Contains(para, ".") {
		return false
	}
	hasLetter := false
	for _, r := range para {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
