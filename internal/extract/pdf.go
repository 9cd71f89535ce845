package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"invoicerpa/internal/entity"
)

// PDFExtractor reads the text layer of a PDF entirely in memory. Image-only
// PDFs surface as no_text_layer; OCR is out of scope. One document, one
// attempt: parsing is idempotent, so retries belong to the caller if anywhere.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Extract(_ context.Context, doc *entity.RawDocument) (TextExtractionResult, error) {
	start := time.Now()
	res := TextExtractionResult{Method: "pdf-text"}

	text, pages, err := readAllText(doc.Content)
	res.Duration = time.Since(start)
	res.Pages = pages
	if err != nil {
		e.logger.Warn("pdf parse failed", "source_id", doc.SourceID, "error", err)
		return res, &ExtractionError{Reason: ReasonCorrupt, Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		e.logger.Warn("pdf has no extractable text layer", "source_id", doc.SourceID, "pages", pages)
		return res, &ExtractionError{Reason: ReasonNoTextLayer}
	}

	res.Text = text
	e.logger.Debug("pdf text extracted",
		"source_id", doc.SourceID, "pages", pages,
		"bytes", len(text), "elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// readAllText walks every page and reassembles lines from glyph positions.
// The pdf package panics on some malformed inputs; those count as corrupt.
func readAllText(content []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, err
	}
	pages = r.NumPage()

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pageText(p))
	}
	return b.String(), pages, nil
}

// pageText groups positioned text fragments into visual lines. Line breaks
// matter downstream: recognizers anchor on labels at the start of a line.
// PDF y grows upward, so lines are emitted top to bottom by descending y.
func pageText(p pdf.Page) string {
	content := p.Content()
	if len(content.Text) == 0 {
		return ""
	}

	type line struct {
		y     float64
		spans []pdf.Text
	}
	var lines []*line
	for _, t := range content.Text {
		var cur *line
		for _, l := range lines {
			if math.Abs(l.y-t.Y) < 2 {
				cur = l
				break
			}
		}
		if cur == nil {
			cur = &line{y: t.Y}
			lines = append(lines, cur)
		}
		cur.spans = append(cur.spans, t)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var b strings.Builder
	for i, l := range lines {
		spans := l.spans
		sort.Slice(spans, func(a, b int) bool { return spans[a].X < spans[b].X })
		if i > 0 {
			b.WriteByte('\n')
		}
		prevEnd := math.Inf(-1)
		for _, s := range spans {
			// A visible horizontal gap between fragments becomes a space.
			if !math.IsInf(prevEnd, -1) && s.X-prevEnd > s.FontSize*0.3 {
				b.WriteByte(' ')
			}
			b.WriteString(s.S)
			prevEnd = s.X + s.W
		}
	}
	return b.String()
}
