package extraction

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/enum"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/tracing"
)

type pdfExtractor struct{}

func NewPDFExtractor() interfaces.TextExtractor {
	return &pdfExtractor{}
}

func (e *pdfExtractor) FileType() enum.FileType {
	return enum.FileTypePDF
}

// Extract returns the text of every page, pages separated by a newline. A document
// without pages yields empty text. Any parse failure is returned as an error; partial
// text is never reported.
func (e *pdfExtractor) Extract(ctx context.Context, data []byte) (*dto.ExtractionResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "pdfExtractor.Extract")
	defer span.Finish()
	tracing.SetDefaultExtractorSpanTags(ctx, span)
	span.LogKV("size", len(data))

	text, err := readPDFText(ctx, data)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	span.LogKV("textLength", len(text))
	return dto.NewExtractedText(text, enum.FileTypePDF), nil
}

const (
	// smallest plausible serialized page object, used to bound /Count
	minPageObjectSize = 16
	maxPageTreeDepth  = 64
)

func readPDFText(ctx context.Context, data []byte) (text string, err error) {
	// the parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = errors.Wrap(mailbroker_errors.ErrInvalidPDF, fmt.Sprintf("parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse PDF")
	}

	pages, err := collectPages(reader, len(data))
	if err != nil {
		return "", err
	}

	fonts := make(map[string]*pdf.Font)
	segments := make([]string, 0, len(pages))
	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := page.GetPlainText(fonts)
		if err != nil {
			return "", errors.Wrapf(err, "failed to extract text from PDF page %d", i+1)
		}
		segments = append(segments, pageText)
	}

	return strings.Join(segments, "\n"), nil
}

// collectPages walks the page tree in document order. Cyclic or oversized trees
// are rejected instead of handed to reader.Page, which follows /Kids unchecked.
func collectPages(reader *pdf.Reader, size int) ([]pdf.Page, error) {
	root := reader.Trailer().Key("Root").Key("Pages")
	if root.IsNull() {
		return nil, errors.Wrap(mailbroker_errors.ErrInvalidPDF, "missing page tree")
	}

	budget := size / minPageObjectSize
	if count := root.Key("Count").Int64(); count < 0 || count > int64(budget) {
		return nil, errors.Wrapf(mailbroker_errors.ErrInvalidPDF, "page count %d does not fit in %d bytes", count, size)
	}

	var pages []pdf.Page
	visited := make(map[string]struct{})
	nodes := 0

	var walk func(node pdf.Value, depth int) error
	walk = func(node pdf.Value, depth int) error {
		if depth > maxPageTreeDepth {
			return errors.Wrap(mailbroker_errors.ErrInvalidPDF, "page tree too deep")
		}
		nodes++
		if nodes > budget+1 {
			return errors.Wrap(mailbroker_errors.ErrInvalidPDF, "page tree larger than document")
		}

		switch node.Key("Type").Name() {
		case "Page":
			pages = append(pages, pdf.Page{V: node})
		case "Pages":
			kids := node.Key("Kids")
			if kids.Len() == 0 {
				return nil
			}
			// an intermediate node prints its own /Kids references, so a repeat means a cycle
			key := node.String()
			if _, seen := visited[key]; seen {
				return errors.Wrap(mailbroker_errors.ErrInvalidPDF, "page tree contains a cycle")
			}
			visited[key] = struct{}{}
			for i := 0; i < kids.Len(); i++ {
				if err := walk(kids.Index(i), depth+1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(root, 0); err != nil {
		return nil, err
	}
	return pages, nil
}
