package extraction

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/enum"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/tracing"
)

const (
	docxDocumentPath = "word/document.xml"

	MissingDocumentXMLMessage = "Invalid DOCX: missing word/document.xml"

	maxDocumentXMLSize = 64 << 20
)

var (
	paragraphTagRegex = regexp.MustCompile(`<w:p[^>]*>`)
	xmlTagRegex       = regexp.MustCompile(`<[^>]+>`)
	blankLinesRegex   = regexp.MustCompile(`\n{3,}`)
)

// applied one after another; &amp; must come after &lt; and &gt;
var xmlEntities = []struct {
	entity string
	value  string
}{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&amp;", "&"},
	{"&quot;", `"`},
	{"&apos;", "'"},
}

type docxExtractor struct{}

func NewDOCXExtractor() interfaces.TextExtractor {
	return &docxExtractor{}
}

func (e *docxExtractor) FileType() enum.FileType {
	return enum.FileTypeDOCX
}

func (e *docxExtractor) Extract(ctx context.Context, data []byte) (*dto.ExtractionResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "docxExtractor.Extract")
	defer span.Finish()
	tracing.SetDefaultExtractorSpanTags(ctx, span)
	span.LogKV("size", len(data))

	documentXml, err := readDocumentXML(data)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if documentXml == "" {
		span.LogKV("result", "missing document.xml")
		return dto.NewExtractionError(MissingDocumentXMLMessage, enum.FileTypeDOCX), nil
	}

	text := DocumentXMLToText(documentXml)
	span.LogKV("textLength", len(text))
	return dto.NewExtractedText(text, enum.FileTypeDOCX), nil
}

// readDocumentXML returns "" when the archive has no (or an empty) word/document.xml.
func readDocumentXML(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(mailbroker_errors.ErrInvalidZip, err.Error())
	}

	for _, file := range archive.File {
		if file.Name != docxDocumentPath {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", errors.Wrapf(err, "failed to open %s", docxDocumentPath)
		}
		defer rc.Close()

		content, err := io.ReadAll(io.LimitReader(rc, maxDocumentXMLSize+1))
		if err != nil {
			return "", errors.Wrapf(err, "failed to read %s", docxDocumentPath)
		}
		if len(content) > maxDocumentXMLSize {
			return "", errors.Errorf("%s exceeds %d bytes", docxDocumentPath, maxDocumentXMLSize)
		}
		return string(content), nil
	}

	return "", nil
}

// DocumentXMLToText turns WordprocessingML into plain text without parsing the XML:
// paragraph openings become newlines, remaining tags are dropped, the five predefined
// entities are unescaped and runs of blank lines are limited to one.
func DocumentXMLToText(documentXml string) string {
	text := paragraphTagRegex.ReplaceAllString(documentXml, "\n")
	text = xmlTagRegex.ReplaceAllString(text, "")
	for _, e := range xmlEntities {
		text = strings.ReplaceAll(text, e.entity, e.value)
	}
	text = blankLinesRegex.ReplaceAllString(text, "\n\n")
	return strings.TrimFunc(text, isTrimmable)
}

// isTrimmable follows ECMAScript trim: the byte order mark is trimmed, NEL is not.
func isTrimmable(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
