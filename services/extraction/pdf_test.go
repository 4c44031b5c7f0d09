package extraction

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/internal/enum"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
)

// extractWithin fails the test when extraction does not return in time.
func extractWithin(t *testing.T, ctx context.Context, data []byte, limit time.Duration) (*dto.ExtractionResult, error) {
	t.Helper()

	type outcome struct {
		res *dto.ExtractionResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := NewPDFExtractor().Extract(ctx, data)
		done <- outcome{res, err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-time.After(limit):
		t.Fatalf("extraction still running after %v", limit)
		return nil, nil
	}
}

func TestPDFExtractor_Extract(t *testing.T) {
	data := buildPDF(t, "Hello PDF")

	res, err := NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)

	require.NotNil(t, res.Text)
	assert.Nil(t, res.Error)
	assert.Contains(t, *res.Text, "Hello PDF")
	assert.Equal(t, enum.FileTypePDF, res.FileType)
}

func TestPDFExtractor_JoinsPagesWithNewline(t *testing.T) {
	data := buildPDF(t, "Page one", "Page two")

	res, err := NewPDFExtractor().Extract(context.Background(), data)
	require.NoError(t, err)
	require.NotNil(t, res.Text)

	text := *res.Text
	first := strings.Index(text, "Page one")
	second := strings.Index(text, "Page two")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, text[first:second], "\n")
}

func TestPDFExtractor_CorruptInputFails(t *testing.T) {
	inputs := map[string][]byte{
		"magic only":    []byte("%PDF"),
		"bad header":    []byte("%PDF-garbage that is not a document at all, not even close to one, just words and more words"),
		"truncated":     buildPDF(t, "Hello")[:120],
		"no eof marker": []byte("%PDF-1.4\n" + strings.Repeat("x", 200)),
	}

	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			res, err := NewPDFExtractor().Extract(context.Background(), data)

			assert.Error(t, err)
			assert.Nil(t, res)
		})
	}
}

func TestPDFExtractor_SelfReferencingPageTreeFails(t *testing.T) {
	// Arrange
	data := buildPDFObjects(t,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [2 0 R] /Count 5 >>",
	)

	// Act
	res, err := extractWithin(t, context.Background(), data, 5*time.Second)

	// Assert
	assert.ErrorIs(t, err, mailbroker_errors.ErrInvalidPDF)
	assert.Nil(t, res)
}

func TestPDFExtractor_PageCountLargerThanDocumentFails(t *testing.T) {
	// Arrange
	data := buildPDFObjects(t,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 50000000 >>",
	)

	// Act
	res, err := extractWithin(t, context.Background(), data, 5*time.Second)

	// Assert
	assert.ErrorIs(t, err, mailbroker_errors.ErrInvalidPDF)
	assert.Nil(t, res)
}

func TestPDFExtractor_DeepPageTreeFails(t *testing.T) {
	// Arrange
	objects := []string{"<< /Type /Catalog /Pages 2 0 R >>"}
	for i := 0; i < 70; i++ {
		objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", i+3))
	}
	objects = append(objects, "<< /Type /Page /MediaBox [0 0 612 792] >>")
	data := buildPDFObjects(t, objects...)

	// Act
	res, err := extractWithin(t, context.Background(), data, 5*time.Second)

	// Assert
	assert.ErrorIs(t, err, mailbroker_errors.ErrInvalidPDF)
	assert.Nil(t, res)
}

func TestPDFExtractor_NoPagesYieldsEmptyText(t *testing.T) {
	// Arrange
	data := buildPDFObjects(t,
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [] /Count 0 >>",
	)

	// Act
	res, err := extractWithin(t, context.Background(), data, 5*time.Second)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, res.Text)
	assert.Equal(t, "", *res.Text)
	assert.Equal(t, enum.FileTypePDF, res.FileType)
}

func TestPDFExtractor_CancelledContextStops(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	res, err := extractWithin(t, ctx, buildPDF(t, "Hello"), 5*time.Second)

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
}
