package dto

import (
	"github.com/customeros/mailbroker/internal/enum"
)

// ExtractionResult is the outcome of one attachment text extraction.
// Text and Error are mutually exclusive; FileType is empty when the blob was not recognised.
type ExtractionResult struct {
	Text     *string       `json:"text,omitempty"`
	Error    *string       `json:"error,omitempty"`
	FileType enum.FileType `json:"fileType,omitempty"`
}

func NewExtractedText(text string, fileType enum.FileType) *ExtractionResult {
	return &ExtractionResult{Text: &text, FileType: fileType}
}

func NewExtractionError(message string, fileType enum.FileType) *ExtractionResult {
	return &ExtractionResult{Error: &message, FileType: fileType}
}

func (r *ExtractionResult) HasError() bool {
	return r != nil && r.Error != nil
}

func (r *ExtractionResult) TextLength() int {
	if r == nil || r.Text == nil {
		return 0
	}
	return len(*r.Text)
}
