package utils

import (
	"bytes"

	"github.com/customeros/mailbroker/internal/enum"
)

var (
	pdfMagic = []byte{0x25, 0x50, 0x44, 0x46} // %PDF
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04} // PK\x03\x04
)

// DetectFileType classifies a blob by its first four bytes.
// Every ZIP container is reported as DOCX; xlsx, pptx and plain archives are not told apart.
func DetectFileType(data []byte) enum.FileType {
	if len(data) < 4 {
		return enum.FileTypeUnknown
	}

	head := data[:4]
	switch {
	case bytes.Equal(head, pdfMagic):
		return enum.FileTypePDF
	case bytes.Equal(head, zipMagic):
		return enum.FileTypeDOCX
	default:
		return enum.FileTypeUnknown
	}
}
