package enum

type FileType string

const (
	FileTypeUnknown FileType = ""
	FileTypePDF     FileType = "application/pdf"
	FileTypeDOCX    FileType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (t FileType) String() string {
	return string(t)
}

// Label returns the MIME string, or "unknown" when the type was not detected.
func (t FileType) Label() string {
	if t == FileTypeUnknown {
		return "unknown"
	}
	return string(t)
}

func (t FileType) IsKnown() bool {
	return t == FileTypePDF || t == FileTypeDOCX
}
