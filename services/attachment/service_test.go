package attachment

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailbroker/dto"
	"github.com/customeros/mailbroker/interfaces"
	"github.com/customeros/mailbroker/internal/enum"
	mailbroker_errors "github.com/customeros/mailbroker/internal/errors"
	"github.com/customeros/mailbroker/internal/logger"
	"github.com/customeros/mailbroker/services/extraction"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, threadId, attachmentId string) ([]byte, error) {
	args := m.Called(ctx, threadId, attachmentId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
	fileType enum.FileType
}

func (m *MockExtractor) FileType() enum.FileType {
	return m.fileType
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte) (*dto.ExtractionResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExtractionResult), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	args := m.Called(ctx, entityId, entityType, message)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

func testLogger() logger.Logger {
	log := logger.NewAppLogger(&logger.Config{LogLevel: "error"})
	log.InitLogger()
	return log
}

func docx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func newService(fetcher interfaces.AttachmentFetcher, opts ...Option) interfaces.AttachmentService {
	return NewAttachmentService(testLogger(), fetcher, []interfaces.TextExtractor{
		extraction.NewPDFExtractor(),
		extraction.NewDOCXExtractor(),
	}, opts...)
}

func TestExtractText_DOCX(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a1").Return(docx(t, `<w:p><w:t>Hello</w:t></w:p><w:p><w:t>World</w:t></w:p>`), nil)
	svc := newService(fetcher)

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Text)
	assert.Equal(t, "Hello\nWorld", *result.Text)
	assert.Equal(t, enum.FileTypeDOCX, result.FileType)
	fetcher.AssertExpectations(t)
}

func TestExtractText_UnsupportedType(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a1").Return([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A}, nil)
	svc := newService(fetcher)

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a1")

	// Assert
	require.NoError(t, err)
	assert.Nil(t, result.Text)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Unsupported file type: unknown", *result.Error)
	assert.Equal(t, enum.FileTypeUnknown, result.FileType)
}

func TestExtractText_EmptyBlobIsUnsupported(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a1").Return([]byte{}, nil)
	svc := newService(fetcher)

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Unsupported file type: unknown", *result.Error)
}

func TestExtractText_FetchErrorPropagates(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a404").Return(nil, errors.New("Attachment not found"))
	svc := newService(fetcher)

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a404")

	// Assert
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Attachment not found")
}

func TestExtractText_CorruptPDFPropagates(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a1").Return([]byte("%PDF-broken"), nil)
	svc := newService(fetcher)

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a1")

	// Assert
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestExtractText_MissingIds(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	svc := newService(fetcher)

	// Act
	_, errThread := svc.ExtractText(context.Background(), "", "a1")
	_, errAttachment := svc.ExtractText(context.Background(), "t1", "")

	// Assert
	assert.ErrorIs(t, errThread, mailbroker_errors.ErrMissingThreadId)
	assert.ErrorIs(t, errAttachment, mailbroker_errors.ErrMissingAttachId)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}

func TestExtractBytes_DispatchesByMagic(t *testing.T) {
	// Arrange
	pdfExtractor := &MockExtractor{fileType: enum.FileTypePDF}
	data := []byte("%PDF-1.7\n...")
	pdfExtractor.On("Extract", mock.Anything, data).Return(dto.NewExtractedText("from pdf", enum.FileTypePDF), nil)
	svc := NewAttachmentService(testLogger(), new(MockFetcher), []interfaces.TextExtractor{pdfExtractor})

	// Act
	result, err := svc.ExtractBytes(context.Background(), data)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "from pdf", *result.Text)
	pdfExtractor.AssertExpectations(t)
}

func TestExtractBytes_TooLarge(t *testing.T) {
	// Arrange
	svc := newService(new(MockFetcher), WithMaxSize(4))

	// Act
	result, err := svc.ExtractBytes(context.Background(), []byte("%PDF-1.4"))

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, mailbroker_errors.ErrAttachmentTooLarge)
}

func TestExtractText_PublishesEvent(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a1").Return(docx(t, `<w:p><w:t>Hi</w:t></w:p>`), nil)
	publisher := new(MockPublisher)
	publisher.On("PublishFanoutEvent", mock.Anything, "a1", enum.ATTACHMENT, dto.AttachmentTextExtracted{
		ThreadId:     "t1",
		AttachmentId: "a1",
		FileType:     enum.FileTypeDOCX.String(),
		TextLength:   2,
	}).Return(nil)
	svc := newService(fetcher, WithPublisher(publisher))

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Hi", *result.Text)
	publisher.AssertExpectations(t)
}

func TestExtractText_PublishFailureIsIgnored(t *testing.T) {
	// Arrange
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "t1", "a1").Return([]byte("GIF89a"), nil)
	publisher := new(MockPublisher)
	publisher.On("PublishFanoutEvent", mock.Anything, "a1", enum.ATTACHMENT, mock.Anything).Return(errors.New("broker down"))
	svc := newService(fetcher, WithPublisher(publisher))

	// Act
	result, err := svc.ExtractText(context.Background(), "t1", "a1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Unsupported file type: unknown", *result.Error)
	publisher.AssertExpectations(t)
}
