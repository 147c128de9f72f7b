package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotebook/internal/entities"
	"github.com/mrlokans/quotebook/internal/exporters"
	"github.com/mrlokans/quotebook/internal/importers"
)

// MaxUploadSize limits uploaded quote files.
const MaxUploadSize = 5 << 20 // 5MB

const MessageImported = "Quotes imported successfully!"

// TransferController moves the quote list in and out of the book as files.
type TransferController struct {
	importer QuoteImporter
	exporter QuoteExporter
	notifier Notifier
}

func NewTransferController(importer QuoteImporter, exporter QuoteExporter, notifier Notifier) *TransferController {
	return &TransferController{
		importer: importer,
		exporter: exporter,
		notifier: notifier,
	}
}

// readUpload returns the bytes of the multipart "file" field.
func readUpload(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("no file provided: %w", err)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return io.ReadAll(file)
}

// ImportForm handles POST /import from the page's upload form.
func (tc *TransferController) ImportForm(c *gin.Context) {
	contents, err := readUpload(c)
	if err != nil {
		log.Warnf("Import upload rejected: %v", err)
		tc.notify(entities.NotificationError, importers.ErrInvalidFile.Error())
		redirectHome(c)
		return
	}

	if _, err := tc.importer.Import(c.Request.Context(), contents); err != nil {
		if errors.Is(err, importers.ErrInvalidFile) {
			tc.notify(entities.NotificationError, importers.ErrInvalidFile.Error())
		} else {
			log.Errorf("Import failed: %v", err)
			tc.notify(entities.NotificationError, "Import failed.")
		}
		redirectHome(c)
		return
	}

	tc.notify(entities.NotificationSuccess, MessageImported)
	redirectHome(c)
}

// ImportAPI handles POST /api/import. The file may be sent as the raw
// request body or as the multipart "file" field.
func (tc *TransferController) ImportAPI(c *gin.Context) {
	var (
		contents []byte
		err      error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		contents, err = readUpload(c)
	} else {
		contents, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize))
	}
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := tc.importer.Import(c.Request.Context(), contents)
	if err != nil {
		if errors.Is(err, importers.ErrInvalidFile) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_file"})
			return
		}
		respondInternalError(c, err, "import quotes")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: MessageImported, Data: result})
}

// Export handles GET /api/export?format=json|md and serves the file as a
// download.
func (tc *TransferController) Export(c *gin.Context) {
	format, err := exporters.ParseFormat(c.Query("format"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	doc, err := tc.exporter.Export(format)
	if err != nil {
		respondInternalError(c, err, "export quotes")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func (tc *TransferController) notify(level entities.NotificationLevel, message string) {
	if tc.notifier != nil {
		tc.notifier.Notify(level, message)
	}
}
