package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// newPDFExtractor extracts per-page plain text from a PDF attachment,
// joining pages with newlines.
func newPDFExtractor(logger *zap.Logger) Extractor {
	return func(data []byte) string {
		reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			logger.Error("Error processing PDF", zap.Error(err))
			return ""
		}

		var pages []string
		for i := 1; i <= reader.NumPage(); i++ {
			page := reader.Page(i)
			if page.V.IsNull() {
				continue
			}
			text, err := page.GetPlainText(nil)
			if err != nil {
				logger.Warn("Error extracting PDF page text",
					zap.Int("page", i),
					zap.Error(err))
				continue
			}
			pages = append(pages, text)
		}
		return strings.Join(pages, "\n")
	}
}
