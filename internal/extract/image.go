package extract

import (
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// newImageExtractor runs Tesseract OCR over an image attachment.
func newImageExtractor(logger *zap.Logger) Extractor {
	return func(data []byte) string {
		client := gosseract.NewClient()
		defer client.Close()

		if err := client.SetImageFromBytes(data); err != nil {
			logger.Error("Error loading image for OCR", zap.Error(err))
			return ""
		}

		text, err := client.Text()
		if err != nil {
			logger.Error("Error processing image", zap.Error(err))
			return ""
		}
		return text + "\n"
	}
}
