package extract

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"
	"go.uber.org/zap"
)

// newDocxExtractor extracts paragraph text from an OOXML word-processing
// document, joining paragraphs with newlines.
func newDocxExtractor(logger *zap.Logger) Extractor {
	return func(data []byte) string {
		doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			logger.Error("Error processing DOCX", zap.Error(err))
			return ""
		}

		var paragraphs []string
		for _, item := range doc.Document.Body.Items {
			if p, ok := item.(*docx.Paragraph); ok {
				paragraphs = append(paragraphs, p.String())
			}
		}
		return strings.Join(paragraphs, "\n")
	}
}
