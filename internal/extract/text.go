package extract

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"go.uber.org/zap"
)

// newTextExtractor decodes a plain-text attachment as UTF-8. Ill-formed
// sequences are replaced rather than treated as fatal.
func newTextExtractor(logger *zap.Logger) Extractor {
	return func(data []byte) string {
		decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), data)
		if err != nil {
			logger.Error("Error processing text attachment", zap.Error(err))
			return ""
		}
		return string(decoded) + "\n"
	}
}
