// Package extract converts attachment bytes of known formats into plain
// text. Every extractor swallows its own failures and returns an empty
// string: a malformed attachment must never abort message processing.
package extract

import (
	"strings"

	"go.uber.org/zap"
)

// ContentTypeDocx is the OOXML word-processing MIME type.
const ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extractor converts raw attachment bytes into text. An empty string means
// "nothing extracted", not an error.
type Extractor func(data []byte) string

// Registry maps a declared content type to the extractor handling it.
type Registry struct {
	logger *zap.Logger
	image  Extractor
	pdf    Extractor
	docx   Extractor
	text   Extractor
}

// NewRegistry creates a registry with the built-in extractors.
func NewRegistry(logger *zap.Logger) *Registry {
	r := &Registry{logger: logger}
	r.image = r.safe("image", newImageExtractor(logger))
	r.pdf = r.safe("pdf", newPDFExtractor(logger))
	r.docx = r.safe("docx", newDocxExtractor(logger))
	r.text = r.safe("text", newTextExtractor(logger))
	return r
}

// ForContentType returns the extractor for a declared content type, or nil
// when no extractor handles it. Dispatch order is fixed.
func (r *Registry) ForContentType(contentType string) Extractor {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return r.image
	case contentType == "application/pdf":
		return r.pdf
	case contentType == ContentTypeDocx:
		return r.docx
	case contentType == "text/plain":
		return r.text
	default:
		return nil
	}
}

// safe wraps an extractor so a panic inside a format parser degrades to an
// empty string instead of taking down the pipeline.
func (r *Registry) safe(name string, fn Extractor) Extractor {
	return func(data []byte) (text string) {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("Attachment extractor panicked",
					zap.String("extractor", name),
					zap.Any("panic", rec))
				text = ""
			}
		}()
		return fn(data)
	}
}
