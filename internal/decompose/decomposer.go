// Package decompose walks a raw email's MIME structure, separating body
// text from attachment text. Decomposition never fails: anything that
// cannot be decoded degrades to empty text for that part.
package decompose

import (
	"bytes"
	"io"
	"strings"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/mikey/llm-email-triage/internal/core"
	"github.com/mikey/llm-email-triage/internal/extract"
)

const (
	defaultSender  = "unknown"
	defaultSubject = "No Subject"
)

// Decomposer separates an email into body text and attachment text using
// the extractor registry for attachment dispatch.
type Decomposer struct {
	registry  *extract.Registry
	stripHTML bool
	logger    *zap.Logger
}

// NewDecomposer creates a new decomposer. When stripHTML is set, text/html
// body parts contribute their visible text instead of raw markup.
func NewDecomposer(registry *extract.Registry, stripHTML bool, logger *zap.Logger) *Decomposer {
	return &Decomposer{
		registry:  registry,
		stripHTML: stripHTML,
		logger:    logger,
	}
}

// Decompose parses a raw message and returns its metadata, body text and
// attachment text in MIME tree traversal order. A message that cannot be
// parsed at all is treated as a single plain-text payload.
func (d *Decomposer) Decompose(raw []byte) *core.Email {
	email := &core.Email{
		From:    defaultSender,
		Subject: defaultSubject,
		Headers: make(map[string][]string),
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		d.logger.Error("Failed to parse message, treating payload as plain text", zap.Error(err))
		email.Body = decodePermissive(raw)
		return email
	}
	defer mr.Close()

	d.readMetadata(mr, email)

	var body strings.Builder
	var attachments strings.Builder
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.logger.Error("Error reading MIME part, keeping partial content", zap.Error(err))
			break
		}

		switch header := part.Header.(type) {
		case *mail.InlineHeader:
			// A disposed part with a filename is an attachment even when the
			// disposition is inline (embedded images and the like).
			if filename := inlineFilename(header); filename != "" {
				attachments.WriteString(d.inlineAttachmentText(header, filename, part.Body))
			} else {
				body.WriteString(d.inlineText(header, part.Body))
			}
		case *mail.AttachmentHeader:
			attachments.WriteString(d.attachmentText(header, part.Body))
		}
	}

	email.Body = body.String()
	email.AttachmentText = attachments.String()
	return email
}

// readMetadata fills in sender, recipients, subject and date. Missing or
// malformed headers keep their defaults.
func (d *Decomposer) readMetadata(mr *mail.Reader, email *core.Email) {
	if from, err := mr.Header.AddressList("From"); err == nil && len(from) > 0 {
		email.From = from[0].String()
	} else if v := mr.Header.Get("From"); v != "" {
		email.From = v
	}

	if to, err := mr.Header.AddressList("To"); err == nil {
		for _, addr := range to {
			email.To = append(email.To, addr.Address)
		}
	}

	if subject, err := mr.Header.Subject(); err == nil && subject != "" {
		email.Subject = subject
	}

	if date, err := mr.Header.Date(); err == nil {
		email.Date = date
	}

	fields := mr.Header.Fields()
	for fields.Next() {
		email.Headers[fields.Key()] = append(email.Headers[fields.Key()], fields.Value())
	}
}

// inlineText decodes one inline part. text/plain is used as-is, text/html
// is optionally stripped of markup; other inline types contribute nothing.
func (d *Decomposer) inlineText(header *mail.InlineHeader, body io.Reader) string {
	contentType, _, err := header.ContentType()
	if err != nil {
		d.logger.Warn("Unparseable inline content type, skipping part", zap.Error(err))
		return ""
	}

	switch {
	case strings.HasPrefix(contentType, "text/plain"):
		data, err := io.ReadAll(body)
		if err != nil {
			d.logger.Error("Error extracting email body", zap.Error(err))
			return ""
		}
		return decodePermissive(data)
	case strings.HasPrefix(contentType, "text/html"):
		data, err := io.ReadAll(body)
		if err != nil {
			d.logger.Error("Error extracting email body", zap.Error(err))
			return ""
		}
		if !d.stripHTML {
			return decodePermissive(data)
		}
		text, err := extract.HTMLToText(data)
		if err != nil {
			d.logger.Error("Error stripping HTML body, using raw markup", zap.Error(err))
			return decodePermissive(data)
		}
		return text
	default:
		return ""
	}
}

// inlineFilename returns the filename of an inline part carrying a
// Content-Disposition header, or "" when the part is ordinary body content.
func inlineFilename(header *mail.InlineHeader) string {
	disp, params, err := header.ContentDisposition()
	if err != nil || disp == "" {
		return ""
	}
	return params["filename"]
}

// inlineAttachmentText dispatches an inline-disposed part with a filename
// through the extractor registry.
func (d *Decomposer) inlineAttachmentText(header *mail.InlineHeader, filename string, body io.Reader) string {
	contentType, _, err := header.ContentType()
	if err != nil {
		d.logger.Warn("Unparseable attachment content type, skipping",
			zap.String("filename", filename),
			zap.Error(err))
		return ""
	}
	return d.extractAttachment(contentType, filename, body)
}

// attachmentText dispatches one attachment to the registry. Attachments
// without a filename are skipped.
func (d *Decomposer) attachmentText(header *mail.AttachmentHeader, body io.Reader) string {
	filename, err := header.Filename()
	if err != nil || filename == "" {
		return ""
	}

	contentType, _, err := header.ContentType()
	if err != nil {
		d.logger.Warn("Unparseable attachment content type, skipping",
			zap.String("filename", filename),
			zap.Error(err))
		return ""
	}
	return d.extractAttachment(contentType, filename, body)
}

// extractAttachment runs an attachment's payload through the registry.
// Unknown content types are logged and contribute empty text.
func (d *Decomposer) extractAttachment(contentType, filename string, body io.Reader) string {
	extractor := d.registry.ForContentType(contentType)
	if extractor == nil {
		d.logger.Warn("No extractor found for content type",
			zap.String("content_type", contentType),
			zap.String("filename", filename))
		return ""
	}

	data, err := io.ReadAll(body)
	if err != nil {
		d.logger.Error("Error reading attachment payload",
			zap.String("content_type", contentType),
			zap.String("filename", filename),
			zap.Error(err))
		return ""
	}

	return extractor(data)
}

// decodePermissive interprets bytes as UTF-8, replacing ill-formed
// sequences instead of failing.
func decodePermissive(data []byte) string {
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
