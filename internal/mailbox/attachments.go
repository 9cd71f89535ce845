package mailbox

import (
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"invoicerpa/constants"
	"invoicerpa/internal/entity"
)

// collectAttachments walks one message body and returns a RawDocument per
// PDF attachment. Unsupported attachment types are skipped silently; a
// broken attachment is logged and skipped without failing the message.
func collectAttachments(r io.Reader, env *imap.Envelope, logger *slog.Logger) ([]entity.RawDocument, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, err
	}

	var docs []entity.RawDocument
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return docs, err
		}

		h, ok := p.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, err := h.Filename()
		if err != nil || filename == "" {
			continue
		}
		if !constants.AllowedExt(constants.NormalizeExt(filepath.Ext(filename))) {
			logger.Debug("skipping unsupported attachment", "filename", filename)
			continue
		}

		content, err := io.ReadAll(p.Body)
		if err != nil {
			logger.Warn("attachment read failed", "filename", filename, "error", err)
			continue
		}
		sum := sha256.Sum256(content)

		doc := entity.RawDocument{
			ID:          uuid.New(),
			Filename:    filename,
			ContentHash: sum[:],
			Content:     content,
		}
		if env != nil {
			doc.MessageID = env.MessageId
			doc.Subject = env.Subject
			doc.From = fromAddress(env)
			doc.ReceivedAt = env.Date
		}
		doc.SourceID = fmt.Sprintf("%s/%s", doc.MessageID, filename)
		docs = append(docs, doc)
	}
	return docs, nil
}

func fromAddress(env *imap.Envelope) string {
	if len(env.From) == 0 {
		return ""
	}
	return env.From[0].Address()
}
