package entity

import (
	"time"

	"github.com/google/uuid"
)

// RawDocument is one unparsed attachment: opaque bytes plus identifying
// metadata. Created by a document source (mailbox or directory), consumed
// once by the text extractor.
type RawDocument struct {
	ID          uuid.UUID
	SourceID    string // "<message-id>/<filename>" for mail, source path for files
	Filename    string
	MessageID   string
	Subject     string
	From        string
	ReceivedAt  time.Time
	ContentHash []byte // sha256 of Content
	Content     []byte
}
