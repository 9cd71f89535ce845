package mailbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"invoicerpa/internal/common"
	"invoicerpa/internal/entity"
)

// Config holds everything needed to reach one mailbox.
type Config struct {
	Addr     string // host:port, TLS
	Username string
	Password string
	Folder   string
	DaysBack int
	MarkSeen bool
}

// Client fetches invoice attachments from an IMAP mailbox. It is a
// collaborator outside the processing core: a connection failure here halts
// the run, unlike anything inside the pipeline.
type Client struct {
	cfg    Config
	logger *slog.Logger
	c      *client.Client
}

// Dial connects over TLS and logs in.
func Dial(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	if cfg.DaysBack <= 0 {
		cfg.DaysBack = 30
	}

	logger.Info("connecting to mailbox", "addr", cfg.Addr, "user", cfg.Username)
	c, err := client.DialTLS(cfg.Addr, nil)
	if err != nil {
		return nil, common.NewAppError("MAILBOX_DIAL", "connect to IMAP server", err)
	}
	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		_ = c.Logout()
		return nil, common.NewAppError("MAILBOX_LOGIN", "IMAP login failed", err)
	}
	logger.Info("mailbox connected")
	return &Client{cfg: cfg, logger: logger, c: c}, nil
}

// Close logs out; safe to call once after Dial succeeded.
func (m *Client) Close() {
	if err := m.c.Logout(); err != nil {
		m.logger.Warn("imap logout failed", "error", err)
	}
}

// FetchInvoiceDocuments searches the configured folder for messages within
// the days-back window, keeps the invoice-looking ones, and returns their
// PDF attachments as raw documents. An empty mailbox yields an empty slice,
// not an error.
func (m *Client) FetchInvoiceDocuments(ctx context.Context) ([]entity.RawDocument, error) {
	if _, err := m.c.Select(m.cfg.Folder, false); err != nil {
		return nil, common.NewAppError("MAILBOX_SELECT", "select folder "+m.cfg.Folder, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Now().AddDate(0, 0, -m.cfg.DaysBack)
	ids, err := m.c.Search(criteria)
	if err != nil {
		return nil, common.NewAppError("MAILBOX_SEARCH", "search messages", err)
	}
	m.logger.Info("mailbox searched", "folder", m.cfg.Folder, "days_back", m.cfg.DaysBack, "messages", len(ids))
	if len(ids) == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- m.c.Fetch(seqset, items, messages)
	}()

	var docs []entity.RawDocument
	var processed []uint32
	for msg := range messages {
		if ctx.Err() != nil {
			continue // drain the channel, then report below
		}
		subject := ""
		if msg.Envelope != nil {
			subject = msg.Envelope.Subject
		}

		body := msg.GetBody(section)
		if body == nil {
			continue
		}
		atts, err := collectAttachments(body, msg.Envelope, m.logger)
		if err != nil {
			m.logger.Warn("message parse failed", "subject", subject, "error", err)
			continue
		}
		// Subject keywords are the primary signal, but only attachments
		// yield documents; keyword-only matches have nothing to download.
		if len(atts) == 0 {
			continue
		}
		m.logger.Info("invoice email found",
			"subject", subject,
			"attachments", len(atts),
			"subject_match", LooksLikeInvoice(subject),
		)
		docs = append(docs, atts...)
		processed = append(processed, msg.SeqNum)
	}
	if err := <-done; err != nil {
		return docs, common.NewAppError("MAILBOX_FETCH", "fetch messages", err)
	}
	if err := ctx.Err(); err != nil {
		return docs, err
	}

	if m.cfg.MarkSeen && len(processed) > 0 {
		m.markSeen(processed)
	}

	m.logger.Info("mailbox download complete", "documents", len(docs))
	return docs, nil
}

func (m *Client) markSeen(seqNums []uint32) {
	seq := new(imap.SeqSet)
	seq.AddNum(seqNums...)
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}
	if err := m.c.Store(seq, item, flags, nil); err != nil {
		m.logger.Warn("failed to mark messages as read", "error", err)
	}
}
