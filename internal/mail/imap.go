package mail

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	imapclient "github.com/emersion/go-imap/client"
	gomail "github.com/emersion/go-message/mail"

	"github.com/Meghana-05-02/RFP-System/internal/config"
)

// Message is one decoded inbox message. Body holds the plain-text part when
// one exists, otherwise the HTML part; attachments are never read.
type Message struct {
	SeqNum      uint32
	Subject     string
	From        string
	FromAddress string
	Date        time.Time
	Body        string
}

// IMAPClient wraps a logged-in IMAP session against the configured mailbox.
type IMAPClient struct {
	cfg config.IMAPConfig
	c   *imapclient.Client
}

func DialIMAP(cfg config.IMAPConfig) (*IMAPClient, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("EMAIL_HOST_USER and EMAIL_HOST_PASSWORD must be set")
	}

	c, err := imapclient.DialTLS(cfg.Host+":993", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Host, err)
	}

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		c.Logout()
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	return &IMAPClient{cfg: cfg, c: c}, nil
}

// FetchUnseen returns up to limit unread messages from the mailbox without
// marking them as seen.
func (ic *IMAPClient) FetchUnseen(limit int) ([]Message, error) {
	mailbox := ic.cfg.Mailbox
	if mailbox == "" {
		mailbox = "INBOX"
	}

	if _, err := ic.c.Select(mailbox, false); err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", mailbox, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.WithoutFlags = []string{imap.SeenFlag}
	ids, err := ic.c.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search for unseen messages: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(ids...)

	// Peek keeps the fetch from setting \Seen as a side effect.
	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	ch := make(chan *imap.Message, len(ids))
	done := make(chan error, 1)
	go func() {
		done <- ic.c.Fetch(seqset, items, ch)
	}()

	var messages []Message
	for msg := range ch {
		decoded, err := decodeMessage(msg, section)
		if err != nil {
			continue
		}
		messages = append(messages, decoded)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return messages, nil
}

// MarkSeen flags the message as read, independent of whether a proposal was
// created from it.
func (ic *IMAPClient) MarkSeen(seqNum uint32) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(seqNum)

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.SeenFlag}
	return ic.c.Store(seqset, item, flags, nil)
}

func (ic *IMAPClient) Close() error {
	return ic.c.Logout()
}

func decodeMessage(msg *imap.Message, section *imap.BodySectionName) (Message, error) {
	r := msg.GetBody(section)
	if r == nil {
		return Message{}, fmt.Errorf("message %d has no body section", msg.SeqNum)
	}

	mr, err := gomail.CreateReader(r)
	if err != nil {
		return Message{}, fmt.Errorf("failed to parse message %d: %w", msg.SeqNum, err)
	}

	decoded := Message{SeqNum: msg.SeqNum}

	if subject, err := mr.Header.Subject(); err == nil {
		decoded.Subject = subject
	}
	if date, err := mr.Header.Date(); err == nil {
		decoded.Date = date
	}
	if froms, err := mr.Header.AddressList("From"); err == nil && len(froms) > 0 {
		decoded.From = froms[0].String()
		decoded.FromAddress = froms[0].Address
	} else {
		raw := mr.Header.Get("From")
		decoded.From = raw
		decoded.FromAddress = ExtractAddress(raw)
	}

	decoded.Body = readBody(mr)
	return decoded, nil
}

// readBody walks the MIME parts preferring text/plain, falling back to
// text/html, and skipping attachments entirely.
func readBody(mr *gomail.Reader) string {
	var htmlBody string

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		switch h := p.Header.(type) {
		case *gomail.InlineHeader:
			contentType, _, _ := h.ContentType()
			switch contentType {
			case "text/plain":
				body, err := io.ReadAll(p.Body)
				if err == nil {
					return strings.TrimSpace(string(body))
				}
			case "text/html":
				if htmlBody == "" {
					body, err := io.ReadAll(p.Body)
					if err == nil {
						htmlBody = strings.TrimSpace(string(body))
					}
				}
			}
		case *gomail.AttachmentHeader:
			// skip
			_ = h
		}
	}

	return htmlBody
}

var addressRe = regexp.MustCompile(`[\w.+-]+@[\w.-]+\.\w+`)

// ExtractAddress pulls a bare email address out of a raw From header like
// "John Doe <john@example.com>".
func ExtractAddress(sender string) string {
	if start := strings.LastIndex(sender, "<"); start != -1 {
		if end := strings.Index(sender[start:], ">"); end != -1 {
			return strings.TrimSpace(sender[start+1 : start+end])
		}
	}
	if match := addressRe.FindString(sender); match != "" {
		return match
	}
	return strings.TrimSpace(sender)
}
