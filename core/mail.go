package core

import (
	"net/http"
	"net/mail"
)

type (
	Attachment struct {
		Content     []byte
		ContentType string
		Filename    string
	}

	EmailMessage struct {
		To          []mail.Address
		Cc          []mail.Address
		Subject     string
		Body        string // text/plain
		Attachments []Attachment
	}

	// EmailService is any service that can send emails
	EmailService interface {
		Send(msg *EmailMessage) error
	}
)

func (m *EmailMessage) Attach(content []byte, filename string, ct ...string) {
	at := Attachment{Content: content, Filename: filename}
	if len(ct) > 0 {
		at.ContentType = ct[0]
	} else {
		at.ContentType = http.DetectContentType(content)
	}
	m.Attachments = append(m.Attachments, at)
}

func (m *EmailMessage) HasRecipients() bool  { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool     { return m.Body != "" }
func (m *EmailMessage) HasAttachments() bool { return len(m.Attachments) > 0 }
