package main

import (
	"io"

	"github.com/go-gomail/gomail"
	"k8s.io/klog/v2"
)

// ---------------------------------------------------------------------------
// Email
// ---------------------------------------------------------------------------

// Attachment is an in-memory file attached to the report mail.
type Attachment struct {
	Filename string
	Data     []byte
}

// newReportMessage builds the mail carrying the generated reports.
func newReportMessage(cfg *Config, subject string, attachments ...Attachment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", cfg.Email.From)
	msg.SetHeader("To", cfg.Email.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", "Your SEED Profile report is attached.<br>")

	for _, a := range attachments {
		data := a.Data
		msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return msg
}

// sendEmail sends the generated PDFs via SMTP.
func sendEmail(cfg *Config, subject string, attachments ...Attachment) error {
	msg := newReportMessage(cfg, subject, attachments...)

	dialer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return err
	}
	klog.Infof("mailed %d report(s) to %s", len(attachments), cfg.Email.To)
	return nil
}
