// Package notify implements the license-expiry notification job: a
// read-only scan over drivers, safe to re-run.
package notify

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// Mailer is any service that can deliver a plain-text message.
type Mailer interface {
	Send(toName, toEmail, subject, body string) error
}

type sendgridMailer struct {
	key  string
	from *sgmail.Email
}

// NewSendgridMailer builds the production mailer from SENDGRID_API_KEY
// and EMAIL_FROM.
func NewSendgridMailer() Mailer {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "admin@schoolbus.com"
	}
	return &sendgridMailer{
		key:  os.Getenv("SENDGRID_API_KEY"),
		from: sgmail.NewEmail("School Bus", from),
	}
}

func (m *sendgridMailer) Send(toName, toEmail, subject, body string) error {
	msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(toName, toEmail), body, "")

	req := sendgrid.GetRequest(m.key, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(msg)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

// ConsoleMailer logs messages instead of delivering them; used in dev and
// in tests, which inspect Sent.
type ConsoleMailer struct {
	Sent []string
}

func (m *ConsoleMailer) Send(toName, toEmail, subject, body string) error {
	m.Sent = append(m.Sent, toEmail)
	logrus.WithFields(logrus.Fields{
		"to":      toEmail,
		"subject": subject,
	}).Info(body)
	return nil
}
