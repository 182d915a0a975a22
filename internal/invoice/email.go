package invoice

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"time"

	"github.com/dtchealth/billing-engine/internal/billing"
)

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
}

// Attachment is a named binary part of an outgoing email.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// EmailSender delivers invoice emails with document attachments over SMTP.
type EmailSender struct {
	smtp    SMTPConfig
	company Company
}

// NewEmailSender creates a new email sender.
func NewEmailSender(smtp SMTPConfig, company Company) *EmailSender {
	return &EmailSender{smtp: smtp, company: company}
}

// SendInvoice emails the invoice to the client's billing address with the
// given attachments (PDF, optionally a timesheet workbook). paymentURL, when
// non-empty, is included as a pay-online link.
func (es *EmailSender) SendInvoice(ctx context.Context, inv *billing.InvoiceData, paymentURL string, attachments ...Attachment) error {
	subject := fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, es.company.Name)
	body := es.buildBody(inv, paymentURL)

	message := es.buildMIMEMessage(inv.Email, subject, body, attachments)

	if err := es.send(inv.Email, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildBody creates the email body text.
func (es *EmailSender) buildBody(inv *billing.InvoiceData, paymentURL string) string {
	body := fmt.Sprintf(`Dear %s Team,

Please find attached invoice %s for the billing period %s.

Total Amount Due: %s
Due Date: Net 30 Days

`,
		inv.FacilityName,
		inv.InvoiceNumber,
		inv.BillingPeriod,
		billing.FormatCurrency(inv.Total),
	)

	if paymentURL != "" {
		body += fmt.Sprintf("Pay online: %s\n\n", paymentURL)
	}

	body += fmt.Sprintf(`Thank you for your continued partnership.

Best regards,
%s
%s | %s
`,
		es.company.Name,
		es.company.Email,
		es.company.Phone,
	)

	return body
}

// buildMIMEMessage creates a multipart MIME email with base64 attachments.
func (es *EmailSender) buildMIMEMessage(to, subject, body string, attachments []Attachment) []byte {
	boundary := "boundary-" + time.Now().Format("20060102150405")

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("From: %s <%s>\r\n", es.smtp.FromName, es.smtp.FromEmail))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%s\r\n", boundary))
	buf.WriteString("\r\n")

	buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: 7bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	for _, att := range attachments {
		buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		buf.WriteString(fmt.Sprintf("Content-Type: %s\r\n", att.ContentType))
		buf.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n", att.Name))
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		buf.WriteString("\r\n")

		// 76 chars per line per RFC 2045
		encoded := base64.StdEncoding.EncodeToString(att.Data)
		for i := 0; i < len(encoded); i += 76 {
			end := i + 76
			if end > len(encoded) {
				end = len(encoded)
			}
			buf.WriteString(encoded[i:end])
			buf.WriteString("\r\n")
		}
	}

	buf.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return buf.Bytes()
}

func (es *EmailSender) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", es.smtp.Host, es.smtp.Port)
	auth := smtp.PlainAuth("", es.smtp.User, es.smtp.Password, es.smtp.Host)

	// Implicit TLS on 465, STARTTLS/plain otherwise
	if es.smtp.Port == 465 {
		return es.sendTLS(addr, auth, to, message)
	}

	return smtp.SendMail(addr, auth, es.smtp.FromEmail, []string{to}, message)
}

func (es *EmailSender) sendTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	tlsconfig := &tls.Config{
		ServerName: es.smtp.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsconfig)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, es.smtp.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := client.Mail(es.smtp.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
