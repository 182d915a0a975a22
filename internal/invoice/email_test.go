package invoice

import (
	"encoding/base64"
	"strings"
	"testing"
)

func testSender() *EmailSender {
	return NewEmailSender(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		User:      "mailer",
		Password:  "secret",
		FromEmail: "finance@dtchealthservices.com",
		FromName:  "Daytocare Health Services",
	}, testCompany)
}

func TestBuildBody(t *testing.T) {
	inv := sampleInvoice()
	body := testSender().buildBody(&inv, "")

	for _, want := range []string{
		"Dear Sunshine Healthcare Facility Team,",
		"invoice INV-202603-4821",
		"February 16, 2026 to March 15, 2026",
		"Total Amount Due: $21,840.00",
		"Due Date: Net 30 Days",
		testCompany.Name,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q\n%s", want, body)
		}
	}

	if strings.Contains(body, "Pay online") {
		t.Error("body contains payment link without a payment URL")
	}
}

func TestBuildBodyWithPaymentURL(t *testing.T) {
	inv := sampleInvoice()
	body := testSender().buildBody(&inv, "https://pay.stripe.com/inv/abc123")

	if !strings.Contains(body, "Pay online: https://pay.stripe.com/inv/abc123") {
		t.Errorf("body missing payment link:\n%s", body)
	}
}

func TestBuildMIMEMessage(t *testing.T) {
	attachment := Attachment{
		Name:        "INV-202603-4821_Sunshine.pdf",
		ContentType: "application/pdf",
		Data:        []byte("fake pdf bytes"),
	}

	msg := string(testSender().buildMIMEMessage(
		"billing@sunshinehealthcare.com",
		"Invoice INV-202603-4821 - Daytocare Health Services",
		"body text",
		[]Attachment{attachment},
	))

	for _, want := range []string{
		"From: Daytocare Health Services <finance@dtchealthservices.com>\r\n",
		"To: billing@sunshinehealthcare.com\r\n",
		"Subject: Invoice INV-202603-4821 - Daytocare Health Services\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: multipart/mixed; boundary=",
		"Content-Type: text/plain; charset=utf-8\r\n",
		"body text",
		`Content-Disposition: attachment; filename="INV-202603-4821_Sunshine.pdf"` + "\r\n",
		"Content-Transfer-Encoding: base64\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}

	// The attachment payload must round-trip through base64.
	encoded := base64.StdEncoding.EncodeToString(attachment.Data)
	if !strings.Contains(msg, encoded) {
		t.Error("message does not contain base64-encoded attachment data")
	}
}

func TestBuildMIMEMessageWrapsLongAttachments(t *testing.T) {
	data := make([]byte, 600)
	for i := range data {
		data[i] = byte(i % 251)
	}

	msg := string(testSender().buildMIMEMessage("to@example.com", "s", "b", []Attachment{
		{Name: "big.pdf", ContentType: "application/pdf", Data: data},
	}))

	for _, line := range strings.Split(msg, "\r\n") {
		if len(line) > 78 {
			t.Fatalf("line exceeds MIME width: %d chars", len(line))
		}
	}
}
