package mail

import (
	"strings"
	"testing"

	gomail "github.com/emersion/go-message/mail"
)

func TestExtractAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"John Doe <john@example.com>", "john@example.com"},
		{"<sales@dell.com>", "sales@dell.com"},
		{"plain@example.com", "plain@example.com"},
		{"Weird Header plain@example.com trailing", "plain@example.com"},
		{"Sales Team <first@a.com> <second@b.com>", "second@b.com"},
		{"no address here", "no address here"},
	}

	for _, tt := range tests {
		if got := ExtractAddress(tt.in); got != tt.want {
			t.Errorf("ExtractAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const multipartMessage = "From: Dell Sales <sales@dell.com>\r\n" +
	"To: procurement@example.com\r\n" +
	"Subject: Re: RFP #3\r\n" +
	"Date: Mon, 10 Mar 2025 10:00:00 +0000\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=BOUNDARY\r\n" +
	"\r\n" +
	"--BOUNDARY\r\n" +
	"Content-Type: text/html\r\n" +
	"\r\n" +
	"<p>We offer $68,500.</p>\r\n" +
	"--BOUNDARY\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"We offer $68,500.\r\n" +
	"--BOUNDARY--\r\n"

func TestReadBodyPrefersPlainText(t *testing.T) {
	mr, err := gomail.CreateReader(strings.NewReader(multipartMessage))
	if err != nil {
		t.Fatalf("failed to parse message: %v", err)
	}

	body := readBody(mr)
	if body != "We offer $68,500." {
		t.Errorf("body = %q, want the text/plain part", body)
	}
}

const htmlOnlyMessage = "From: Dell Sales <sales@dell.com>\r\n" +
	"Subject: Re: RFP #3\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: text/html\r\n" +
	"\r\n" +
	"<p>HTML only offer.</p>\r\n"

func TestReadBodyHTMLFallback(t *testing.T) {
	mr, err := gomail.CreateReader(strings.NewReader(htmlOnlyMessage))
	if err != nil {
		t.Fatalf("failed to parse message: %v", err)
	}

	body := readBody(mr)
	if body != "<p>HTML only offer.</p>" {
		t.Errorf("body = %q, want the html part", body)
	}
}
