package delivery

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime/quotedprintable"
	"net/smtp"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EmailConfig configures the SMTP sender.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// EmailSender delivers pairings as multipart HTML+text email over SMTP.
type EmailSender struct {
	cfg  EmailConfig
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender validates the config and creates a sender.
func NewEmailSender(cfg EmailConfig) (*EmailSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if !emailPattern.MatchString(cfg.From) {
		return nil, fmt.Errorf("invalid from address %q", cfg.From)
	}
	if !emailPattern.MatchString(cfg.To) {
		return nil, fmt.Errorf("invalid to address %q", cfg.To)
	}
	return &EmailSender{cfg: cfg, send: smtp.SendMail}, nil
}

// Name returns the name of the delivery channel.
func (e *EmailSender) Name() string { return "email" }

// Deliver sends the pairing email.
func (e *EmailSender) Deliver(ctx context.Context, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildMessage(e.cfg.From, e.cfg.To, payload)
	if err != nil {
		return fmt.Errorf("build email: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", e.cfg.Host, e.cfg.Port)
	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}
	if err := e.send(addr, auth, e.cfg.From, []string{e.cfg.To}, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

const mimeBoundary = "culturebot-alt"

var htmlTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Georgia, serif; max-width: 640px; margin: 0 auto;">
  <h1 style="font-size: 1.3em;">Daily Culture Delivery</h1>
  <h2>{{.Poem.Title}}</h2>
  <p style="color: #555;">by {{.Poem.Author}}</p>
  <pre style="font-family: inherit; white-space: pre-wrap;">{{.Poem.Text}}</pre>
  <hr>
  <h2>{{.Result.Candidate.Title}}</h2>
  <p style="color: #555;">{{.Result.Candidate.Artist}}{{if .Result.Candidate.Year}}, {{.Result.Candidate.Year}}{{end}}</p>
  {{if .Result.Candidate.ImageURL}}<img src="{{.Result.Candidate.ImageURL}}" alt="{{.Result.Candidate.Title}}" style="max-width: 100%;">{{end}}
  {{if .Explanation}}<p style="font-style: italic; color: #333;">{{.Explanation}}</p>{{end}}
</body>
</html>
`))

// buildMessage assembles a multipart/alternative message with plain
// text and HTML parts.
func buildMessage(from, to string, payload Payload) ([]byte, error) {
	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, payload); err != nil {
		return nil, fmt.Errorf("render html part: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: Daily Culture Delivery - %s\r\n", payload.Date.Format("2006-01-02"))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mimeBoundary)
	buf.WriteString("\r\n")

	writePart := func(contentType, body string) error {
		fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
		fmt.Fprintf(&buf, "Content-Type: %s; charset=utf-8\r\n", contentType)
		buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
		qp := quotedprintable.NewWriter(&buf)
		if _, err := qp.Write([]byte(body)); err != nil {
			return err
		}
		if err := qp.Close(); err != nil {
			return err
		}
		buf.WriteString("\r\n")
		return nil
	}

	if err := writePart("text/plain", plainText(payload)); err != nil {
		return nil, fmt.Errorf("write text part: %w", err)
	}
	if err := writePart("text/html", html.String()); err != nil {
		return nil, fmt.Errorf("write html part: %w", err)
	}
	fmt.Fprintf(&buf, "--%s--\r\n", mimeBoundary)

	return buf.Bytes(), nil
}

func plainText(payload Payload) string {
	var b strings.Builder
	b.WriteString("Daily Culture Delivery\n\n")
	fmt.Fprintf(&b, "%s\nby %s\n\n%s\n\n", payload.Poem.Title, payload.Poem.Author, payload.Poem.Text)
	fmt.Fprintf(&b, "---\n\n%s", payload.Result.Candidate.Title)
	if payload.Result.Candidate.Artist != "" {
		fmt.Fprintf(&b, "\n%s", payload.Result.Candidate.Artist)
	}
	if payload.Result.Candidate.Year != 0 {
		fmt.Fprintf(&b, ", %d", payload.Result.Candidate.Year)
	}
	if payload.Result.Candidate.ImageURL != "" {
		fmt.Fprintf(&b, "\n%s", payload.Result.Candidate.ImageURL)
	}
	if payload.Explanation != "" {
		fmt.Fprintf(&b, "\n\n%s", payload.Explanation)
	}
	b.WriteString("\n")
	return b.String()
}
