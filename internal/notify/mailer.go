// Package notify delivers operator e-mail notifications for accepted
// contact submissions over an authenticated SMTP relay.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smesner/contactsweb/internal/domain"
	"github.com/smesner/contactsweb/internal/pkg/logger"
)

// Identity is a display name plus address pair for mail headers.
type Identity struct {
	Name    string
	Address string
}

// Config holds the mail relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	StartTLS bool
	From     Identity
	To       Identity
	Timeout  time.Duration
}

// Mailer sends one HTML notification per accepted contact to a fixed
// operator mailbox. Failures are the caller's to absorb; the mailer just
// reports them.
type Mailer struct {
	cfg Config
}

// NewMailer creates a mailer. A non-positive timeout falls back to 15s.
func NewMailer(cfg Config) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Mailer{cfg: cfg}
}

// Notify sends the notification for one contact. The connection carries
// its own deadline so a stalled relay cannot hold the caller hostage.
func (m *Mailer) Notify(ctx context.Context, c *domain.Contact) error {
	if m.cfg.Host == "" {
		logger.Warn("mail relay not configured, skipping notification", "contact_id", c.ID)
		return nil
	}

	msg := m.buildMessage(c)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	d := net.Dialer{Timeout: m.cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial relay: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(m.cfg.Timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("set relay deadline: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if m.cfg.StartTLS {
		if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From.Address); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(m.cfg.To.Address); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}

// buildMessage assembles the full RFC 5322 message, headers included.
func (m *Mailer) buildMessage(c *domain.Contact) string {
	subject := fmt.Sprintf("New contact: %s %s", c.FirstName, c.LastName)

	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", formatAddress(m.cfg.From))
	fmt.Fprintf(&sb, "To: %s\r\n", formatAddress(m.cfg.To))
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	fmt.Fprintf(&sb, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	fmt.Fprintf(&sb, "Message-ID: <%s@%s>\r\n", uuid.New().String(), m.cfg.Host)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(buildBody(c))
	return sb.String()
}

func formatAddress(id Identity) string {
	if id.Name == "" {
		return id.Address
	}
	return fmt.Sprintf("%s <%s>", id.Name, id.Address)
}

// buildBody renders the HTML notice: core identity always, enrichment
// groups only when they actually carry data.
func buildBody(c *domain.Contact) string {
	var sb strings.Builder
	sb.WriteString("<h2>New contact from the web form</h2>\n")
	fmt.Fprintf(&sb, "<p><strong>Submitted at:</strong> %s</p>\n",
		c.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	sb.WriteString("<h3>Core details:</h3>\n<ul>\n")
	fmt.Fprintf(&sb, "<li><strong>First name:</strong> %s</li>\n", html.EscapeString(c.FirstName))
	fmt.Fprintf(&sb, "<li><strong>Last name:</strong> %s</li>\n", html.EscapeString(c.LastName))
	fmt.Fprintf(&sb, "<li><strong>E-mail:</strong> %s</li>\n", html.EscapeString(c.Email))
	sb.WriteString("</ul>\n")

	if !c.HasEnrichment() {
		sb.WriteString("<p><em>No additional data from the directory service.</em></p>\n")
		return sb.String()
	}

	sb.WriteString("<h3>Additional data from the directory service:</h3>\n<ul>\n")
	writeItem(&sb, "Phone", c.Phone)
	writeItem(&sb, "Website", c.Website)

	if c.HasAddress() {
		sb.WriteString("<li><strong>Address:</strong><ul>\n")
		writeItem(&sb, "Street", c.AddressStreet)
		writeItem(&sb, "Suite", c.AddressSuite)
		writeItem(&sb, "City", c.AddressCity)
		writeItem(&sb, "Zip code", c.AddressZipCode)
		if c.AddressLatitude != nil && c.AddressLongitude != nil {
			fmt.Fprintf(&sb, "<li>Location (lat, lng): %g, %g</li>\n",
				*c.AddressLatitude, *c.AddressLongitude)
		}
		sb.WriteString("</ul></li>\n")
	}

	if c.HasCompany() {
		sb.WriteString("<li><strong>Company:</strong><ul>\n")
		writeItem(&sb, "Name", c.CompanyName)
		writeItem(&sb, "Line of business", c.CompanyBs)
		writeItem(&sb, "Catchphrase", c.CompanyCatchPhrase)
		sb.WriteString("</ul></li>\n")
	}

	sb.WriteString("</ul>\n")
	return sb.String()
}

func writeItem(sb *strings.Builder, label string, val *string) {
	if val == nil || *val == "" {
		return
	}
	fmt.Fprintf(sb, "<li><strong>%s:</strong> %s</li>\n", label, html.EscapeString(*val))
}
