package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"DocRegistry/config"
	"DocRegistry/models"
	"DocRegistry/utils"
)

const (
	defaultSender = "no-reply@example.com"
	senderName    = "Notifications"
)

var (
	//go:embed templates/*.html
	emailTemplates embed.FS

	passwordResetTemplate   = template.Must(template.New("password_reset.html").ParseFS(emailTemplates, "templates/password_reset.html"))
	documentCreatedTemplate = template.Must(template.New("document_created.html").ParseFS(emailTemplates, "templates/document_created.html"))
)

type deliverFunc func(ctx context.Context, from string, to []string, msg []byte) error

// Client sends the application's HTML notifications over SMTP. With no host
// configured every send is skipped with a warning.
type Client struct {
	cfg     config.EmailConfig
	deliver deliverFunc
}

func NewClient(cfg config.EmailConfig) *Client {
	c := &Client{cfg: cfg}
	c.deliver = c.sendSMTP
	return c
}

func (c *Client) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	body := bytes.Buffer{}
	data := struct {
		ResetLink string
		ValidFor  string
	}{ResetLink: resetLink, ValidFor: "1 hour"}

	if err := passwordResetTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render password reset template: %w", err)
	}
	return c.send(ctx, toEmail, "Password recovery", body.String())
}

func (c *Client) SendDocumentCreated(ctx context.Context, toEmail string, receipt models.DocumentReceipt) error {
	body := bytes.Buffer{}
	data := struct {
		models.DocumentReceipt
		Title string
	}{DocumentReceipt: receipt, Title: receipt.Kind.Title()}

	if err := documentCreatedTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render document template: %w", err)
	}
	subject := fmt.Sprintf("%s created: %s", receipt.Kind.Title(), receipt.Subject)
	return c.send(ctx, toEmail, subject, body.String())
}

func (c *Client) send(ctx context.Context, toEmail, subject, htmlBody string) error {
	logger := utils.LoggerFromContext(ctx)
	if c.cfg.Host == "" {
		logger.Warn("SMTP is not configured, mail skipped", "to", toEmail, "subject", subject)
		return nil
	}

	header, envelope, err := c.sender()
	if err != nil {
		return err
	}

	msg := buildHTMLMessage(header, toEmail, subject, htmlBody)
	if err := c.deliver(ctx, envelope, []string{toEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", toEmail, err)
	}
	logger.Info("mail sent", "to", toEmail, "subject", subject)
	return nil
}

// sender returns the From header and the bare envelope address. A configured
// sender that already carries a display name is used verbatim.
func (c *Client) sender() (string, string, error) {
	from := c.cfg.FromAddress
	if from == "" {
		from = c.cfg.Username
	}
	if from == "" {
		from = defaultSender
	}

	if strings.Contains(from, "<") && strings.Contains(from, ">") {
		addr, err := mail.ParseAddress(from)
		if err != nil {
			return "", "", fmt.Errorf("invalid sender %q: %w", from, err)
		}
		return from, addr.Address, nil
	}
	addr := mail.Address{Name: senderName, Address: from}
	return addr.String(), from, nil
}

func (c *Client) sendSMTP(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	tlsConfig := &tls.Config{ServerName: c.cfg.Host}

	dialer := &net.Dialer{}
	var (
		conn net.Conn
		err  error
	)
	if c.cfg.Port == 465 {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if c.cfg.UseTLS && c.cfg.Port != 465 {
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if c.cfg.Username != "" {
		if err := client.Auth(c.auth()); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(msg); err != nil {
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// auth picks PLAIN auth for the connection. smtp.PlainAuth refuses to send
// credentials to a remote host without TLS, so SMTP_TLS=false gets a PLAIN
// mechanism that allows it.
func (c *Client) auth() smtp.Auth {
	if !c.cfg.UseTLS && c.cfg.Port != 465 {
		return cleartextPlainAuth{username: c.cfg.Username, password: c.cfg.Password}
	}
	return smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
}

type cleartextPlainAuth struct {
	username string
	password string
}

func (a cleartextPlainAuth) Start(*smtp.ServerInfo) (string, []byte, error) {
	return "PLAIN", []byte("\x00" + a.username + "\x00" + a.password), nil
}

func (a cleartextPlainAuth) Next(_ []byte, more bool) ([]byte, error) {
	if more {
		return nil, errors.New("unexpected server challenge")
	}
	return nil, nil
}

func buildHTMLMessage(from, to, subject, htmlBody string) string {
	return fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"utf-8\"\r\n\r\n%s",
		from, to, mime.QEncoding.Encode("utf-8", subject), htmlBody)
}
