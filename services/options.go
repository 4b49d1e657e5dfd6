package services

import (
	"context"
	"strings"
	"time"

	"DocRegistry/models"
)

// Notifier delivers mail on state changes. Implementations block until the
// message is handed to the mail server.
type Notifier interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
	SendDocumentCreated(ctx context.Context, toEmail string, receipt models.DocumentReceipt) error
}

// Archiver keeps a copy of exported workbooks.
type Archiver interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

type serviceOptions struct {
	now      func() time.Time
	archiver Archiver
}

type Option func(*serviceOptions)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithArchiver enables archiving of exported workbooks.
func WithArchiver(a Archiver) Option {
	return func(o *serviceOptions) {
		o.archiver = a
	}
}

func applyOptions(opts []Option) serviceOptions {
	o := serviceOptions{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
