package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"DocRegistry/models"
	"DocRegistry/utils"
	"DocRegistry/utils/export"

	"gorm.io/gorm"
)

// DocumentGroup is the listing of one kind, newest first.
type DocumentGroup struct {
	Kind      models.DocumentKind
	Documents []models.Document
}

// ExportFile is a rendered workbook ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type DocumentService struct {
	db       *gorm.DB
	notifier Notifier
	location *time.Location
	now      func() time.Time
	archiver Archiver
}

func NewDocumentService(db *gorm.DB, notifier Notifier, location *time.Location, opts ...Option) *DocumentService {
	o := applyOptions(opts)
	if location == nil {
		location = time.UTC
	}
	return &DocumentService{
		db:       db,
		notifier: notifier,
		location: location,
		now:      o.now,
		archiver: o.archiver,
	}
}

// Create stores a document stamped with the local date and time, then mails
// the creator a notice. A failed notice is logged and does not undo the insert.
func (s *DocumentService) Create(ctx context.Context, who Identity, kind models.DocumentKind, subject, notes string) (*models.DocumentReceipt, error) {
	if err := who.RequireLogin(); err != nil {
		return nil, err
	}
	if !who.CanCreateDocuments() {
		return nil, ErrForbidden
	}

	table, err := models.TableFor(kind)
	if err != nil {
		return nil, err
	}

	subject = strings.TrimSpace(subject)
	notes = strings.TrimSpace(notes)
	if subject == "" {
		return nil, ErrSubjectRequired
	}

	local := s.now().In(s.location)
	fields := models.DocumentFields{
		Subject: subject,
		Notes:   notes,
		Date:    time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
		Time:    local.Format("15:04:05"),
		UserID:  who.UserID,
	}

	var owner models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := table.Insert(tx, fields)
		if err != nil {
			return fmt.Errorf("insert %s: %w", kind, err)
		}
		fields.ID = id

		if err := tx.Select("id", "email").First(&owner, who.UserID).Error; err != nil {
			return fmt.Errorf("load creator: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	receipt := &models.DocumentReceipt{
		Kind:        kind,
		ID:          fields.ID,
		Subject:     subject,
		Notes:       notes,
		Date:        fields.Date.Format("2006-01-02"),
		Time:        fields.Time,
		CreatorName: who.Name,
	}

	if err := s.notifier.SendDocumentCreated(ctx, owner.Email, *receipt); err != nil {
		utils.LoggerFromContext(ctx).Error("creation notice failed",
			"kind", kind, "id", receipt.ID, "email", owner.Email, "error", err)
	}

	return receipt, nil
}

// ListMine returns every kind's documents for any logged-in caller. The
// listing is not filtered by owner.
func (s *DocumentService) ListMine(ctx context.Context, who Identity) ([]DocumentGroup, error) {
	if err := who.RequireLogin(); err != nil {
		return nil, err
	}
	return s.listAll(ctx)
}

// ListAdmin returns every kind's documents; admin only.
func (s *DocumentService) ListAdmin(ctx context.Context, who Identity) ([]DocumentGroup, error) {
	if err := who.RequireAdmin(); err != nil {
		return nil, err
	}
	return s.listAll(ctx)
}

func (s *DocumentService) listAll(ctx context.Context) ([]DocumentGroup, error) {
	groups := make([]DocumentGroup, 0, len(models.DocumentKinds))
	for _, kind := range models.DocumentKinds {
		table, err := models.TableFor(kind)
		if err != nil {
			return nil, err
		}
		docs, err := table.List(s.db.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		groups = append(groups, DocumentGroup{Kind: kind, Documents: docs})
	}
	return groups, nil
}

// Delete removes a document by id; admin only. A missing id is a no-op.
func (s *DocumentService) Delete(ctx context.Context, who Identity, kind models.DocumentKind, id uint) error {
	if err := who.RequireAdmin(); err != nil {
		return err
	}

	table, err := models.TableFor(kind)
	if err != nil {
		return err
	}

	if err := table.Delete(s.db.WithContext(ctx), id); err != nil {
		return fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return nil
}

// Export renders the full listing of kind as a workbook and, when an
// archiver is configured, keeps a copy. Archive failures are only logged.
func (s *DocumentService) Export(ctx context.Context, who Identity, kind models.DocumentKind) (*ExportFile, error) {
	if err := who.RequireLogin(); err != nil {
		return nil, err
	}

	table, err := models.TableFor(kind)
	if err != nil {
		return nil, err
	}

	docs, err := table.List(s.db.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	data, err := export.Workbook(kind, docs)
	if err != nil {
		return nil, err
	}

	file := &ExportFile{
		Filename:    export.Filename(kind, s.now()),
		ContentType: export.ContentType,
		Data:        data,
	}

	if s.archiver != nil {
		if err := s.archiver.Put(ctx, "exports/"+file.Filename, file.Data, file.ContentType); err != nil {
			utils.LoggerFromContext(ctx).Error("export archive failed", "file", file.Filename, "error", err)
		}
	}

	return file, nil
}
