package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"DocRegistry/models"
	"DocRegistry/utils/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type documentFixture struct {
	db       *gorm.DB
	svc      *DocumentService
	notifier *fakeNotifier
	archiver *fakeArchiver
	admin    Identity
	user     Identity
}

func newDocumentFixture(t *testing.T, now time.Time) *documentFixture {
	t.Helper()
	db := setupTestDB(t)
	admin := seedUser(t, db, "Ana", "ana@example.com", "secret", models.RoleAdmin)
	user := seedUser(t, db, "Luis", "luis@example.com", "secret", models.RoleUser)

	notifier := &fakeNotifier{}
	archiver := &fakeArchiver{}
	svc := NewDocumentService(db, notifier, quito,
		WithClock(func() time.Time { return now }),
		WithArchiver(archiver))

	return &documentFixture{
		db:       db,
		svc:      svc,
		notifier: notifier,
		archiver: archiver,
		admin:    identityOf(admin),
		user:     identityOf(user),
	}
}

func TestCreateStampsLocalDateAndTime(t *testing.T) {
	f := newDocumentFixture(t, time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC))

	receipt, err := f.svc.Create(context.Background(), f.user, models.KindMinutes, "  Budget review ", " Approved ")
	require.NoError(t, err)

	assert.Equal(t, models.KindMinutes, receipt.Kind)
	assert.NotZero(t, receipt.ID)
	assert.Equal(t, "Budget review", receipt.Subject)
	assert.Equal(t, "Approved", receipt.Notes)
	assert.Equal(t, "2026-10-15", receipt.Date)
	assert.Equal(t, "09:00:00", receipt.Time)
	assert.Equal(t, "Luis", receipt.CreatorName)

	require.Len(t, f.notifier.notices, 1)
	assert.Equal(t, "luis@example.com", f.notifier.notices[0].To)
	assert.Equal(t, *receipt, f.notifier.notices[0].Receipt)
}

func TestCreateUsesLocalCalendarDay(t *testing.T) {
	// 03:30 UTC is still the previous evening in Quito.
	f := newDocumentFixture(t, time.Date(2026, 10, 16, 3, 30, 0, 0, time.UTC))

	receipt, err := f.svc.Create(context.Background(), f.admin, models.KindReports, "Late filing", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", receipt.Date)
	assert.Equal(t, "22:30:00", receipt.Time)

	groups, err := f.svc.ListAdmin(context.Background(), f.admin)
	require.NoError(t, err)
	docs := groups[1].Documents
	require.Len(t, docs, 1)
	assert.Equal(t, "2026-10-15", docs[0].DateString())
	assert.Equal(t, "22:30:00", docs[0].TimeString())
}

func TestCreateRejectsBlankSubject(t *testing.T) {
	f := newDocumentFixture(t, time.Now())

	for _, subject := range []string{"", "   ", "\t\n"} {
		_, err := f.svc.Create(context.Background(), f.user, models.KindMinutes, subject, "notes")
		assert.ErrorIs(t, err, ErrSubjectRequired)
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Minute{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.notifier.notices)
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	f := newDocumentFixture(t, time.Now())

	_, err := f.svc.Create(context.Background(), f.user, models.DocumentKind("usuarios"), "x", "")
	assert.ErrorIs(t, err, ErrInvalidDocumentKind)
}

func TestCreateRequiresKnownRole(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, Identity{}, models.KindMinutes, "x", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	guest := Identity{UserID: f.user.UserID, Name: "Luis", Role: models.Role("guest")}
	_, err = f.svc.Create(ctx, guest, models.KindMinutes, "x", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	var last uint
	for i := 0; i < 3; i++ {
		receipt, err := f.svc.Create(ctx, f.user, models.KindStatements, "Statement", "")
		require.NoError(t, err)
		assert.Greater(t, receipt.ID, last)
		last = receipt.ID
	}
}

func TestCreateSurvivesNotifierFailure(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	f.notifier.err = errMailDown

	receipt, err := f.svc.Create(context.Background(), f.user, models.KindCommissions, "Travel", "")
	require.NoError(t, err)

	var stored models.Commission
	require.NoError(t, f.db.First(&stored, receipt.ID).Error)
	assert.Equal(t, "Travel", stored.Subject)
	assert.Equal(t, f.user.UserID, stored.UserID)
}

func TestListingsGroupEveryKindNewestFirst(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.user, models.KindMinutes, "First", "")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.admin, models.KindMinutes, "Second", "")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.admin, models.KindCommissions, "Trip", "")
	require.NoError(t, err)

	groups, err := f.svc.ListMine(ctx, f.user)
	require.NoError(t, err)
	require.Len(t, groups, len(models.DocumentKinds))
	for i, kind := range models.DocumentKinds {
		assert.Equal(t, kind, groups[i].Kind)
	}

	minutes := groups[0].Documents
	require.Len(t, minutes, 2)
	assert.Equal(t, "Second", minutes[0].Subject)
	assert.Equal(t, "Ana", minutes[0].OwnerName)
	assert.Equal(t, "First", minutes[1].Subject)
	assert.Equal(t, "Luis", minutes[1].OwnerName)

	assert.Empty(t, groups[1].Documents)
	assert.Empty(t, groups[2].Documents)
	require.Len(t, groups[3].Documents, 1)
	assert.Equal(t, models.KindCommissions, groups[3].Documents[0].Kind)
}

func TestListingAccess(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	_, err := f.svc.ListMine(ctx, Identity{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = f.svc.ListAdmin(ctx, f.user)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.ListAdmin(ctx, Identity{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestDeleteDocument(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	keep, err := f.svc.Create(ctx, f.user, models.KindReports, "Keep", "")
	require.NoError(t, err)
	drop, err := f.svc.Create(ctx, f.user, models.KindReports, "Drop", "")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.user, models.KindReports, drop.ID), ErrForbidden)
	require.NoError(t, f.svc.Delete(ctx, f.admin, models.KindReports, drop.ID))

	groups, err := f.svc.ListAdmin(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, groups[1].Documents, 1)
	assert.Equal(t, keep.ID, groups[1].Documents[0].ID)
}

func TestDeleteMissingIDIsNoop(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	kept, err := f.svc.Create(ctx, f.user, models.KindMinutes, "Board vote", "")
	require.NoError(t, err)

	for _, id := range []uint{kept.ID + 9999, 0} {
		assert.NoError(t, f.svc.Delete(ctx, f.admin, models.KindMinutes, id))
	}

	var count int64
	require.NoError(t, f.db.Model(&models.Minute{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	groups, err := f.svc.ListAdmin(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, groups[0].Documents, 1)
	assert.Equal(t, kept.ID, groups[0].Documents[0].ID)
}

func TestDeleteRejectsUnknownKind(t *testing.T) {
	f := newDocumentFixture(t, time.Now())

	err := f.svc.Delete(context.Background(), f.admin, models.DocumentKind("password_resets"), 1)
	assert.ErrorIs(t, err, ErrInvalidDocumentKind)
}

func TestExportBuildsWorkbookAndArchives(t *testing.T) {
	now := time.Date(2026, 10, 15, 14, 5, 9, 0, time.UTC)
	f := newDocumentFixture(t, now)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.user, models.KindMinutes, "Budget", "")
	require.NoError(t, err)

	file, err := f.svc.Export(ctx, f.user, models.KindMinutes)
	require.NoError(t, err)
	assert.Equal(t, export.Filename(models.KindMinutes, now), file.Filename)
	assert.Equal(t, export.ContentType, file.ContentType)
	assert.NotEmpty(t, file.Data)

	require.Len(t, f.archiver.objects, 1)
	assert.Equal(t, "exports/"+file.Filename, f.archiver.objects[0].Key)
	assert.Equal(t, len(file.Data), f.archiver.objects[0].Size)
	assert.Equal(t, export.ContentType, f.archiver.objects[0].ContentType)
}

func TestExportIgnoresArchiveFailure(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	f.archiver.err = errors.New("bucket unavailable")

	file, err := f.svc.Export(context.Background(), f.admin, models.KindStatements)
	require.NoError(t, err)
	assert.NotEmpty(t, file.Data)
}

func TestExportAccess(t *testing.T) {
	f := newDocumentFixture(t, time.Now())
	ctx := context.Background()

	_, err := f.svc.Export(ctx, Identity{}, models.KindMinutes)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = f.svc.Export(ctx, f.user, models.DocumentKind("bogus"))
	assert.ErrorIs(t, err, ErrInvalidDocumentKind)
}
