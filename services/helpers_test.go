package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"DocRegistry/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Quito has no DST, which keeps the local stamps predictable.
var quito = time.FixedZone("ECT", -5*60*60)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email, password string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: password, Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func identityOf(u *models.User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Role: u.Role}
}

type sentReset struct {
	To   string
	Link string
}

type sentNotice struct {
	To      string
	Receipt models.DocumentReceipt
}

type fakeNotifier struct {
	mu      sync.Mutex
	err     error
	resets  []sentReset
	notices []sentNotice
}

func (f *fakeNotifier) SendPasswordReset(_ context.Context, to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, sentReset{To: to, Link: link})
	return nil
}

func (f *fakeNotifier) SendDocumentCreated(_ context.Context, to string, receipt models.DocumentReceipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, sentNotice{To: to, Receipt: receipt})
	return nil
}

type archivedObject struct {
	Key         string
	Size        int
	ContentType string
}

type fakeArchiver struct {
	err     error
	objects []archivedObject
}

func (f *fakeArchiver) Put(_ context.Context, key string, body []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.objects = append(f.objects, archivedObject{Key: key, Size: len(body), ContentType: contentType})
	return nil
}

var errMailDown = errors.New("smtp: connection refused")
