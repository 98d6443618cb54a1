package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"reportdesk/internal/domain"
)

func newShareLinkTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.ShareLink{}))
	return db
}

func seedShareLink(t *testing.T, repo *ShareLinkRepository, expiresAt time.Time) *domain.ShareLink {
	t.Helper()
	link := &domain.ShareLink{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		ReportID:  uuid.NewString(),
		CreatedBy: 1,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, repo.Create(context.Background(), link))
	return link
}

func TestShareLinkRepository_DeleteExpired(t *testing.T) {
	repo := NewShareLinkRepository(newShareLinkTestDB(t))
	ctx := context.Background()
	now := time.Now()

	expired := seedShareLink(t, repo, now.Add(-time.Hour))
	alsoExpired := seedShareLink(t, repo, now.Add(-time.Minute))
	live := seedShareLink(t, repo, now.Add(time.Hour))

	purged, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = repo.GetByToken(ctx, expired.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetByToken(ctx, alsoExpired.Token)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	kept, err := repo.GetByToken(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, live.ID, kept.ID)
}

func TestShareLinkRepository_DeleteExpiredNothingToPurge(t *testing.T) {
	repo := NewShareLinkRepository(newShareLinkTestDB(t))

	seedShareLink(t, repo, time.Now().Add(time.Hour))

	purged, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), purged)
}
