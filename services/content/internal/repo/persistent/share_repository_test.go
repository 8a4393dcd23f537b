package persistent

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"share-platform/pkg/apperr"
	"share-platform/services/content/internal/entity"
	"share-platform/services/content/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.ShareModel{}, &model.MidUserShareModel{}, &model.NoticeModel{}))
	return db
}

func createShare(t *testing.T, repo ShareRepository, title string, status entity.AuditStatus, show bool) *entity.Share {
	t.Helper()
	share := &entity.Share{
		UserID:      1,
		Title:       title,
		Price:       30,
		DownloadURL: "https://pan.example.com/" + title,
		AuditStatus: status,
		ShowFlag:    show,
	}
	require.NoError(t, repo.Create(context.Background(), share))
	return share
}

func TestCreate_Defaults(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))

	share := &entity.Share{UserID: 1, Title: "Go in Action", Price: 10}
	require.NoError(t, repo.Create(context.Background(), share))

	assert.NotZero(t, share.ID)
	assert.Equal(t, entity.AuditNotYet, share.AuditStatus)
	assert.Equal(t, entity.DefaultReason, share.Reason)
	assert.False(t, share.ShowFlag)
	assert.Equal(t, 0, share.BuyCount)
}

func TestList_FiltersAndOrders(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))

	a := createShare(t, repo, "Learning Go", entity.AuditPass, true)
	createShare(t, repo, "Hidden Go", entity.AuditPass, false)
	createShare(t, repo, "Pending Go", entity.AuditNotYet, false)
	createShare(t, repo, "Rejected Go", entity.AuditReject, true)
	b := createShare(t, repo, "Advanced GO patterns", entity.AuditPass, true)
	createShare(t, repo, "Rust Book", entity.AuditPass, true)

	shares, err := repo.List(context.Background(), "go", 10, 0)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, b.ID, shares[0].ID)
	assert.Equal(t, a.ID, shares[1].ID)

	shares, err = repo.List(context.Background(), "", 2, 0)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Greater(t, shares[0].ID, shares[1].ID)

	shares, err = repo.List(context.Background(), "", 2, 2)
	require.NoError(t, err)
	assert.Len(t, shares, 1)
}

func TestList_LikeWildcardsAreLiteral(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))
	createShare(t, repo, "100% Go", entity.AuditPass, true)
	createShare(t, repo, "100 Go", entity.AuditPass, true)

	shares, err := repo.List(context.Background(), "100%", 10, 0)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "100% Go", shares[0].Title)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListByUserAndPending(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))
	createShare(t, repo, "one", entity.AuditNotYet, false)
	createShare(t, repo, "two", entity.AuditPass, true)
	other := &entity.Share{UserID: 2, Title: "three"}
	require.NoError(t, repo.Create(context.Background(), other))

	mine, err := repo.ListByUser(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, "two", mine[0].Title)

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestUpdateAudit(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))
	share := createShare(t, repo, "one", entity.AuditNotYet, false)

	updated, err := repo.UpdateAudit(context.Background(), share.ID, entity.AuditPass, "ok", true)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditPass, updated.AuditStatus)
	assert.True(t, updated.ShowFlag)
	assert.Equal(t, "ok", updated.Reason)

	_, err = repo.UpdateAudit(context.Background(), 999, entity.AuditPass, "ok", true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateUnlock_OncePerPair(t *testing.T) {
	db := openTestDB(t)
	repo := NewShareRepository(db)
	share := createShare(t, repo, "one", entity.AuditPass, true)

	created, err := repo.CreateUnlock(context.Background(), 7, share.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateUnlock(context.Background(), 7, share.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&model.MidUserShareModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	got, err := repo.GetByID(context.Background(), share.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BuyCount)

	unlocked, err := repo.HasUnlock(context.Background(), 7, share.ID)
	require.NoError(t, err)
	assert.True(t, unlocked)

	unlocked, err = repo.HasUnlock(context.Background(), 8, share.ID)
	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestCreateUnlock_Concurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewShareRepository(db)
	share := createShare(t, repo, "one", entity.AuditPass, true)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.CreateUnlock(context.Background(), 7, share.ID)
			assert.NoError(t, err)
			if created {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	got, err := repo.GetByID(context.Background(), share.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.BuyCount)
}

func TestUnlockedIDs(t *testing.T) {
	repo := NewShareRepository(openTestDB(t))
	a := createShare(t, repo, "a", entity.AuditPass, true)
	b := createShare(t, repo, "b", entity.AuditPass, true)

	_, err := repo.CreateUnlock(context.Background(), 7, a.ID)
	require.NoError(t, err)

	unlocked, err := repo.UnlockedIDs(context.Background(), 7, []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.True(t, unlocked[a.ID])
	assert.False(t, unlocked[b.ID])

	unlocked, err = repo.UnlockedIDs(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestNoticeLatest(t *testing.T) {
	repo := NewNoticeRepository(openTestDB(t))

	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, repo.Create(context.Background(), &entity.Notice{Content: "first", ShowFlag: true}))
	require.NoError(t, repo.Create(context.Background(), &entity.Notice{Content: "second", ShowFlag: true}))
	require.NoError(t, repo.Create(context.Background(), &entity.Notice{Content: "draft", ShowFlag: false}))

	notice, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", notice.Content)
}
