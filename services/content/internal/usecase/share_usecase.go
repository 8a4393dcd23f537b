package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"share-platform/pkg/apperr"
	"share-platform/pkg/logger"
	"share-platform/pkg/metrics"
	"share-platform/pkg/queue"
	"share-platform/services/content/internal/entity"
	"share-platform/services/content/internal/repo/persistent"
	"share-platform/services/user/client"
)

const (
	defaultPageSize = 3
	defaultMaxPage  = 50

	eventBuy        = "BUY"
	eventContribute = "CONTRIBUTE"
)

// UserService is the part of the user service API this service calls.
type UserService interface {
	GetAccount(ctx context.Context, id int64) (*client.Account, error)
	AdjustBalance(ctx context.Context, req client.AdjustRequest) (*client.AdjustResult, error)
	FindBonusEvent(ctx context.Context, requestKey string) (*client.BonusEvent, error)
}

// BonusPublisher hands bonus grants to the user service asynchronously.
type BonusPublisher interface {
	PublishBonusGrant(task queue.BonusGrantTask) error
}

// Options tunes paging and the reward paid when a share is first approved.
type Options struct {
	MaxPageSize      int
	ContributeReward int
}

// ContributeInput is a new share as submitted by its contributor.
type ContributeInput struct {
	Title       string
	IsOriginal  bool
	Author      string
	Cover       string
	Summary     string
	Price       int
	DownloadURL string
}

// AuditInput is a moderation decision. A nil ShowFlag means visible on PASS.
type AuditInput struct {
	Status   entity.AuditStatus
	Reason   string
	ShowFlag *bool
}

// ShareUseCase is the content service API. A viewerID of 0 is an anonymous caller.
type ShareUseCase interface {
	List(ctx context.Context, title string, pageNo, pageSize int, viewerID int64) ([]*entity.Share, error)
	Get(ctx context.Context, id, viewerID int64) (*entity.ShareDetail, error)
	Exchange(ctx context.Context, userID, shareID int64) (*entity.Share, error)
	Contribute(ctx context.Context, userID int64, in ContributeInput) (*entity.Share, error)
	MyContribute(ctx context.Context, userID int64, pageNo, pageSize int) ([]*entity.Share, error)
	Pending(ctx context.Context) ([]*entity.Share, error)
	Audit(ctx context.Context, id int64, in AuditInput) (*entity.Share, error)
	LatestNotice(ctx context.Context) (*entity.Notice, error)
}

type shareUseCase struct {
	shareRepo  persistent.ShareRepository
	noticeRepo persistent.NoticeRepository
	users      UserService
	publisher  BonusPublisher
	opts       Options
	logger     *logger.Logger
}

func NewShareUseCase(
	shareRepo persistent.ShareRepository,
	noticeRepo persistent.NoticeRepository,
	users UserService,
	publisher BonusPublisher,
	opts Options,
	logger *logger.Logger,
) ShareUseCase {
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = defaultMaxPage
	}
	return &shareUseCase{
		shareRepo:  shareRepo,
		noticeRepo: noticeRepo,
		users:      users,
		publisher:  publisher,
		opts:       opts,
		logger:     logger,
	}
}

// ExchangeRequestKey is the ledger key of the debit for one (account, share)
// pair. Retries of the same exchange reuse it.
func ExchangeRequestKey(userID, shareID int64) string {
	return fmt.Sprintf("exchange:%d:%d", userID, shareID)
}

func ContributeRequestKey(shareID int64) string {
	return fmt.Sprintf("contribute:%d", shareID)
}

func (uc *shareUseCase) page(pageNo, pageSize int) (limit, offset int) {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > uc.opts.MaxPageSize {
		pageSize = uc.opts.MaxPageSize
	}
	return pageSize, (pageNo - 1) * pageSize
}

func (uc *shareUseCase) List(ctx context.Context, title string, pageNo, pageSize int, viewerID int64) ([]*entity.Share, error) {
	limit, offset := uc.page(pageNo, pageSize)

	shares, err := uc.shareRepo.List(ctx, title, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list shares: %v", err)
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}

	unlocked := map[int64]bool{}
	if viewerID != 0 && len(shares) > 0 {
		ids := make([]int64, len(shares))
		for i, s := range shares {
			ids[i] = s.ID
		}
		unlocked, err = uc.shareRepo.UnlockedIDs(ctx, viewerID, ids)
		if err != nil {
			uc.logger.Error("Failed to load unlocks of %d: %v", viewerID, err)
			return nil, fmt.Errorf("failed to load unlocks: %w", err)
		}
	}

	result := make([]*entity.Share, len(shares))
	for i, s := range shares {
		if unlocked[s.ID] {
			result[i] = s
		} else {
			result[i] = s.Masked()
		}
	}
	return result, nil
}

func (uc *shareUseCase) Get(ctx context.Context, id, viewerID int64) (*entity.ShareDetail, error) {
	share, err := uc.shareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !share.Listed() && (viewerID == 0 || share.UserID != viewerID) {
		return nil, fmt.Errorf("share %d: %w", id, apperr.ErrNotFound)
	}

	unlocked := false
	if viewerID != 0 {
		unlocked, err = uc.shareRepo.HasUnlock(ctx, viewerID, id)
		if err != nil {
			uc.logger.Error("Failed to check unlock: %v", err)
			return nil, fmt.Errorf("failed to check unlock: %w", err)
		}
	}
	if !unlocked {
		share = share.Masked()
	}

	contributor, err := uc.users.GetAccount(ctx, share.UserID)
	if err != nil {
		uc.logger.Warn("Failed to load contributor %d of share %d: %v", share.UserID, id, err)
		return nil, err
	}

	return &entity.ShareDetail{
		Share:     share,
		Nickname:  contributor.Nickname,
		AvatarURL: contributor.AvatarURL,
	}, nil
}

// Exchange converts bonus points into access to a share. The debit carries a
// request key derived from the pair, so a retry after a failure between the
// debit and the unlock insert completes the unlock without charging again.
func (uc *shareUseCase) Exchange(ctx context.Context, userID, shareID int64) (*entity.Share, error) {
	if userID == 0 {
		return nil, fmt.Errorf("exchange needs a signed in account: %w", apperr.ErrTokenInvalid)
	}

	share, err := uc.shareRepo.GetByID(ctx, shareID)
	if err != nil {
		metrics.RecordExchange("not_found")
		return nil, err
	}

	// An unlock outlives later moderation; only new purchases need a listed share.
	unlocked, err := uc.shareRepo.HasUnlock(ctx, userID, shareID)
	if err != nil {
		uc.logger.Error("Failed to check unlock: %v", err)
		return nil, fmt.Errorf("failed to check unlock: %w", err)
	}
	if unlocked {
		metrics.RecordExchange("already_unlocked")
		return share, nil
	}

	if !share.Listed() {
		metrics.RecordExchange("not_found")
		return nil, fmt.Errorf("share %d: %w", shareID, apperr.ErrNotFound)
	}

	if share.Price > 0 {
		if err := uc.debit(ctx, userID, share); err != nil {
			return nil, err
		}
	}

	created, err := uc.shareRepo.CreateUnlock(ctx, userID, shareID)
	if err != nil {
		// The debit is recorded under the request key; a retry only inserts the unlock.
		uc.logger.Error("Debited %d for share %d but failed to record unlock: %v", userID, shareID, err)
		metrics.RecordExchange("unlock_failed")
		return nil, fmt.Errorf("failed to record unlock: %w", err)
	}
	if !created {
		uc.logger.Info("Share %d was unlocked for %d by a concurrent exchange", shareID, userID)
		metrics.RecordExchange("concurrent")
		return share, nil
	}

	share.BuyCount++
	metrics.RecordExchange("unlocked")
	uc.logger.Info("Account %d exchanged share %d for %d points", userID, shareID, share.Price)
	return share, nil
}

func (uc *shareUseCase) debit(ctx context.Context, userID int64, share *entity.Share) error {
	key := ExchangeRequestKey(userID, share.ID)

	account, err := uc.users.GetAccount(ctx, userID)
	if err != nil {
		uc.logger.Warn("Balance check for %d failed: %v", userID, err)
		metrics.RecordExchange("remote_failure")
		return err
	}

	if account.Bonus < share.Price {
		// A short balance may be our own earlier debit whose unlock never landed.
		if _, err := uc.users.FindBonusEvent(ctx, key); err == nil {
			uc.logger.Info("Resuming exchange %s after an earlier debit", key)
			return nil
		} else if !errors.Is(err, apperr.ErrNotFound) {
			metrics.RecordExchange("remote_failure")
			return err
		}
		metrics.RecordExchange("insufficient_balance")
		return fmt.Errorf("account %d has %d points, share %d costs %d: %w",
			userID, account.Bonus, share.ID, share.Price, apperr.ErrInsufficientBalance)
	}

	result, err := uc.users.AdjustBalance(ctx, client.AdjustRequest{
		UserID:      userID,
		Bonus:       -share.Price,
		Event:       eventBuy,
		Description: fmt.Sprintf("exchange share %d", share.ID),
		RequestKey:  key,
	})
	if err != nil {
		uc.logger.Warn("Debit %s failed: %v", key, err)
		metrics.RecordExchange("remote_failure")
		return err
	}
	if !result.Applied {
		uc.logger.Info("Debit %s was already applied", key)
	}
	return nil
}

func (uc *shareUseCase) Contribute(ctx context.Context, userID int64, in ContributeInput) (*entity.Share, error) {
	if userID == 0 {
		return nil, fmt.Errorf("contribute needs a signed in account: %w", apperr.ErrTokenInvalid)
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", apperr.ErrValidation)
	}

	share := &entity.Share{
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		IsOriginal:  in.IsOriginal,
		Author:      in.Author,
		Cover:       in.Cover,
		Summary:     in.Summary,
		Price:       in.Price,
		DownloadURL: in.DownloadURL,
		ShowFlag:    false,
		AuditStatus: entity.AuditNotYet,
		Reason:      entity.DefaultReason,
		BuyCount:    0,
	}
	if err := uc.shareRepo.Create(ctx, share); err != nil {
		uc.logger.Error("Failed to create share: %v", err)
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	uc.logger.Info("Account %d contributed share %d", userID, share.ID)
	return share, nil
}

func (uc *shareUseCase) MyContribute(ctx context.Context, userID int64, pageNo, pageSize int) ([]*entity.Share, error) {
	limit, offset := uc.page(pageNo, pageSize)

	shares, err := uc.shareRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		uc.logger.Error("Failed to list contributions: %v", err)
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return shares, nil
}

func (uc *shareUseCase) Pending(ctx context.Context) ([]*entity.Share, error) {
	shares, err := uc.shareRepo.ListPending(ctx)
	if err != nil {
		uc.logger.Error("Failed to list pending shares: %v", err)
		return nil, fmt.Errorf("failed to list pending shares: %w", err)
	}
	return shares, nil
}

// Audit records a moderation decision. The first approval of a share queues
// the contributor's reward.
func (uc *shareUseCase) Audit(ctx context.Context, id int64, in AuditInput) (*entity.Share, error) {
	if in.Status != entity.AuditPass && in.Status != entity.AuditReject {
		return nil, fmt.Errorf("audit status must be PASS or REJECT: %w", apperr.ErrValidation)
	}

	before, err := uc.shareRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	showFlag := in.Status == entity.AuditPass
	if in.ShowFlag != nil {
		showFlag = *in.ShowFlag && in.Status == entity.AuditPass
	}

	share, err := uc.shareRepo.UpdateAudit(ctx, id, in.Status, in.Reason, showFlag)
	if err != nil {
		uc.logger.Error("Failed to audit share %d: %v", id, err)
		return nil, fmt.Errorf("failed to audit share: %w", err)
	}

	if before.AuditStatus != entity.AuditPass && share.AuditStatus == entity.AuditPass {
		uc.grantContributeReward(share)
	}
	return share, nil
}

func (uc *shareUseCase) grantContributeReward(share *entity.Share) {
	if uc.publisher == nil || uc.opts.ContributeReward == 0 {
		return
	}

	task := queue.BonusGrantTask{
		UserID:      share.UserID,
		Bonus:       uc.opts.ContributeReward,
		Event:       eventContribute,
		Description: fmt.Sprintf("share %d approved", share.ID),
		RequestKey:  ContributeRequestKey(share.ID),
	}
	if err := uc.publisher.PublishBonusGrant(task); err != nil {
		uc.logger.Error("Failed to queue contribute reward for share %d: %v", share.ID, err)
	}
}

func (uc *shareUseCase) LatestNotice(ctx context.Context) (*entity.Notice, error) {
	return uc.noticeRepo.Latest(ctx)
}
