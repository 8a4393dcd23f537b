package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"share-platform/pkg/apperr"
	"share-platform/pkg/database"
	"share-platform/services/user/internal/entity"
	"share-platform/services/user/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Account, error)
	Count(ctx context.Context) (int64, error)
	UpdateAvatar(ctx context.Context, id int64, avatarURL string) error
	// AdjustBalance adds delta to the balance and appends one ledger event in
	// a single transaction. With a non-empty requestKey a second call for the
	// same key changes nothing and reports applied=false. Reusing a key for
	// another account or amount is a validation error.
	AdjustBalance(ctx context.Context, event *entity.BonusEvent) (account *entity.Account, applied bool, err error)
	ListEvents(ctx context.Context, userID int64, limit, offset int) ([]*entity.BonusEvent, error)
	GetEventByKey(ctx context.Context, requestKey string) (*entity.BonusEvent, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := ToAccountModel(account)
	if err := r.db.WithContext(ctx).Create(accountModel).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("phone %s: %w", account.Phone, apperr.ErrAlreadyExists)
		}
		return err
	}
	*account = *ToAccountEntity(accountModel)
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	var accountModel model.AccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&accountModel).Error; err != nil {
		return nil, notFound(err, "account %d", id)
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) GetByPhone(ctx context.Context, phone string) (*entity.Account, error) {
	var accountModel model.AccountModel
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&accountModel).Error; err != nil {
		return nil, notFound(err, "phone %s", phone)
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *accountRepository) UpdateAvatar(ctx context.Context, id int64, avatarURL string) error {
	result := r.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"avatar_url": avatarURL, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("account %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (r *accountRepository) AdjustBalance(ctx context.Context, event *entity.BonusEvent) (*entity.Account, bool, error) {
	var (
		accountModel model.AccountModel
		applied      bool
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if event.RequestKey != "" {
			var seen []model.BonusEventModel
			if err := tx.Where("request_key = ?", event.RequestKey).Limit(1).Find(&seen).Error; err != nil {
				return err
			}
			if len(seen) > 0 {
				if err := sameAdjustment(&seen[0], event); err != nil {
					return err
				}
				return tx.Where("id = ?", event.UserID).First(&accountModel).Error
			}
		}

		result := tx.Model(&model.AccountModel{}).
			Where("id = ?", event.UserID).
			Updates(map[string]interface{}{
				"bonus":      gorm.Expr("bonus + ?", event.Value),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		eventModel := ToBonusEventModel(event)
		if err := tx.Create(eventModel).Error; err != nil {
			return err
		}

		if err := tx.Where("id = ?", event.UserID).First(&accountModel).Error; err != nil {
			return err
		}
		*event = *ToBonusEventEntity(eventModel)
		applied = true
		return nil
	})

	if err != nil {
		// A concurrent call with the same key committed first; ours rolled back.
		if event.RequestKey != "" && database.IsUniqueViolation(err) {
			var existing model.BonusEventModel
			if getErr := r.db.WithContext(ctx).Where("request_key = ?", event.RequestKey).First(&existing).Error; getErr != nil {
				return nil, false, getErr
			}
			if mismatch := sameAdjustment(&existing, event); mismatch != nil {
				return nil, false, mismatch
			}
			account, getErr := r.GetByID(ctx, event.UserID)
			return account, false, getErr
		}
		return nil, false, notFound(err, "account %d", event.UserID)
	}

	return ToAccountEntity(&accountModel), applied, nil
}

func (r *accountRepository) ListEvents(ctx context.Context, userID int64, limit, offset int) ([]*entity.BonusEvent, error) {
	var eventModels []model.BonusEventModel
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*entity.BonusEvent, len(eventModels))
	for i := range eventModels {
		events[i] = ToBonusEventEntity(&eventModels[i])
	}
	return events, nil
}

func (r *accountRepository) GetEventByKey(ctx context.Context, requestKey string) (*entity.BonusEvent, error) {
	var eventModel model.BonusEventModel
	if err := r.db.WithContext(ctx).Where("request_key = ?", requestKey).First(&eventModel).Error; err != nil {
		return nil, notFound(err, "bonus event %s", requestKey)
	}
	return ToBonusEventEntity(&eventModel), nil
}

// sameAdjustment rejects a request key reused for a different account or
// amount.
func sameAdjustment(existing *model.BonusEventModel, event *entity.BonusEvent) error {
	if existing.UserID != event.UserID || existing.Value != event.Value {
		return fmt.Errorf("request key %s already used for account %d (%+d): %w",
			event.RequestKey, existing.UserID, existing.Value, apperr.ErrValidation)
	}
	return nil
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, apperr.ErrNotFound)...)
	}
	return err
}
