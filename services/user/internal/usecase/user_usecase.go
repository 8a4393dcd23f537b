package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"share-platform/pkg/apperr"
	"share-platform/pkg/idgen"
	"share-platform/pkg/jwt"
	"share-platform/pkg/logger"
	"share-platform/pkg/metrics"
	"share-platform/pkg/queue"
	"share-platform/services/user/internal/entity"
	"share-platform/services/user/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultLogPageSize = 10
	maxLogPageSize     = 50
)

// AvatarStorage stores uploaded avatar images and returns their public URL.
type AvatarStorage interface {
	UploadFile(key string, body io.Reader, contentType string) (string, error)
}

type AdjustBalanceInput struct {
	UserID      int64
	Delta       int
	Event       entity.BonusEventType
	Description string
	RequestKey  string
}

type UserUseCase interface {
	Register(ctx context.Context, phone, password string) (int64, error)
	Login(ctx context.Context, phone, password string) (*entity.Account, string, error)
	GetAccount(ctx context.Context, id int64) (*entity.Account, error)
	Count(ctx context.Context) (int64, error)
	AdjustBalance(ctx context.Context, in AdjustBalanceInput) (*entity.Account, bool, error)
	ListBonusEvents(ctx context.Context, userID int64, pageNo, pageSize int) ([]*entity.BonusEvent, error)
	FindBonusEvent(ctx context.Context, requestKey string) (*entity.BonusEvent, error)
	UploadAvatar(ctx context.Context, userID int64, fileReader io.Reader, fileKey string, contentType string) (*entity.Account, error)
	HandleBonusGrant(task queue.BonusGrantTask) error
}

type userUseCase struct {
	accountRepo persistent.AccountRepository
	jwtService  *jwt.Service
	ids         *idgen.Generator
	avatars     AvatarStorage
	logger      *logger.Logger
}

func NewUserUseCase(
	accountRepo persistent.AccountRepository,
	jwtService *jwt.Service,
	ids *idgen.Generator,
	avatars AvatarStorage,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		ids:         ids,
		avatars:     avatars,
		logger:      logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, phone, password string) (int64, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return 0, fmt.Errorf("phone and password are required: %w", apperr.ErrValidation)
	}

	if _, err := uc.accountRepo.GetByPhone(ctx, phone); err == nil {
		return 0, fmt.Errorf("phone %s: %w", phone, apperr.ErrAlreadyExists)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		uc.logger.Error("Failed to look up phone: %v", err)
		return 0, fmt.Errorf("failed to look up phone: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return 0, fmt.Errorf("failed to process registration: %w", err)
	}

	account := &entity.Account{
		ID:        uc.ids.NextID(),
		Phone:     phone,
		Password:  string(hashedPassword),
		Nickname:  entity.DefaultNickname,
		AvatarURL: entity.DefaultAvatarURL,
		Bonus:     entity.InitialBonus,
	}

	// The unique phone index settles a race between two registrations.
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, apperr.ErrAlreadyExists) {
			return 0, err
		}
		uc.logger.Error("Failed to create account: %v", err)
		return 0, fmt.Errorf("failed to create account: %w", err)
	}

	uc.logger.Info("Registered account %d", account.ID)
	return account.ID, nil
}

func (uc *userUseCase) Login(ctx context.Context, phone, password string) (*entity.Account, string, error) {
	account, err := uc.accountRepo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("wrong password for %s: %w", account.Phone, apperr.ErrInvalidCredential)
	}

	token, err := uc.jwtService.GenerateToken(account.ID, account.Phone)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	account.Password = ""
	return account, token, nil
}

func (uc *userUseCase) GetAccount(ctx context.Context, id int64) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.Password = ""
	return account, nil
}

func (uc *userUseCase) Count(ctx context.Context) (int64, error) {
	return uc.accountRepo.Count(ctx)
}

func (uc *userUseCase) AdjustBalance(ctx context.Context, in AdjustBalanceInput) (*entity.Account, bool, error) {
	if in.UserID == 0 {
		return nil, false, fmt.Errorf("userId is required: %w", apperr.ErrValidation)
	}
	if in.Event == "" {
		in.Event = entity.EventGrant
	}

	account, applied, err := uc.accountRepo.AdjustBalance(ctx, &entity.BonusEvent{
		UserID:      in.UserID,
		Value:       in.Delta,
		Event:       in.Event,
		Description: in.Description,
		RequestKey:  in.RequestKey,
	})
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) && !errors.Is(err, apperr.ErrValidation) {
			uc.logger.Error("Failed to adjust balance of %d: %v", in.UserID, err)
		}
		return nil, false, err
	}

	metrics.RecordAdjustment(string(in.Event), applied)
	if applied {
		uc.logger.Info("Adjusted balance of %d by %d (%s), now %d", in.UserID, in.Delta, in.Event, account.Bonus)
	} else {
		uc.logger.Info("Replayed balance adjustment %s for %d", in.RequestKey, in.UserID)
	}

	account.Password = ""
	return account, applied, nil
}

func (uc *userUseCase) ListBonusEvents(ctx context.Context, userID int64, pageNo, pageSize int) ([]*entity.BonusEvent, error) {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize < 1 {
		pageSize = defaultLogPageSize
	}
	if pageSize > maxLogPageSize {
		pageSize = maxLogPageSize
	}

	events, err := uc.accountRepo.ListEvents(ctx, userID, pageSize, (pageNo-1)*pageSize)
	if err != nil {
		uc.logger.Error("Failed to list bonus events: %v", err)
		return nil, fmt.Errorf("failed to list bonus events: %w", err)
	}
	return events, nil
}

func (uc *userUseCase) FindBonusEvent(ctx context.Context, requestKey string) (*entity.BonusEvent, error) {
	if requestKey == "" {
		return nil, fmt.Errorf("requestKey is required: %w", apperr.ErrValidation)
	}
	return uc.accountRepo.GetEventByKey(ctx, requestKey)
}

func (uc *userUseCase) UploadAvatar(ctx context.Context, userID int64, fileReader io.Reader, fileKey string, contentType string) (*entity.Account, error) {
	if uc.avatars == nil {
		return nil, fmt.Errorf("avatar storage is not configured")
	}

	if _, err := uc.accountRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	avatarURL, err := uc.avatars.UploadFile(fileKey, fileReader, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := uc.accountRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		uc.logger.Error("Failed to update account: %v", err)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return uc.GetAccount(ctx, userID)
}

// HandleBonusGrant applies a task delivered over RabbitMQ. Redelivery of the
// same task is absorbed by its request key. An unknown account is dropped.
func (uc *userUseCase) HandleBonusGrant(task queue.BonusGrantTask) error {
	_, _, err := uc.AdjustBalance(context.Background(), AdjustBalanceInput{
		UserID:      task.UserID,
		Delta:       task.Bonus,
		Event:       entity.BonusEventType(task.Event),
		Description: task.Description,
		RequestKey:  task.RequestKey,
	})
	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, apperr.ErrValidation) {
		uc.logger.Warn("Dropping bonus grant %s: %v", task.RequestKey, err)
		return nil
	}
	return err
}
