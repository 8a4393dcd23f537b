package persistent

import (
	"share-platform/services/user/internal/entity"
	"share-platform/services/user/internal/model"
)

func ToAccountEntity(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:        m.ID,
		Phone:     m.Phone,
		Password:  m.Password,
		Nickname:  m.Nickname,
		AvatarURL: m.AvatarURL,
		Bonus:     m.Bonus,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToAccountModel(e *entity.Account) *model.AccountModel {
	if e == nil {
		return nil
	}

	return &model.AccountModel{
		ID:        e.ID,
		Phone:     e.Phone,
		Password:  e.Password,
		Nickname:  e.Nickname,
		AvatarURL: e.AvatarURL,
		Bonus:     e.Bonus,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToBonusEventEntity(m *model.BonusEventModel) *entity.BonusEvent {
	if m == nil {
		return nil
	}

	e := &entity.BonusEvent{
		ID:          m.ID,
		UserID:      m.UserID,
		Value:       m.Value,
		Event:       entity.BonusEventType(m.Event),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
	if m.RequestKey != nil {
		e.RequestKey = *m.RequestKey
	}
	return e
}

func ToBonusEventModel(e *entity.BonusEvent) *model.BonusEventModel {
	if e == nil {
		return nil
	}

	m := &model.BonusEventModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Value:       e.Value,
		Event:       string(e.Event),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
	// Events without a key must stay NULL so the unique index ignores them.
	if e.RequestKey != "" {
		key := e.RequestKey
		m.RequestKey = &key
	}
	return m
}
