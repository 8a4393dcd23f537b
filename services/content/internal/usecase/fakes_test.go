package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"share-platform/pkg/apperr"
	"share-platform/pkg/queue"
	"share-platform/services/content/internal/entity"
	"share-platform/services/user/client"
)

type unlockKey struct{ userID, shareID int64 }

// memShareRepo keeps shares and unlocks in memory and enforces the unique
// (user, share) pair the same way the database index does.
type memShareRepo struct {
	mu      sync.Mutex
	nextID  int64
	shares  map[int64]*entity.Share
	unlocks map[unlockKey]bool

	// failUnlocks makes the next n CreateUnlock calls fail before writing.
	failUnlocks int
}

func newMemShareRepo() *memShareRepo {
	return &memShareRepo{shares: map[int64]*entity.Share{}, unlocks: map[unlockKey]bool{}}
}

func (r *memShareRepo) add(s *entity.Share) *entity.Share {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	c := *s
	r.shares[s.ID] = &c
	return s
}

func (r *memShareRepo) unlockCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.unlocks)
}

func (r *memShareRepo) sorted(keep func(*entity.Share) bool) []*entity.Share {
	var out []*entity.Share
	for _, s := range r.shares {
		if keep(s) {
			c := *s
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func window(shares []*entity.Share, limit, offset int) []*entity.Share {
	if offset >= len(shares) {
		return []*entity.Share{}
	}
	end := offset + limit
	if end > len(shares) {
		end = len(shares)
	}
	return shares[offset:end]
}

func (r *memShareRepo) List(ctx context.Context, title string, limit, offset int) ([]*entity.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return window(r.sorted(func(s *entity.Share) bool {
		return s.Listed() && strings.Contains(strings.ToLower(s.Title), strings.ToLower(title))
	}), limit, offset), nil
}

func (r *memShareRepo) GetByID(ctx context.Context, id int64) (*entity.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[id]
	if !ok {
		return nil, fmt.Errorf("share %d: %w", id, apperr.ErrNotFound)
	}
	c := *s
	return &c, nil
}

func (r *memShareRepo) Create(ctx context.Context, share *entity.Share) error {
	r.add(share)
	return nil
}

func (r *memShareRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return window(r.sorted(func(s *entity.Share) bool { return s.UserID == userID }), limit, offset), nil
}

func (r *memShareRepo) ListPending(ctx context.Context) ([]*entity.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(s *entity.Share) bool { return s.AuditStatus == entity.AuditNotYet && !s.ShowFlag }), nil
}

func (r *memShareRepo) UpdateAudit(ctx context.Context, id int64, status entity.AuditStatus, reason string, showFlag bool) (*entity.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.shares[id]
	if !ok {
		return nil, fmt.Errorf("share %d: %w", id, apperr.ErrNotFound)
	}
	s.AuditStatus, s.Reason, s.ShowFlag = status, reason, showFlag
	c := *s
	return &c, nil
}

func (r *memShareRepo) HasUnlock(ctx context.Context, userID, shareID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unlocks[unlockKey{userID, shareID}], nil
}

func (r *memShareRepo) UnlockedIDs(ctx context.Context, userID int64, shareIDs []int64) (map[int64]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64]bool{}
	for _, id := range shareIDs {
		if r.unlocks[unlockKey{userID, id}] {
			out[id] = true
		}
	}
	return out, nil
}

func (r *memShareRepo) CreateUnlock(ctx context.Context, userID, shareID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUnlocks > 0 {
		r.failUnlocks--
		return false, errors.New("connection reset by peer")
	}
	k := unlockKey{userID, shareID}
	if r.unlocks[k] {
		return false, nil
	}
	r.unlocks[k] = true
	r.shares[shareID].BuyCount++
	return true, nil
}

type memNoticeRepo struct {
	notice *entity.Notice
}

func (r *memNoticeRepo) Latest(ctx context.Context) (*entity.Notice, error) {
	if r.notice == nil {
		return nil, apperr.ErrNotFound
	}
	return r.notice, nil
}

func (r *memNoticeRepo) Create(ctx context.Context, notice *entity.Notice) error {
	r.notice = notice
	return nil
}

// fakeUserService behaves like the user service ledger: atomic adjustments,
// request keys applied at most once.
type fakeUserService struct {
	mu       sync.Mutex
	accounts map[int64]*client.Account
	events   []client.BonusEvent
	keys     map[string]bool

	getErr    error
	adjustErr error
	// adjustErrAfterApply applies the debit and then reports a failure, the
	// way a timeout after the user service committed looks to the caller.
	adjustErrAfterApply error
	probeErr            error

	getCalls, adjustCalls, probeCalls int
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{accounts: map[int64]*client.Account{}, keys: map[string]bool{}}
}

func (f *fakeUserService) addAccount(id int64, bonus int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[id] = &client.Account{ID: id, Nickname: fmt.Sprintf("user-%d", id), AvatarURL: "https://a/" + fmt.Sprint(id), Bonus: bonus}
}

func (f *fakeUserService) balance(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[id].Bonus
}

func (f *fakeUserService) eventsFor(id int64) []client.BonusEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []client.BonusEvent
	for _, e := range f.events {
		if e.UserID == id {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeUserService) GetAccount(ctx context.Context, id int64) (*client.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", id, apperr.ErrNotFound)
	}
	c := *a
	return &c, nil
}

func (f *fakeUserService) AdjustBalance(ctx context.Context, req client.AdjustRequest) (*client.AdjustResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adjustCalls++
	if f.adjustErr != nil {
		return nil, f.adjustErr
	}
	a, ok := f.accounts[req.UserID]
	if !ok {
		return nil, fmt.Errorf("account %d: %w", req.UserID, apperr.ErrNotFound)
	}

	applied := false
	if req.RequestKey == "" || !f.keys[req.RequestKey] {
		a.Bonus += req.Bonus
		f.events = append(f.events, client.BonusEvent{
			ID: int64(len(f.events) + 1), UserID: req.UserID, Value: req.Bonus,
			Event: req.Event, Description: req.Description, RequestKey: req.RequestKey,
		})
		if req.RequestKey != "" {
			f.keys[req.RequestKey] = true
		}
		applied = true
	}

	if f.adjustErrAfterApply != nil {
		err := f.adjustErrAfterApply
		f.adjustErrAfterApply = nil
		return nil, err
	}

	c := *a
	return &client.AdjustResult{Account: &c, Applied: applied}, nil
}

func (f *fakeUserService) FindBonusEvent(ctx context.Context, requestKey string) (*client.BonusEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probeCalls++
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	for _, e := range f.events {
		if e.RequestKey == requestKey {
			c := e
			return &c, nil
		}
	}
	return nil, fmt.Errorf("bonus event %s: %w", requestKey, apperr.ErrNotFound)
}

type fakePublisher struct {
	mu    sync.Mutex
	tasks []queue.BonusGrantTask
	err   error
}

func (p *fakePublisher) PublishBonusGrant(task queue.BonusGrantTask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.tasks = append(p.tasks, task)
	return nil
}
