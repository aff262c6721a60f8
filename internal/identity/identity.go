package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// ErrUnknownUser means the token subject has no row in users.
var ErrUnknownUser = errors.New("unknown user")

// Identity is the clinic user behind a verified token.
type Identity struct {
	UserID   uuid.UUID `json:"id"`
	Subject  string    `json:"auth_user_id"`
	FullName string    `json:"nombre_completo"`
	Email    string    `json:"email"`
	Role     string    `json:"rol"`
	Active   bool      `json:"activo"`
}

// UserStore loads users by identity provider subject.
type UserStore interface {
	FindBySubject(ctx context.Context, subject string) (*models.User, error)
	TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindBySubject(ctx context.Context, subject string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("auth_user_id = ?", subject).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormUserStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&u).Error; err != nil {
			return err
		}
		return tx.Model(&u).Update("active", active).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	u.Active = active
	return &u, nil
}

func (s *GormUserStore) TouchLastAccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_access_at", at).Error
}

// Resolver maps token subjects to identities, caching hits in redis for ttl.
// rdb may be nil.
type Resolver struct {
	store UserStore
	rdb   *redis.Client
	ttl   time.Duration
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewResolver(store UserStore, rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) *Resolver {
	return &Resolver{
		store: store,
		rdb:   rdb,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

func cacheKey(subject string) string {
	return "identity:" + subject
}

func (r *Resolver) Resolve(ctx context.Context, subject string) (*Identity, error) {
	if id, ok := r.cached(ctx, subject); ok {
		return id, nil
	}

	u, err := r.store.FindBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	id := &Identity{
		UserID:   u.ID,
		Subject:  u.AuthUserID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Active:   u.Active,
	}

	// last access is refreshed once per cache period
	if err := r.store.TouchLastAccess(ctx, u.ID, r.now()); err != nil {
		r.log.WithError(err).WithField("user_id", u.ID).Warn("last access update failed")
	}

	r.remember(ctx, subject, id)
	return id, nil
}

// SetActive enables or disables a user and drops its cached identity, so the
// next request sees the new state instead of waiting out the cache ttl.
func (r *Resolver) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*Identity, error) {
	u, err := r.store.SetActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	r.Forget(ctx, u.AuthUserID)

	return &Identity{
		UserID:   u.ID,
		Subject:  u.AuthUserID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Active:   u.Active,
	}, nil
}

// Forget drops a cached identity.
func (r *Resolver) Forget(ctx context.Context, subject string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.Del(ctx, cacheKey(subject)).Err(); err != nil {
		r.log.WithError(err).Warn("identity cache delete failed")
	}
}

func (r *Resolver) cached(ctx context.Context, subject string) (*Identity, bool) {
	if r.rdb == nil || r.ttl <= 0 {
		return nil, false
	}

	raw, err := r.rdb.Get(ctx, cacheKey(subject)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.WithError(err).Warn("identity cache read failed")
		}
		return nil, false
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, false
	}
	return &id, true
}

func (r *Resolver) remember(ctx context.Context, subject string, id *Identity) {
	if r.rdb == nil || r.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, cacheKey(subject), raw, r.ttl).Err(); err != nil {
		r.log.WithError(err).Warn("identity cache write failed")
	}
}
