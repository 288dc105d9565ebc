package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bramantyo/ombot-backend/internal/modules/points"
	"github.com/bramantyo/ombot-backend/internal/modules/store"
	"github.com/bramantyo/ombot-backend/internal/modules/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any login failure so callers cannot
// distinguish unknown emails from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

type service struct {
	users  user.Repository
	stores store.Service
	wallet points.Service
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates the auth service. ttl bounds every issued token.
func NewService(users user.Repository, stores store.Service, wallet points.Service, secret string, ttl time.Duration) Service {
	return &service{
		users:  users,
		stores: stores,
		wallet: wallet,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Status != user.StatusActive {
		return nil, fmt.Errorf("account is %s", u.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u, 0)
}

func (s *service) ChooseStore(ctx context.Context, claims Claims, storeID int64) (*TokenResponse, error) {
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if u.Role != user.RoleAdmin {
		ok, err := s.stores.CanAccess(ctx, storeID, u.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("not a member of store %d", storeID)
		}
	}
	if _, err := s.stores.Get(ctx, storeID); err != nil {
		return nil, err
	}

	return s.issue(u, storeID)
}

func (s *service) Profile(ctx context.Context, claims Claims) (*Profile, error) {
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	p := &Profile{}
	p.User.ID = u.ID
	p.User.Username = u.Username
	p.User.FullName = u.FullName
	p.User.Role = string(u.Role)

	if claims.StoreID != 0 {
		st, err := s.stores.Get(ctx, claims.StoreID)
		if err != nil {
			return nil, err
		}
		balance, err := s.wallet.Balance(ctx, claims.StoreID)
		if err != nil {
			return nil, err
		}
		p.User.StoreID = st.ID
		p.User.StoreName = st.Name
		p.User.StoreImage = st.ImageURL
		p.User.StorePoints = balance
	}

	if claims.ExpiresAt != nil {
		remaining := claims.ExpiresAt.Sub(s.now())
		p.ExpiresIn = int64(remaining.Seconds())
		p.ExpiredStatus = remaining <= 0
	}
	return p, nil
}

func (s *service) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

func (s *service) issue(u *user.User, storeID int64) (*TokenResponse, error) {
	now := s.now()
	claims := &Claims{
		UserID:  u.ID,
		Role:    string(u.Role),
		StoreID: storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		User: UserSummary{
			ID:       u.ID,
			Username: u.Username,
			FullName: u.FullName,
			Role:     string(u.Role),
		},
	}, nil
}
