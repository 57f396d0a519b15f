package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ハッシュ照合
type PasswordVerifier interface {
	Verify(hash string, plain string) bool
}

// アクセストークンを発行する約束（実装はmain側のJWT issuer）
type TokenIssuer interface {
	Issue(userID string, role model.Role, now time.Time) (string, time.Time, error)
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// AuthUsecase は会員登録とログイン。
type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   TokenIssuer
}

// DI
func NewAuthUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Address   string
	Phone     string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        model.User `json:"user"`
}

// 会員登録
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)

	// emailの形式チェック
	if !isValidEmailFormat(email) {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	// passwordの長さチェック（最小8文字）
	if len(in.Password) < 8 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid name")
	}

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing != nil {
		return model.User{}, NewHTTPError(http.StatusConflict, "email already exists")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user := model.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Address:      strings.TrimSpace(in.Address),
		Phone:        strings.TrimSpace(in.Phone),
		IsActive:     true,
	}

	if err := u.userRepo.Create(ctx, &user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return user, nil
}

// ログイン。成功でアクセストークンを返す。
// 存在しないemailとパスワード不一致は同じ応答にする（ユーザー列挙を防ぐ）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "invalid credentials")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if !u.verifier.Verify(user.PasswordHash, in.Password) {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, time.Now())
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	return LoginOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        *user,
	}, nil
}

// 簡易メール形式をチェック
func isValidEmailFormat(s string) bool {
	if s == "" {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}
