package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/metrics"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	metrics  *metrics.BusinessMetrics
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, businessMetrics *metrics.BusinessMetrics) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
		metrics:  businessMetrics,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=30,username"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
}

// LoginInput 登录输入，identifier 可以是邮箱或用户名
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// AuthResult 登录/注册结果
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// Register 用户注册，成功后直接签发 token
func (s *UserAuthService) Register(input RegisterInput) (*AuthResult, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(s.cfg.Security.PasswordPolicy, input.Password, input.Username, email); err != nil {
		return nil, err
	}

	exist, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}
	exist, err = s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Status:       constants.UserStatusActive,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, err
	}
	s.storeAuthState(user)
	s.metrics.Signup()
	logger.Infow("user_registered", "user_id", user.ID, "username", user.Username)
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Login 用户登录，支持邮箱或用户名
func (s *UserAuthService) Login(input LoginInput) (*AuthResult, error) {
	input.Identifier = strings.TrimSpace(input.Identifier)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	user, err := s.findByIdentifier(input.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.metrics.Login("invalid")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		s.metrics.Login("invalid")
		return nil, ErrInvalidCredentials
	}
	if strings.ToLower(user.Status) != constants.UserStatusActive {
		s.metrics.Login("disabled")
		return nil, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.storeAuthState(user)
	s.metrics.Login("success")
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// RevokeTokens 使该用户所有已签发的 token 失效
func (s *UserAuthService) RevokeTokens(userID uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	s.storeAuthState(user)
	return nil
}

// GetUserByID 获取用户信息
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// ResolveAuthState 获取鉴权快照，优先读缓存，未命中回源数据库并回填
func (s *UserAuthService) ResolveAuthState(ctx context.Context, userID uint) (*cache.SessionState, error) {
	state, hit, err := cache.LoadSessionState(ctx, userID)
	if err != nil {
		logger.Warnw("auth_state_cache_get_failed", "user_id", userID, "error", err)
	}
	if hit && state != nil {
		return state, nil
	}
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	state = cache.NewSessionState(user)
	if err := cache.SaveSessionState(ctx, state); err != nil {
		logger.Warnw("auth_state_cache_set_failed", "user_id", userID, "error", err)
	}
	return state, nil
}

func (s *UserAuthService) findByIdentifier(identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		email, err := normalizeEmail(identifier)
		if err != nil {
			return nil, nil
		}
		return s.userRepo.GetByEmail(email)
	}
	return s.userRepo.GetByUsername(identifier)
}

func (s *UserAuthService) storeAuthState(user *models.User) {
	if err := cache.SaveSessionState(context.Background(), cache.NewSessionState(user)); err != nil {
		logger.Warnw("auth_state_cache_set_failed", "user_id", user.ID, "error", err)
	}
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}
