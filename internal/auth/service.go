package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/member"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/cache"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/repository"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTypeBearer = "Bearer"

type AuthService struct {
	db               *gorm.DB
	memberService    *member.MemberService
	memberRepository *member.MemberRepository
	userRepository   *member.UserRepository
	tokenManager     token.Manager
	tokenStore       cache.TokenStore
	loginLimiter     cache.LoginLimiter
	now              func() time.Time
}

func NewAuthService(
	db *gorm.DB,
	memberService *member.MemberService,
	memberRepository *member.MemberRepository,
	userRepository *member.UserRepository,
	tokenManager token.Manager,
	tokenStore cache.TokenStore,
	loginLimiter cache.LoginLimiter,
) *AuthService {
	return &AuthService{
		db:               db,
		memberService:    memberService,
		memberRepository: memberRepository,
		userRepository:   userRepository,
		tokenManager:     tokenManager,
		tokenStore:       tokenStore,
		loginLimiter:     loginLimiter,
		now:              time.Now,
	}
}

func (a *AuthService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	log := logger.FromContext(ctx)

	var user *model.User
	var created *model.Member
	err := database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		var err error
		user, created, err = a.memberService.CreateAccount(ctx, tx, request.Email, request.Password, request.FirstName, request.LastName)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info("Member registered", "user_id", user.ID, "email", logger.MaskEmail(user.Email))
	return a.issueTokens(identityOf(user, created))
}

// Login checks the attempt limiter before touching credentials, so a throttled email
// gets 429 even with the right password.
func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error) {
	log := logger.FromContext(ctx)
	email := member.NormalizeEmail(request.Email)

	allowed, err := a.loginLimiter.Allow(ctx, email)
	if err != nil {
		log.Warn("Login limiter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		log.Warn("Login throttled", "email", logger.MaskEmail(email))
		return nil, fmt.Errorf("login %s: %w", logger.MaskEmail(email), ErrTooManyAttempts)
	}

	user, err := a.userRepository.FindByEmail(ctx, a.db, email)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Warn("Login failed - unknown email", "email", logger.MaskEmail(email))
			a.recordFailure(ctx, email)
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		log.Warn("Login failed - invalid password", "email", logger.MaskEmail(email))
		a.recordFailure(ctx, email)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	if !user.IsActive {
		log.Warn("Login refused - inactive account", "user_id", user.ID)
		return nil, fmt.Errorf("user id=%d: %w", user.ID, ErrAccountInactive)
	}

	profile, err := a.findMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		if err := a.db.WithContext(ctx).Model(profile).UpdateColumn("last_login", a.now().UTC()).Error; err != nil {
			return nil, fmt.Errorf("update last login: %w", err)
		}
	}

	if err := a.loginLimiter.Reset(ctx, email); err != nil {
		log.Warn("Failed to reset login attempts", "error", err)
	}

	log.Info("Login succeeded", "user_id", user.ID)
	return a.issueTokens(identityOf(user, profile))
}

// RefreshToken accepts expired refresh tokens. Revocation and the current user state decide.
func (a *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := a.validateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("refresh subject: %w", ErrInvalidRefreshToken)
	}

	user, err := a.userRepository.FindByID(ctx, a.db, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			log.Warn("Refresh refused - user no longer exists", "user_id", userID)
			return nil, fmt.Errorf("user id=%d: %w", userID, ErrInvalidRefreshToken)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user id=%d: %w", userID, ErrAccountInactive)
	}

	profile, err := a.findMember(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	identity := identityOf(user, profile)
	access, err := a.tokenManager.GenerateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(a.tokenManager.AccessExpiry().Seconds()),
		User:         toUserInfo(identity),
	}, nil
}

// Logout revokes the refresh token. Refresh ignores expiry, so the revocation outlives exp by a
// full refresh period.
func (a *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := a.validateRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}

	ttl := a.tokenManager.RefreshExpiry()
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(a.now()); remaining > 0 {
			ttl += remaining
		}
	}

	if err := a.tokenStore.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	logger.FromContext(ctx).Info("Refresh token revoked", "subject", claims.Subject)
	return nil
}

func (a *AuthService) validateRefresh(ctx context.Context, refreshToken string) (*token.Claims, error) {
	claims, err := a.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		logger.FromContext(ctx).Warn("Invalid refresh token", "error", err)
		return nil, fmt.Errorf("validate refresh token: %w", ErrInvalidRefreshToken)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("refresh token without id: %w", ErrInvalidRefreshToken)
	}

	revoked, err := a.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("refresh token revoked: %w", ErrInvalidRefreshToken)
	}
	return claims, nil
}

// findMember returns nil when the user has no member profile
func (a *AuthService) findMember(ctx context.Context, userID uint32) (*model.Member, error) {
	profile, err := a.memberRepository.FindByUserID(ctx, a.db, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return profile, nil
}

func (a *AuthService) recordFailure(ctx context.Context, email string) {
	if err := a.loginLimiter.RecordFailure(ctx, email); err != nil {
		logger.FromContext(ctx).Warn("Failed to record login failure", "error", err)
	}
}

func (a *AuthService) issueTokens(identity token.Identity) (*AuthResponse, error) {
	access, err := a.tokenManager.GenerateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := a.tokenManager.GenerateRefreshToken(identity)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(a.tokenManager.AccessExpiry().Seconds()),
		User:         toUserInfo(identity),
	}, nil
}

func identityOf(user *model.User, profile *model.Member) token.Identity {
	id := token.Identity{
		UserID:  user.ID,
		Email:   user.Email,
		Name:    user.FullName(),
		IsAdmin: user.IsAdmin,
	}
	if profile != nil {
		id.MemberID = profile.ID
	}
	return id
}

func toUserInfo(id token.Identity) UserInfo {
	return UserInfo{
		UserID:   id.UserID,
		MemberID: id.MemberID,
		Email:    id.Email,
		Name:     id.Name,
		IsAdmin:  id.IsAdmin,
	}
}
