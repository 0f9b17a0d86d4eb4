package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"depositshield_backend/internal/auth"
	"depositshield_backend/internal/logger"
	"depositshield_backend/internal/models"
	"depositshield_backend/internal/repositories"
	"depositshield_backend/internal/services/dto"
	"depositshield_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const verificationCodeTTL = 24 * time.Hour

var errInvalidVerificationCode = apperrors.NewBadRequestError("Invalid or expired verification code")

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	CurrentUser(db *gorm.DB, userID uint) (*models.User, error)
	VerifyEmail(db *gorm.DB, req *dto.VerifyEmailRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenManager
	notifications NotificationService
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager, notifications NotificationService) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, tokens: tokens, notifications: notifications}
}

// Register creates the account and mails a verification code. A failed
// email does not fail registration.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, fieldError("password", err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	expires := time.Now().Add(verificationCodeTTL)

	user := &models.User{
		Name:                req.Name,
		Email:               req.Email,
		Password:            hash,
		VerificationCode:    &code,
		VerificationExpires: &expires,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err, "auth", "Email is already registered")
		}
		return nil, apperrors.DatabaseError(err, "auth")
	}

	result := s.notifications.SendVerification(ctx, dto.Recipient{Email: user.Email, Name: user.Name}, code)
	if !result.Success {
		logger.CtxWarn(ctx, "verification email not delivered", "user_id", user.ID, "error", result.Error)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Message: "User registered successfully", Token: token, User: user}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err, "auth")
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Message: "Login successful", Token: token, User: user}, nil
}

func (s *AuthServiceImpl) CurrentUser(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.DatabaseError(err, "auth")
	}
	return user, nil
}

// VerifyEmail is idempotent for already verified accounts.
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, req *dto.VerifyEmailRequest) error {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return errInvalidVerificationCode
		}
		return apperrors.DatabaseError(err, "auth")
	}

	if user.IsVerified {
		return nil
	}
	if user.VerificationCode == nil || user.VerificationExpires == nil {
		return errInvalidVerificationCode
	}
	if time.Now().After(*user.VerificationExpires) {
		return errInvalidVerificationCode
	}
	if subtle.ConstantTimeCompare([]byte(*user.VerificationCode), []byte(req.Code)) != 1 {
		return errInvalidVerificationCode
	}

	if err := s.userRepo.MarkVerified(db, user.ID); err != nil {
		return apperrors.DatabaseError(err, "auth")
	}
	return nil
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
