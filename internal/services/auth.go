package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/codelearn-backend/internal/data/dbctx"
	"github.com/yungbote/codelearn-backend/internal/data/dberr"
	"github.com/yungbote/codelearn-backend/internal/data/repos"
	types "github.com/yungbote/codelearn-backend/internal/domain"
	"github.com/yungbote/codelearn-backend/internal/platform/apierr"
	"github.com/yungbote/codelearn-backend/internal/platform/ctxutil"
	"github.com/yungbote/codelearn-backend/internal/platform/logger"
)

type JWTClaims struct {
	jwt.RegisteredClaims
}

type RegisterInput struct {
	Email            string   `json:"email"`
	Password         string   `json:"password"`
	Name             string   `json:"name"`
	TargetLanguage   string   `json:"targetLanguage"`
	ExperienceLevel  string   `json:"experienceLevel"`
	KnownLanguages   []string `json:"knownLanguages"`
	DailyGoalMinutes int      `json:"dailyGoalMinutes"`
}

type LoginResult struct {
	User  *types.User `json:"user"`
	Token string      `json:"token"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expiresIn"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	ParseToken(tokenString string) (uuid.UUID, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
	bcryptCost   int
}

func NewAuthService(
	log *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	bcryptCost int,
) AuthService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
		bcryptCost:   bcryptCost,
	}
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "invalid_email", "a valid email is required")
	}
	if len(in.Password) < 6 {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "invalid_password", "password must be at least 6 characters")
	}

	dbc := dbctx.New(ctx)
	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierr.Wrap(apierr.ErrAlreadyExists, "user_exists", "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		ID:               uuid.New(),
		Email:            email,
		Password:         string(hash),
		Name:             strings.TrimSpace(in.Name),
		TargetLanguage:   defaultString(in.TargetLanguage, "ENGLISH"),
		ExperienceLevel:  defaultString(in.ExperienceLevel, "BEGINNER"),
		KnownLanguages:   in.KnownLanguages,
		DailyGoalMinutes: in.DailyGoalMinutes,
	}
	if user.KnownLanguages == nil {
		user.KnownLanguages = []string{}
	}
	if user.DailyGoalMinutes <= 0 {
		user.DailyGoalMinutes = 30
	}
	if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if dberr.IsUniqueViolation(err) {
			return nil, apierr.Wrap(apierr.ErrAlreadyExists, "user_exists", "User already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	as.log.Info("user registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apierr.Wrap(apierr.ErrInvalidArgument, "missing_credentials", "email and password are required")
	}
	users, err := as.userRepo.GetByEmails(dbctx.New(ctx), []string{email})
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.Wrap(apierr.ErrUnauthorized, "invalid_credentials", "Invalid credentials")
	}
	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.Wrap(apierr.ErrUnauthorized, "invalid_credentials", "Invalid credentials")
	}
	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &LoginResult{User: user, Token: token, ExpiresIn: int64(as.GetAccessTTL().Seconds())}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) ParseToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, apierr.Wrap(apierr.ErrUnauthorized, "missing_token", "missing token")
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, apierr.New(http.StatusUnauthorized, "invalid_token", fmt.Errorf("parse token: %w", errors.Join(err, apierr.ErrUnauthorized)))
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, apierr.Wrap(apierr.ErrUnauthorized, "invalid_token", "invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apierr.Wrap(apierr.ErrUnauthorized, "invalid_token", "invalid user id in token")
	}
	return userID, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	userID, err := as.ParseToken(tokenString)
	if err != nil {
		return ctx, err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:      userID,
		TokenString: tokenString,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}

func defaultString(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
