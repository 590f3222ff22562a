package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"yatube/internal/config"
	"yatube/internal/core/apperr"
	userEntity "yatube/internal/core/user"
	userPort "yatube/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer = "yatube"
	tokenTTL    = 24 * time.Hour
)

// UserService registers users and issues the session tokens the HTTP layer
// authenticates with.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		now:            time.Now,
	}
}

// LoginUser checks the credentials and returns a signed token.
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		config.Logger.Info("Login for unknown user", zap.String("username", username))
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		config.Logger.Info("Login with invalid password", zap.String("username", username))
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)
	}

	expiresAt := s.now().Add(tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		config.Logger.Error("Error generating JWT", zap.Error(err))
		return nil, errors.New("could not generate token")
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(user *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &jwt.StandardClaims{
		Subject:   user.ID.String(),
		Issuer:    tokenIssuer,
		IssuedAt:  s.now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// ParseToken validates a token issued by LoginUser and returns the user ID it
// was issued for.
func (s *UserService) ParseToken(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.ErrUnauthorized
	}
	if claims.Issuer != tokenIssuer {
		return "", apperr.ErrUnauthorized
	}
	if _, err := uuid.FromString(claims.Subject); err != nil {
		return "", apperr.ErrUnauthorized
	}
	return claims.Subject, nil
}

// RegisterUser creates an account with a bcrypt-hashed password.
func (s *UserService) RegisterUser(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	verr := &apperr.ValidationError{}
	if username == "" {
		verr.Add("username", "This field is required.")
	}
	if password == "" {
		verr.Add("password", "This field is required.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	taken, err := s.UserRepository.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username or email already taken: %w", apperr.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	config.Logger.Info("Registered user", zap.String("userID", u.ID.String()), zap.String("username", u.Username))
	return userPort.ToDTO(u), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	return userPort.ToDTO(u), nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return userPort.ToDTO(u), nil
}
