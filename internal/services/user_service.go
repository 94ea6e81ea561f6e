package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"studioBack/internal/models"
	"studioBack/internal/repositories"
	"studioBack/utils"
)

const tokenTTL = 20 * time.Hour

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	SigningKey   string
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if req.Email == "" || req.Password == "" {
		return models.User{}, models.ErrInvalidCredentials
	}
	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}
	if existing.Email != "" {
		return models.User{}, models.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleClient,
	}
	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.Tokens, error) {
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		log.Printf("User not found: %s", email)
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Invalid password for user: %s", email)
		return models.Tokens{}, models.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		UserID: uint(user.ID),
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	})
	accessToken, err := token.SignedString([]byte(s.SigningKey))
	if err != nil {
		return models.Tokens{}, err
	}

	return s.createSession(ctx, user, accessToken)
}

func (s *UserService) createSession(ctx context.Context, user models.User, accessToken string) (models.Tokens, error) {
	var (
		res models.Tokens
		err error
	)
	res.AccessToken = accessToken

	res.RefreshToken = uuid.New().String() // fallback if the token manager is unavailable
	if s.TokenManager != nil {
		res.RefreshToken, err = s.TokenManager.NewRefreshToken()
		if err != nil {
			return res, err
		}
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: res.RefreshToken,
		ExpiresAt:    time.Now().Add(30 * 24 * time.Hour),
	}
	if err = s.UserRepo.SetSession(ctx, session); err != nil {
		return res, err
	}
	return res, nil
}

func (s *UserService) SignOut(ctx context.Context, userID int) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.GetUsers(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, id int, role string) error {
	switch role {
	case models.RoleAdmin, models.RoleClient, models.RoleUser:
	default:
		return errors.New("unknown role")
	}
	return s.UserRepo.UpdateRole(ctx, id, role)
}

func (s *UserService) RegisterFCMToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.SetFCMToken(ctx, userID, token)
}
