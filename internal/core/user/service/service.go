package userapp

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/config"
	userEntity "yatube/internal/core/user"
	"yatube/internal/core/validation"
	"yatube/internal/errs"
	userPort "yatube/internal/ports/user"
)

const tokenIssuer = "yatube"

// UserService handles signup, login and token verification.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	tokenTTL       time.Duration
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, tokenTTL time.Duration) *UserService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		tokenTTL:       tokenTTL,
	}
}

// LoginUser checks the credentials and issues a signed token.
func (s *UserService) LoginUser(ctx context.Context, username string, password string) (*userPort.LoginResponse, error) {
	invalid := errs.Invalid(map[string]string{
		"__all__": "Please enter a correct username and password. Note that both fields may be case-sensitive.",
	})

	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFound(err) {
			config.Logger.Warn("login for unknown user", zap.String("username", username))
			return nil, invalid
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		config.Logger.Warn("invalid password", zap.String("username", username))
		return nil, invalid
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		config.Logger.Error("could not sign token", zap.Error(err))
		return nil, err
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
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

// Authenticate resolves the user a token was issued to.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (*userPort.UserDTO, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid token.")
	}

	user, err := s.UserRepository.FindByID(ctx, claims.Subject)
	if err != nil {
		if errs.IsNotFound(err) {
			// the user was deleted after the token was issued
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "Invalid token.")
		}
		return nil, err
	}
	return userPort.NewUserDTO(user), nil
}

// RegisterUser validates the signup form and stores a new user.
func (s *UserService) RegisterUser(ctx context.Context, in userPort.SignupInput) (*userPort.UserDTO, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, errs.Invalid(map[string]string{"password": "Ensure this value has at most 72 bytes."})
	} else if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		if errs.ErrorCode(err) == errs.ECONFLICT {
			return nil, errs.Invalid(map[string]string{"username": errs.ErrorMessage(err)})
		}
		config.Logger.Error("could not create user", zap.String("username", in.Username), zap.Error(err))
		return nil, err
	}

	config.Logger.Info("user registered", zap.String("username", u.Username))
	return userPort.NewUserDTO(u), nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userPort.NewUserDTO(u), nil
}

// DeleteUser removes a user together with their posts, comments and follow edges.
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	if err := s.UserRepository.DeleteByUsername(ctx, username); err != nil {
		return err
	}
	config.Logger.Info("user deleted", zap.String("username", username))
	return nil
}
