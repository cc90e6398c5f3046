package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ludvin7x/lemon-api/entity"
	"github.com/Ludvin7x/lemon-api/repository"
	"github.com/Ludvin7x/lemon-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB        *gorm.DB
	Users     *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(db *gorm.DB, users *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Users: users, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a user and places them in the Customer group.
func (s *AuthService) Register(username, email, password, firstName, lastName string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if count, err := s.Users.CountByEmail(email); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if count, err := s.Users.CountByUsername(username); err != nil {
		return nil, err
	} else if count > 0 {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		var group entity.Group
		if err := tx.Where("name = ?", entity.GroupCustomer).First(&group).Error; err != nil {
			// group rows come from the seed command; without them
			// registration still works, just without a role
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Model(user).Association("Groups").Append(&group)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and mints a JWT.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrPermission)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrPermission)
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Profile(userID uint) (*entity.User, error) {
	user, err := s.Users.FindWithGroups(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}
