package service

import (
	"DocVault/model"
	"DocVault/utils"
	"errors"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// UserService manages accounts.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a user service.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser hashes the password and creates a user.
func (s *UserService) CreateUser(ctx context.Context, user *model.User) error {
	hash, err := utils.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.db.WithContext(ctx).Create(user).Error
}

// FindByUsername returns a user by username.
func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("user_name = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckPassword verifies a user's password.
func (s *UserService) CheckPassword(ctx context.Context, username, password string) error {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !utils.CheckPwd(password, user.Password) {
		return errors.New("password error")
	}
	return nil
}

// IsEmailTaken checks whether an email is already registered.
func (s *UserService) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
