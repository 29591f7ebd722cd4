package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cdp-clube/cdp-api/internal/user"
)

type AuthRepository interface {
	GetUserByEmail(email string) (*user.User, error)
	GetUserByID(id uint) (*user.User, error)
	GetUserRoles(userID uint) ([]string, error)
	TouchLastActive(userID uint) error
}

type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Preload("MemberProfile").Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	err := r.db.Preload("MemberProfile").First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *authRepository) GetUserRoles(userID uint) ([]string, error) {
	var roles []string
	err := r.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &roles).Error
	return roles, err
}

func (r *authRepository) TouchLastActive(userID uint) error {
	return r.db.Model(&user.User{}).Where("id = ?", userID).
		Update("last_active", time.Now()).Error
}
