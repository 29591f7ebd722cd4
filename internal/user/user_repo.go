package user

import (
	"errors"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetUserByID(id uint) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateUser(user *User) error
	GetUserRoles(userID uint) ([]string, error)

	GetMemberProfileByUserID(userID uint) (*MemberProfile, error)
	UpdateMemberProfile(profile *MemberProfile) error

	// GetFamilyLinkedUserIDs returns the IDs of every user linked to userID,
	// in either direction of the link.
	GetFamilyLinkedUserIDs(userID uint) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	err := r.db.Preload("MemberProfile").First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("MemberProfile").Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateUser(user *User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) GetUserRoles(userID uint) ([]string, error) {
	var roles []string
	err := r.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &roles).Error
	return roles, err
}

func (r *userRepository) GetMemberProfileByUserID(userID uint) (*MemberProfile, error) {
	var profile MemberProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) UpdateMemberProfile(profile *MemberProfile) error {
	return r.db.Save(profile).Error
}

func (r *userRepository) GetFamilyLinkedUserIDs(userID uint) ([]uint, error) {
	var links []UserFamilyLink
	err := r.db.Where("user_id = ? OR linked_user_id = ?", userID, userID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		if l.UserID == userID {
			ids = append(ids, l.LinkedUserID)
		} else {
			ids = append(ids, l.UserID)
		}
	}
	return ids, nil
}
