package core

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library

	"wish_registry/internal/domain" // Importing domain models
)

// Users is the identity store: user records, credential hashes and the
// profile queries the rest of the service relies on for ownership checks.
type Users struct {
	db *gorm.DB // Database handle
}

// NewUsers creates a Users store over the given database handle.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// UserPatch carries the mutable profile fields. Nil fields are left
// untouched; a non-nil Password is re-hashed before storage.
type UserPatch struct {
	Username *string // New username
	Email    *string // New email
	About    *string // New profile text
	Avatar   *string // New avatar URL
	Password *string // New plain-text password, hashed here
}

// Create registers a new user with a bcrypt-hashed password. A username or
// email collision fails with ErrDuplicateIdentity. Requires the gorm
// connection to be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey across drivers.
func (u *Users) Create(username, email, password, about, avatar string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := domain.User{
		Username: strings.ToLower(username), // Lowercase to keep uniqueness case-insensitive
		Email:    strings.ToLower(email),    // Same for email
		About:    about,                     // Profile text
		Avatar:   avatar,                    // Avatar URL
		Password: string(hash),              // Hashed password
	}
	if err := u.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &user, nil
}

// FindByID fetches a user by id.
func (u *Users) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := u.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername fetches a user by username.
func (u *Users) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	err := u.db.Where("username = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindWithWishes fetches a user together with the wishes they own.
func (u *Users) FindWithWishes(id uint) (*domain.User, error) {
	var user domain.User
	if err := u.db.Preload("Wishes").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search returns users whose username or email contains the query,
// case-insensitively.
func (u *Users) Search(query string) ([]domain.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var users []domain.User
	err := u.db.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile applies a patch to the user with the given id. A username
// or email collision with another user fails with ErrDuplicateIdentity.
func (u *Users) UpdateProfile(id uint, patch UserPatch) (*domain.User, error) {
	user, err := u.FindByID(id)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil {
		user.Username = strings.ToLower(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.ToLower(*patch.Email)
	}
	if patch.About != nil {
		user.About = *patch.About
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if err := u.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return user, nil
}

// VerifyPassword checks a plain-text password against the stored hash and
// returns the user on success. Bad username and bad password are
// indistinguishable: both fail with ErrNotFound.
func (u *Users) VerifyPassword(username, password string) (*domain.User, error) {
	user, err := u.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// WishesOf returns the wishes owned by the user with the given id.
func (u *Users) WishesOf(id uint) ([]domain.Wish, error) {
	user, err := u.FindWithWishes(id)
	if err != nil {
		return nil, err
	}
	return user.Wishes, nil
}

// WishesOfUsername returns the wishes owned by the named user.
func (u *Users) WishesOfUsername(username string) ([]domain.Wish, error) {
	var user domain.User
	err := u.db.Preload("Wishes").Where("username = ?", strings.ToLower(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user.Wishes, nil
}
