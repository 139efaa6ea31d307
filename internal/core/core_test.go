package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wish_registry/internal/domain"
)

// newTestDB opens a throwaway in-memory database, one per test, with the
// same schema the migrator creates against MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Wish{}, &domain.Offer{}, &domain.Wishlist{}))
	return db
}

// seedUser inserts a user with a throwaway password hash.
func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := domain.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$notarealhashnotarealhashnotarealhash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedWish inserts a wish owned by the given user.
func seedWish(t *testing.T, db *gorm.DB, owner *domain.User, name string, price float64) *domain.Wish {
	t.Helper()
	wish := domain.Wish{
		Name:    name,
		Price:   price,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(&wish).Error)
	return &wish
}

// reloadWish fetches the current row for a wish.
func reloadWish(t *testing.T, db *gorm.DB, id uint) *domain.Wish {
	t.Helper()
	var wish domain.Wish
	require.NoError(t, db.First(&wish, id).Error)
	return &wish
}
