package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateUserHashesPassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	user, err := users.Create("Alice", "Alice@Example.com", "correcthorse", "about me", "")
	require.NoError(t, err)
	// Username and email are stored lowercased
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	// The stored password is a hash of the input, not the input
	assert.NotEqual(t, "correcthorse", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correcthorse")))
}

func TestCreateUserDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	_, err := users.Create("bob", "bob@example.com", "password123", "", "")
	require.NoError(t, err)

	// Same username
	_, err = users.Create("bob", "other@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// Same email
	_, err = users.Create("robert", "bob@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestVerifyPassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	created, err := users.Create("carol", "carol@example.com", "opensesame1", "", "")
	require.NoError(t, err)

	user, err := users.VerifyPassword("carol", "opensesame1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	// Wrong password and unknown user fail identically
	_, err = users.VerifyPassword("carol", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.VerifyPassword("nobody", "opensesame1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	_, err := users.Create("dmitri", "dmitri@example.com", "password123", "", "")
	require.NoError(t, err)
	_, err = users.Create("daria", "daria@mail.example", "password123", "", "")
	require.NoError(t, err)
	_, err = users.Create("edward", "ed@example.com", "password123", "", "")
	require.NoError(t, err)

	// Substring over username, case-insensitive
	found, err := users.Search("DaR")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "daria", found[0].Username)

	// Substring over email matches too
	found, err = users.Search("example.com")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	created, err := users.Create("eve", "eve@example.com", "firstsecret", "", "")
	require.NoError(t, err)

	updated, err := users.UpdateProfile(created.ID, UserPatch{
		About:    strPtr("hello"),
		Password: strPtr("secondsecret"),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.About)
	// Untouched fields survive
	assert.Equal(t, "eve", updated.Username)

	// The new password works, the old one does not
	_, err = users.VerifyPassword("eve", "secondsecret")
	assert.NoError(t, err)
	_, err = users.VerifyPassword("eve", "firstsecret")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)

	_, err := users.Create("frank", "frank@example.com", "password123", "", "")
	require.NoError(t, err)
	created, err := users.Create("grace", "grace@example.com", "password123", "", "")
	require.NoError(t, err)

	_, err = users.UpdateProfile(created.ID, UserPatch{Username: strPtr("frank")})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestWishesOf(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	owner := seedUser(t, db, "owner")
	other := seedUser(t, db, "other")
	seedWish(t, db, owner, "one", 10)
	seedWish(t, db, owner, "two", 20)
	seedWish(t, db, other, "three", 30)

	wishes, err := users.WishesOf(owner.ID)
	require.NoError(t, err)
	assert.Len(t, wishes, 2)

	wishes, err = users.WishesOfUsername("other")
	require.NoError(t, err)
	require.Len(t, wishes, 1)
	assert.Equal(t, "three", wishes[0].Name)

	_, err = users.WishesOfUsername("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindWithWishes(t *testing.T) {
	db := newTestDB(t)
	users := NewUsers(db)
	owner := seedUser(t, db, "owner")
	seedWish(t, db, owner, "kite", 18)

	user, err := users.FindWithWishes(owner.ID)
	require.NoError(t, err)
	require.Len(t, user.Wishes, 1)

	_, err = users.FindWithWishes(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
