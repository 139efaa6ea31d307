package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wish_registry/internal/core"
	"wish_registry/internal/domain"
	"wish_registry/internal/middleware"
	"wish_registry/internal/utils"
)

const testSecret = "handler-test-secret"

// testEnv wires the full route table over an in-memory database. The Redis
// client points nowhere: cache reads miss and invalidations fail silently,
// which is exactly the degraded mode the handlers tolerate.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	users  *core.Users
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Wish{}, &domain.Offer{}, &domain.Wishlist{}))

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}) // Unreachable on purpose

	users := core.NewUsers(db)
	ledger := core.NewLedger(db)
	offers := core.NewOffers(db, ledger)
	cloner := core.NewCloner(db)
	wishlists := core.NewWishlists(db)

	r := gin.New()
	r.POST("/signup", SignupHandler(users))
	r.POST("/signin", SigninHandler(users, testSecret))
	r.GET("/wishes/last", LastWishesHandler(ledger, rdb))
	r.GET("/wishes/top", TopWishesHandler(ledger, rdb))

	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(testSecret), func(c *gin.Context) {
		c.Set("redisClient", rdb)
		c.Next()
	})
	authed.GET("/users/me", GetMeHandler(users))
	authed.PATCH("/users/me", UpdateMeHandler(users))
	authed.POST("/wishes", CreateWishHandler(ledger))
	authed.GET("/wishes/:id", GetWishHandler(ledger))
	authed.PATCH("/wishes/:id", UpdateWishHandler(ledger))
	authed.DELETE("/wishes/:id", DeleteWishHandler(ledger))
	authed.POST("/wishes/:id/copy", CopyWishHandler(cloner))
	authed.POST("/offers", CreateOfferHandler(offers))
	authed.GET("/offers", ListOffersHandler(offers))
	authed.POST("/wishlists", CreateWishlistHandler(wishlists))
	authed.DELETE("/wishlists/:id", DeleteWishlistHandler(wishlists))

	return &testEnv{router: r, db: db, users: users}
}

// signup registers a user through the store and returns their bearer token.
func (e *testEnv) signup(t *testing.T, username string) (uint, string) {
	t.Helper()
	user, err := e.users.Create(username, username+"@example.com", "password123", "", "")
	require.NoError(t, err)
	token, err := utils.GenerateJWT(user.ID, testSecret)
	require.NoError(t, err)
	return user.ID, token
}

// do performs a JSON request with an optional bearer token.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestFundingFlow(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.signup(t, "owner")
	_, backerToken := env.signup(t, "backer")

	// Owner publishes a wish
	w := env.do(t, http.MethodPost, "/wishes", ownerToken, gin.H{"name": "bicycle", "price": 1000})
	require.Equal(t, http.StatusCreated, w.Code)
	var wish domain.Wish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wish))

	wishPath := fmt.Sprintf("/wishes/%d", wish.ID)

	// Backer pledges 600
	w = env.do(t, http.MethodPost, "/offers", backerToken, gin.H{"item_id": wish.ID, "amount": 600})
	require.Equal(t, http.StatusCreated, w.Code)

	// A further 500 would overshoot the 1000 target
	w = env.do(t, http.MethodPost, "/offers", backerToken, gin.H{"item_id": wish.ID, "amount": 500})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Owner pledging toward their own wish is forbidden
	w = env.do(t, http.MethodPost, "/offers", ownerToken, gin.H{"item_id": wish.ID, "amount": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Once funded, edits and deletes are conflicts
	w = env.do(t, http.MethodPatch, wishPath, ownerToken, gin.H{"price": 2000})
	assert.Equal(t, http.StatusConflict, w.Code)
	w = env.do(t, http.MethodDelete, wishPath, ownerToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The wish shows the accumulated funding
	w = env.do(t, http.MethodGet, wishPath, backerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loaded domain.Wish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loaded))
	assert.Equal(t, float64(600), loaded.Raised)
	assert.Len(t, loaded.Offers, 1)
}

func TestCopyFlow(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.signup(t, "owner")
	backerID, backerToken := env.signup(t, "backer")

	w := env.do(t, http.MethodPost, "/wishes", ownerToken, gin.H{"name": "camera", "price": 400})
	require.Equal(t, http.StatusCreated, w.Code)
	var wish domain.Wish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wish))

	w = env.do(t, http.MethodPost, fmt.Sprintf("/wishes/%d/copy", wish.ID), backerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var clone domain.Wish
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clone))
	assert.Equal(t, "camera", clone.Name)
	assert.Equal(t, float64(0), clone.Raised)

	var cloneRow domain.Wish
	require.NoError(t, env.db.First(&cloneRow, clone.ID).Error)
	assert.Equal(t, backerID, cloneRow.OwnerID)
}

func TestWishlistRemoveNotOwner(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.signup(t, "owner")
	_, strangerToken := env.signup(t, "stranger")

	w := env.do(t, http.MethodPost, "/wishlists", ownerToken, gin.H{"name": "birthday"})
	require.Equal(t, http.StatusCreated, w.Code)
	var wishlist domain.Wishlist
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wishlist))

	// Ownership mismatch is indistinguishable from a missing wishlist
	w = env.do(t, http.MethodDelete, fmt.Sprintf("/wishlists/%d", wishlist.ID), strangerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/wishes", "", gin.H{"name": "drone", "price": 100})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/wishes", "bogus-token", gin.H{"name": "drone", "price": 100})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignupAndSignin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/signup", "", gin.H{
		"username": "henry",
		"email":    "henry@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	// The password hash never leaks through the API
	assert.NotContains(t, w.Body.String(), "password")

	// Duplicate signup is a conflict
	w = env.do(t, http.MethodPost, "/signup", "", gin.H{
		"username": "henry",
		"email":    "henry@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Signin returns a token that opens protected routes
	w = env.do(t, http.MethodPost, "/signin", "", gin.H{"username": "henry", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var auth AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.Token)

	w = env.do(t, http.MethodGet, "/users/me", auth.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong password is rejected
	w = env.do(t, http.MethodPost, "/signin", "", gin.H{"username": "henry", "password": "wrongpass11"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileKeyCaseInsensitive(t *testing.T) {
	// Mixed-case lookups and the lowercased invalidation after a profile
	// update must address the same cache entry
	assert.Equal(t, profileKey("alice"), profileKey("Alice"))
	assert.Equal(t, "profile:alice", profileKey("ALICE"))
}

func TestFeedsOpenWithoutAuth(t *testing.T) {
	env := newTestEnv(t)
	_, ownerToken := env.signup(t, "owner")

	w := env.do(t, http.MethodPost, "/wishes", ownerToken, gin.H{"name": "piano", "price": 2000})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/wishes/last", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "piano")

	w = env.do(t, http.MethodGet, "/wishes/top", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
