package core

import "errors"

// Error kinds returned by the core components. Handlers match these with
// errors.Is and translate them to HTTP statuses.
var (
	// ErrNotFound is returned when a referenced user, wish, offer or
	// wishlist does not exist, or does not match the ownership scope of
	// the lookup.
	ErrNotFound = errors.New("not found")

	// ErrOwnershipViolation is returned when the acting user is not the
	// owner of the entity they are trying to change.
	ErrOwnershipViolation = errors.New("not the owner")

	// ErrSelfFunding is returned when a user pledges toward their own wish.
	ErrSelfFunding = errors.New("cannot fund your own wish")

	// ErrOverfunding is returned when a pledge would push a wish's raised
	// amount above its price.
	ErrOverfunding = errors.New("amount exceeds remaining price")

	// ErrWishLocked is returned when a wish with existing offers is edited
	// or deleted. This is a state conflict, not a validation failure.
	ErrWishLocked = errors.New("wish already has offers")

	// ErrDuplicateIdentity is returned when a new user collides with an
	// existing username or email.
	ErrDuplicateIdentity = errors.New("user already exists")

	// ErrStaleState is returned when the conditional funding update loses
	// to a concurrent pledge: the precheck saw a raised value that was no
	// longer current by the time the update ran. The caller may retry.
	ErrStaleState = errors.New("wish changed concurrently")
)
