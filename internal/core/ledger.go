package core

import (
	"errors"

	"gorm.io/gorm" // GORM ORM library

	"wish_registry/internal/domain" // Importing domain models
)

// Feed sizes for the public wish listings.
const (
	lastWishesLimit = 40 // Most recent wishes shown on the main feed
	topWishesLimit  = 20 // Most copied wishes shown in the ranking
)

// Ledger owns Wish records and their funding totals. All funding-state
// invariants (raised never exceeds price, no edits once offers exist) are
// enforced here or in the Offers processor on top of it.
type Ledger struct {
	db *gorm.DB // Database handle
}

// NewLedger creates a Ledger over the given database handle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WishPatch carries the mutable wish fields for an edit. Nil fields are
// left untouched; Price may only change while the wish has no offers,
// which Mutate enforces for every field anyway.
type WishPatch struct {
	Name        *string  // New gift name
	Link        *string  // New shop link
	Image       *string  // New image URL
	Description *string  // New description
	Price       *float64 // New funding target
}

// Create persists a new wish for the given owner.
func (l *Ledger) Create(wish *domain.Wish) error {
	if err := l.db.Create(wish).Error; err != nil {
		return err
	}
	return nil
}

// Load fetches a wish by id.
func (l *Ledger) Load(id uint) (*domain.Wish, error) {
	var wish domain.Wish
	if err := l.db.First(&wish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wish, nil
}

// LoadWithOffers fetches a wish by id together with its owner and its
// offers, each offer carrying the pledging user.
func (l *Ledger) LoadWithOffers(id uint) (*domain.Wish, error) {
	var wish domain.Wish
	err := l.db.Preload("Owner").Preload("Offers").Preload("Offers.User").First(&wish, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wish, nil
}

// LoadOwnedBy fetches a wish scoped to its owner. A wish owned by someone
// else is indistinguishable from a missing one.
func (l *Ledger) LoadOwnedBy(id, ownerID uint) (*domain.Wish, error) {
	var wish domain.Wish
	err := l.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&wish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wish, nil
}

// Last returns the most recently created wishes, newest first.
func (l *Ledger) Last() ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := l.db.Order("created_at desc").Limit(lastWishesLimit).Find(&wishes).Error
	if err != nil {
		return nil, err
	}
	return wishes, nil
}

// Top returns the most copied wishes, ranked by the copied counter.
func (l *Ledger) Top() ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := l.db.Order("copied desc").Limit(topWishesLimit).Find(&wishes).Error
	if err != nil {
		return nil, err
	}
	return wishes, nil
}

// ApplyFunding adds amount to the wish's raised total as a single
// conditional update: the row is only touched while raised + amount still
// fits under price. It reports whether the row matched, which is the
// success signal the Offers processor relies on. Runs on the caller's
// transaction handle.
func (l *Ledger) ApplyFunding(tx *gorm.DB, wishID uint, amount float64) (bool, error) {
	res := tx.Model(&domain.Wish{}).
		Where("id = ? AND raised + ? <= price", wishID, amount).
		Update("raised", gorm.Expr("raised + ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Mutate applies a patch to a wish owned by ownerID. Fails with
// ErrWishLocked once any offer exists against the wish: the price and the
// descriptive fields are frozen until all offers are gone, and offers are
// never removed in this design.
func (l *Ledger) Mutate(id, ownerID uint, patch WishPatch) (*domain.Wish, error) {
	var wish domain.Wish
	err := l.db.Preload("Offers").Where("id = ? AND owner_id = ?", id, ownerID).First(&wish).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Funding freezes the wish
	if len(wish.Offers) > 0 {
		return nil, ErrWishLocked
	}
	if patch.Name != nil {
		wish.Name = *patch.Name
	}
	if patch.Link != nil {
		wish.Link = *patch.Link
	}
	if patch.Image != nil {
		wish.Image = *patch.Image
	}
	if patch.Description != nil {
		wish.Description = *patch.Description
	}
	if patch.Price != nil {
		wish.Price = *patch.Price
	}
	if err := l.db.Save(&wish).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// Delete removes a wish owned by ownerID. Fails with ErrWishLocked while
// offers reference it, surfaced to the caller as a conflict rather than a
// validation error.
func (l *Ledger) Delete(id, ownerID uint) (*domain.Wish, error) {
	wish, err := l.LoadOwnedBy(id, ownerID)
	if err != nil {
		return nil, err
	}
	var offers int64
	if err := l.db.Model(&domain.Offer{}).Where("item_id = ?", id).Count(&offers).Error; err != nil {
		return nil, err
	}
	if offers > 0 {
		return nil, ErrWishLocked
	}
	if err := l.db.Delete(wish).Error; err != nil {
		return nil, err
	}
	return wish, nil
}
