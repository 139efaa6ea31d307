package core

import (
	"errors"

	"gorm.io/gorm" // GORM ORM library

	"wish_registry/internal/domain" // Importing domain models
)

// Wishlists groups wishes under named, owned collections. Membership is by
// reference only: a wish can sit in any number of wishlists, and deleting a
// wishlist never touches the wishes themselves.
type Wishlists struct {
	db *gorm.DB // Database handle
}

// NewWishlists creates a Wishlists aggregator over the given database handle.
func NewWishlists(db *gorm.DB) *Wishlists {
	return &Wishlists{db: db}
}

// WishlistPatch carries the mutable wishlist fields for an update. Nil
// fields are left untouched. A non-nil ItemIDs replaces the whole
// membership set.
type WishlistPatch struct {
	Name        *string // New wishlist name
	Image       *string // New cover image URL
	Description *string // New description
	ItemIDs     *[]uint // Full replacement of the member wishes
}

// resolveItems maps wish ids to their records. Ids that do not resolve to
// an existing wish are dropped without error; membership is whatever subset
// actually exists. Deliberate policy, carried over from the original
// behavior of this service.
func (w *Wishlists) resolveItems(itemIDs []uint) ([]domain.Wish, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var wishes []domain.Wish
	if err := w.db.Where("id IN ?", itemIDs).Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

// Create persists a new wishlist for ownerID with the resolvable subset of
// itemIDs as members.
func (w *Wishlists) Create(ownerID uint, name, image, description string, itemIDs []uint) (*domain.Wishlist, error) {
	var owner domain.User
	if err := w.db.First(&owner, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	items, err := w.resolveItems(itemIDs)
	if err != nil {
		return nil, err
	}
	wishlist := domain.Wishlist{
		Name:        name,        // Wishlist name
		Image:       image,       // Cover image
		Description: description, // Description
		OwnerID:     owner.ID,    // Owning user
		Items:       items,       // Resolved members
	}
	if err := w.db.Create(&wishlist).Error; err != nil {
		return nil, err
	}
	wishlist.Owner = owner
	return &wishlist, nil
}

// GetAll returns every wishlist with items and owner populated.
func (w *Wishlists) GetAll() ([]domain.Wishlist, error) {
	var wishlists []domain.Wishlist
	if err := w.db.Preload("Items").Preload("Owner").Find(&wishlists).Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}

// GetByID fetches a single wishlist with items and owner populated.
func (w *Wishlists) GetByID(id uint) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	err := w.db.Preload("Items").Preload("Owner").First(&wishlist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wishlist, nil
}

// Update applies a patch to the wishlist with the given id. Fails with
// ErrNotFound if it is missing and ErrOwnershipViolation if ownerID is not
// its owner. A non-nil ItemIDs replaces the membership set wholesale,
// resolved the same way as on create.
func (w *Wishlists) Update(id, ownerID uint, patch WishlistPatch) (*domain.Wishlist, error) {
	wishlist, err := w.GetByID(id)
	if err != nil {
		return nil, err
	}
	// Only the owner may change a wishlist, and unlike remove this is
	// reported distinctly from a missing id
	if wishlist.OwnerID != ownerID {
		return nil, ErrOwnershipViolation
	}
	if patch.Name != nil {
		wishlist.Name = *patch.Name
	}
	if patch.Image != nil {
		wishlist.Image = *patch.Image
	}
	if patch.Description != nil {
		wishlist.Description = *patch.Description
	}
	err = w.db.Transaction(func(tx *gorm.DB) error {
		if patch.ItemIDs != nil {
			items, err := w.resolveItems(*patch.ItemIDs)
			if err != nil {
				return err
			}
			// Full membership replacement
			if err := tx.Model(wishlist).Association("Items").Replace(items); err != nil {
				return err
			}
			wishlist.Items = items
		}
		return tx.Omit("Items", "Owner").Save(wishlist).Error
	})
	if err != nil {
		return nil, err
	}
	return wishlist, nil
}

// Remove deletes the wishlist with the given id, scoped to its owner. An
// ownership mismatch is indistinguishable from a missing id: both fail
// with ErrNotFound and leave the store unchanged.
func (w *Wishlists) Remove(id, ownerID uint) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	err := w.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&wishlist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	err = w.db.Transaction(func(tx *gorm.DB) error {
		// Drop the join rows first, the wishes themselves stay
		if err := tx.Model(&wishlist).Association("Items").Clear(); err != nil {
			return err
		}
		return tx.Delete(&wishlist).Error
	})
	if err != nil {
		return nil, err
	}
	return &wishlist, nil
}
