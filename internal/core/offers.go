package core

import (
	"errors"

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"wish_registry/internal/domain" // Importing domain models
)

// Offers validates and applies funding pledges against wishes. It is the
// only writer of a wish's raised total and the sole gate keeping raised
// from exceeding price.
type Offers struct {
	db     *gorm.DB // Database handle
	ledger *Ledger  // Wish store, used for the conditional funding update
}

// NewOffers creates an Offers processor over the given database handle.
func NewOffers(db *gorm.DB, ledger *Ledger) *Offers {
	return &Offers{db: db, ledger: ledger}
}

// Create records a pledge of amount by userID toward the wish with wishID.
// It fails with ErrNotFound if the user or wish is missing, ErrSelfFunding
// if the user owns the wish, and ErrOverfunding if the pledge would push
// raised above price. The raised increment and the offer row are written in
// a single transaction: either both land or neither does. If a concurrent
// pledge wins the race between the precheck and the conditional update, the
// call fails with ErrStaleState and leaves no trace.
func (o *Offers) Create(wishID uint, amount float64, hidden bool, userID uint) (*domain.Offer, error) {
	// Load the pledging user with their wishes for the self-funding check
	var user domain.User
	if err := o.db.Preload("Wishes").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	wish, err := o.ledger.Load(wishID)
	if err != nil {
		return nil, err
	}
	// Paying for your own gift is forbidden
	for _, owned := range user.Wishes {
		if owned.ID == wish.ID {
			return nil, ErrSelfFunding
		}
	}
	// Precheck against the raised total we just read
	if wish.Raised+amount > wish.Price {
		return nil, ErrOverfunding
	}
	offer := domain.Offer{
		Amount: amount,  // Pledged amount
		Hidden: hidden,  // Anonymous pledge flag
		UserID: user.ID, // Pledging user
		ItemID: wish.ID, // Target wish
	}
	// Apply the funding and record the offer atomically
	err = o.db.Transaction(func(tx *gorm.DB) error {
		applied, err := o.ledger.ApplyFunding(tx, wish.ID, amount)
		if err != nil {
			return err // Return error to rollback
		}
		// The precheck passed, so a no-op update means a concurrent
		// pledge moved raised underneath us
		if !applied {
			return ErrStaleState
		}
		if err := tx.Create(&offer).Error; err != nil {
			return err // Return error to rollback
		}
		return nil // Commit transaction
	})
	if err != nil {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"wish_id": wish.ID,     // Target wish ID
			"user_id": user.ID,     // Pledging user ID
			"amount":  amount,      // Pledged amount
			"error":   err.Error(), // Error message
		}).Error("Offer failed")
		return nil, err
	}
	// Log successful pledge
	logrus.WithFields(logrus.Fields{
		"offer_id": offer.ID, // Created offer ID
		"wish_id":  wish.ID,  // Target wish ID
		"user_id":  user.ID,  // Pledging user ID
		"amount":   amount,   // Pledged amount
	}).Info("Offer created")
	return &offer, nil
}

// ListAll returns every offer with the pledging user and the target wish
// populated. No pagination or filtering.
func (o *Offers) ListAll() ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := o.db.Preload("User").Preload("Item").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindOne fetches a single offer by id with its user and wish populated.
func (o *Offers) FindOne(id uint) (*domain.Offer, error) {
	var offer domain.Offer
	err := o.db.Preload("User").Preload("Item").First(&offer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}
