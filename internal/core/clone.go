package core

import (
	"errors"

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library

	"wish_registry/internal/domain" // Importing domain models
)

// Cloner duplicates wishes into a new owner's collection. The clone starts
// with a fresh funding state; the source keeps a popularity counter of how
// often it has been copied.
type Cloner struct {
	db *gorm.DB // Database handle
}

// NewCloner creates a Cloner over the given database handle.
func NewCloner(db *gorm.DB) *Cloner {
	return &Cloner{db: db}
}

// Copy clones the wish with the given id into userID's collection. The new
// wish keeps the descriptive fields (name, link, image, description, price)
// but starts with raised and copied at zero. The source's copied counter is
// incremented in the same transaction that inserts the clone, so the
// ranking counter and the clone move together. Copying your own wish is
// allowed.
func (c *Cloner) Copy(id, userID uint) (*domain.Wish, error) {
	var source domain.Wish
	if err := c.db.First(&source, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var user domain.User
	if err := c.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	clone := domain.Wish{
		Name:        source.Name,        // Same gift name
		Link:        source.Link,        // Same shop link
		Image:       source.Image,       // Same image
		Description: source.Description, // Same description
		Price:       source.Price,       // Same funding target
		Raised:      0,                  // Funding state resets
		Copied:      0,                  // Popularity resets
		OwnerID:     user.ID,            // New owner
	}
	// Bump the source counter and insert the clone atomically
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&source).Update("copied", gorm.Expr("copied + ?", 1)).Error; err != nil {
			return err // Return error to rollback
		}
		if err := tx.Create(&clone).Error; err != nil {
			return err // Return error to rollback
		}
		return nil // Commit transaction
	})
	if err != nil {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"wish_id": id,          // Source wish ID
			"user_id": userID,      // Requesting user ID
			"error":   err.Error(), // Error message
		}).Error("Copy failed")
		return nil, err
	}
	// Log successful copy
	logrus.WithFields(logrus.Fields{
		"wish_id":  id,       // Source wish ID
		"clone_id": clone.ID, // New wish ID
		"user_id":  userID,   // New owner ID
	}).Info("Wish copied")
	return &clone, nil
}
