package domain

// Wishlist Model
type Wishlist struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                   // Primary key
	Name        string `gorm:"not null" json:"name"`                   // Wishlist name
	Image       string `json:"image"`                                  // Cover image URL
	Description string `json:"description"`                            // Wishlist description
	OwnerID     uint   `gorm:"index;not null" json:"-"`                // Foreign key to the owning User
	Owner       User   `json:"owner"`                                  // Owning user
	Items       []Wish `gorm:"many2many:wishlist_items" json:"items"`  // Member wishes, shared across wishlists
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli" json:"updated_at"` // Timestamp of last update in milliseconds
}
