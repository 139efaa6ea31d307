package domain

// Wish Model
type Wish struct {
	ID          uint    `gorm:"primaryKey" json:"id"`                   // Primary key
	Name        string  `gorm:"not null" json:"name"`                   // Gift name
	Link        string  `json:"link"`                                   // Link to the shop page
	Image       string  `json:"image"`                                  // Gift image URL
	Description string  `json:"description"`                            // Gift description
	Price       float64 `gorm:"not null" json:"price"`                  // Funding target, fixed at creation
	Raised      float64 `gorm:"not null;default:0" json:"raised"`       // Sum of pledged amounts, never exceeds Price
	Copied      uint    `gorm:"not null;default:0" json:"copied"`       // How many times this wish has been cloned
	OwnerID     uint    `gorm:"index;not null" json:"-"`                // Foreign key to the owning User
	Owner       User    `json:"owner"`                                  // Owning user
	Offers      []Offer `gorm:"foreignKey:ItemID" json:"offers"`        // Pledges made toward this wish
	CreatedAt   int64   `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
	UpdatedAt   int64   `gorm:"autoUpdateTime:milli" json:"updated_at"` // Timestamp of last update in milliseconds
}
