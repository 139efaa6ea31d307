package domain

// Offer Model
type Offer struct {
	ID        uint    `gorm:"primaryKey" json:"id"`                   // Primary key
	Amount    float64 `gorm:"not null" json:"amount"`                 // Pledged amount, always positive
	Hidden    bool    `gorm:"not null;default:false" json:"hidden"`   // Whether the pledge is anonymous
	UserID    uint    `gorm:"index;not null" json:"-"`                // Foreign key to the pledging User
	User      User    `json:"user"`                                   // Pledging user
	ItemID    uint    `gorm:"index;not null" json:"-"`                // Foreign key to the target Wish
	Item      Wish    `gorm:"foreignKey:ItemID" json:"item"`          // Target wish
	CreatedAt int64   `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
