package domain

// User Model
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                   // Primary key
	Username  string     `gorm:"unique;not null" json:"username"`        // Unique username
	Email     string     `gorm:"unique;not null" json:"email"`           // Unique email address
	About     string     `json:"about"`                                  // Short profile text
	Avatar    string     `json:"avatar"`                                 // Avatar image URL
	Password  string     `gorm:"not null" json:"-"`                      // Hashed password, never serialized
	Wishes    []Wish     `gorm:"foreignKey:OwnerID" json:"-"`            // Wishes owned by this user
	Offers    []Offer    `gorm:"foreignKey:UserID" json:"-"`             // Pledges made by this user
	Wishlists []Wishlist `gorm:"foreignKey:OwnerID" json:"-"`            // Wishlists owned by this user
	CreatedAt int64      `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
	UpdatedAt int64      `gorm:"autoUpdateTime:milli" json:"updated_at"` // Timestamp of last update in milliseconds
}
