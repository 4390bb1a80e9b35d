package model

// Category groups products and is owned by exactly one user.
//
// OwnerID is expected to resolve to an existing User, but nothing enforces it:
// the join stage resolves a dangling OwnerID to a nil owner.
type Category struct {
	ID      int    `json:"id"      yaml:"id"      gorm:"primaryKey;autoIncrement:false"`
	Title   string `json:"title"   yaml:"title"   gorm:"not null"`
	Icon    string `json:"icon"    yaml:"icon"    gorm:"not null"`
	OwnerID int    `json:"ownerId" yaml:"ownerId" gorm:"column:owner_id;not null"`
}

func (c *Category) TableName() string {
	return "categories"
}
