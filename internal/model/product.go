package model

// Product is a catalog item. CategoryID references a Category.
type Product struct {
	ID         int    `json:"id"         yaml:"id"         gorm:"primaryKey;autoIncrement:false"`
	Name       string `json:"name"       yaml:"name"       gorm:"not null"`
	CategoryID int    `json:"categoryId" yaml:"categoryId" gorm:"column:category_id;not null"`
}

func (p *Product) TableName() string {
	return "products"
}

// EnrichedProduct is a Product with its category and owner resolved.
//
// Category is nil when CategoryID matches no category. User is nil when the
// category is nil or its OwnerID matches no user. Enriched products are built
// once at startup and shared read-only between sessions.
//
// Product is embedded so the JSON form is flat:
//
//	{"id":2,"name":"Bread","categoryId":1,"category":{...},"user":{...}}
type EnrichedProduct struct {
	Product
	Category *Category `json:"category"`
	User     *User     `json:"user"`
}

// Tables is one complete set of fixture data.
// Slice order is meaningful: the catalog preserves product order.
type Tables struct {
	Users      []User     `json:"users"      yaml:"users"`
	Categories []Category `json:"categories" yaml:"categories"`
	Products   []Product  `json:"products"   yaml:"products"`
}
