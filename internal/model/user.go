// Package model defines the data structures used throughout the catalog.
//
// The three fixture types (User, Category, Product) are flat records that are
// loaded once at startup and never mutated afterwards. The same structs carry
// json tags for the API, yaml tags for fixture files and gorm tags for the
// Postgres fixture source, so every source produces identical values.
package model

// Sex is a user's sex as recorded in the fixtures: "m" or "f".
// The presentation layer colors owner names by it.
type Sex string

const (
	SexMale   Sex = "m"
	SexFemale Sex = "f"
)

// User is a catalog owner. Categories reference users by ID.
type User struct {
	ID   int    `json:"id"   yaml:"id"   gorm:"primaryKey;autoIncrement:false"`
	Name string `json:"name" yaml:"name" gorm:"not null"`
	Sex  Sex    `json:"sex"  yaml:"sex"  gorm:"type:char(1);not null"`
}

func (u *User) TableName() string {
	return "users"
}
