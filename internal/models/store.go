package models

import "time"

// Location is a store's postal address.
type Location struct {
	Street  string `json:"street" gorm:"type:varchar(255);not null" bson:"street"`
	City    string `json:"city" gorm:"type:varchar(100);not null" bson:"city"`
	State   string `json:"state" gorm:"type:varchar(100);not null" bson:"state"`
	Zip     string `json:"zip" gorm:"type:varchar(10);not null" bson:"zip"`
	Country string `json:"country" gorm:"type:varchar(100);not null" bson:"country"`
}

// Store belongs to exactly one user.
type Store struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	OwnerID   string    `json:"owner_id" gorm:"type:varchar(36);not null;index" bson:"ownerId"`
	Location  Location  `json:"location" gorm:"embedded;embeddedPrefix:location_" bson:"location"`
	Contact   string    `json:"contact" gorm:"type:varchar(10);not null" bson:"contact"`
	Products  []Product `json:"products,omitempty" gorm:"foreignKey:StoreID" bson:"-"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}
