package models

import "time"

// ProductStatus is the optional availability flag of a product.
type ProductStatus string

const (
	ProductActive     ProductStatus = "active"
	ProductInactive   ProductStatus = "inactive"
	ProductOutOfStock ProductStatus = "out_of_stock"
)

// Product belongs to exactly one store.
type Product struct {
	ID          string        `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	StoreID     string        `json:"store_id" gorm:"type:varchar(36);not null;index" bson:"storeId"`
	Name        string        `json:"name" gorm:"type:varchar(255);not null" bson:"name"`
	Description string        `json:"description,omitempty" gorm:"type:text" bson:"description,omitempty"`
	Quantity    int           `json:"quantity" gorm:"not null" bson:"quantity"`
	Price       float64       `json:"price" gorm:"not null" bson:"price"`
	Status      ProductStatus `json:"status" gorm:"type:varchar(20);default:active" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" gorm:"index" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updatedAt"`
}
