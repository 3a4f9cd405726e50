// Package models - model sản phẩm của cửa hàng bánh.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Danh mục sản phẩm
const (
	CategoryCake   = "cake"
	CategoryPastry = "pastry"
	CategoryBread  = "bread"
	CategoryDrink  = "drink"
	CategoryOther  = "other"
)

// Product đại diện cho một sản phẩm trong catalog.
// EligibleForReward đánh dấu sản phẩm được phép chọn làm quà thưởng tháng.
type Product struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name" index:"text"`
	Slug              string             `json:"slug" bson:"slug" index:"unique,sparse"`
	Description       string             `json:"description,omitempty" bson:"description,omitempty"`
	Category          string             `json:"category" bson:"category" index:"single"`
	Price             int64              `json:"price" bson:"price"` // đơn vị: VND
	ImageURL          string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	EligibleForReward bool               `json:"eligibleForReward" bson:"eligibleForReward" index:"single"`
	Available         bool               `json:"available" bson:"available" default:"true"`
	CreatedAt         int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt         int64              `json:"updatedAt" bson:"updatedAt"`
}
