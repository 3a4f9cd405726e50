// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	rewardmodels "la_patisserie/internal/api/rewards/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các role của user trong hệ thống.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User định nghĩa mô hình người dùng.
// Trạng thái thưởng tháng (reward) được embed trực tiếp trong document user,
// mọi thao tác reward là single-document update trên collection users
type User struct {
	ID            primitive.ObjectID       `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string                   `json:"name" bson:"name"`
	Email         string                   `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Phone         string                   `json:"phone,omitempty" bson:"phone,omitempty" index:"unique,sparse"`
	FirebaseUID   string                   `json:"firebaseUid" bson:"firebaseUid" index:"unique"`
	EmailVerified bool                     `json:"emailVerified" bson:"emailVerified"`
	PhoneVerified bool                     `json:"phoneVerified" bson:"phoneVerified"`
	AvatarURL     string                   `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	Role          string                   `json:"role" bson:"role" default:"customer"`
	Reward        rewardmodels.RewardState `json:"reward" bson:"reward"`
	IsBlock       bool                     `json:"-" bson:"isBlock"`
	BlockNote     string                   `json:"-" bson:"blockNote,omitempty"`
	CreatedAt     int64                    `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64                    `json:"updatedAt" bson:"updatedAt"`
}
