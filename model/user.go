package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // argon2id salt$hash, never serialized
	LastLogin *LoginInfo         `bson:"last_login,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// LoginInfo describes the most recent successful login.
type LoginInfo struct {
	At        time.Time `bson:"at" json:"at"`
	Device    string    `bson:"device" json:"device"`
	IPAddress string    `bson:"ip_address" json:"ipAddress"`
}
