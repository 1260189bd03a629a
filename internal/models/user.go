package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrPlaintextPassword is returned when a user is about to be stored with a
// password that is not a bcrypt hash.
var ErrPlaintextPassword = errors.New("refusing to store a password that is not hashed")

// User is a shop owner account.
type User struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Username   string     `json:"username" gorm:"uniqueIndex;type:varchar(100);not null" bson:"username"`
	Email      string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" bson:"email"`
	Password   string     `json:"-" gorm:"type:varchar(255);not null" bson:"password"`
	Name       string     `json:"name,omitempty" gorm:"type:varchar(255)" bson:"name,omitempty"`
	DOB        *time.Time `json:"dob,omitempty" bson:"dob,omitempty"`
	PANCard    string     `json:"PAN_card,omitempty" gorm:"column:pan_card;type:varchar(10)" bson:"panCard,omitempty"`
	AadharCard string     `json:"Aadhar_card,omitempty" gorm:"column:aadhar_card;type:varchar(12)" bson:"aadharCard,omitempty"`
	Phone      string     `json:"phone,omitempty" gorm:"type:varchar(10)" bson:"phone,omitempty"`
	GstID      string     `json:"Gst_id,omitempty" gorm:"column:gst_id;type:varchar(15)" bson:"gstId,omitempty"`
	Stores     []Store    `json:"stores,omitempty" gorm:"foreignKey:OwnerID" bson:"-"`
	CreatedAt  time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updatedAt"`
}

// ProfileUpdate carries the fields of a partial profile update. Nil fields
// are left untouched. PasswordHash must already be hashed.
type ProfileUpdate struct {
	Name         *string
	DOB          *time.Time
	PANCard      *string
	AadharCard   *string
	Phone        *string
	GstID        *string
	PasswordHash *string
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.DOB == nil && p.PANCard == nil && p.AadharCard == nil &&
		p.Phone == nil && p.GstID == nil && p.PasswordHash == nil
}

// IsHashedPassword reports whether s looks like a bcrypt hash.
func IsHashedPassword(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// BeforeCreate rejects plaintext passwords.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if !IsHashedPassword(u.Password) {
		return ErrPlaintextPassword
	}
	return nil
}
