package models

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used by SetPassword. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

// User represents a registered account
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid"`
	Username     string    `json:"username" gorm:"size:64;not null;uniqueIndex:uq_users_username"`
	Email        string    `json:"email" gorm:"size:120;not null;uniqueIndex:uq_users_email"`
	Phone        string    `json:"phone" gorm:"size:10;not null;uniqueIndex:uq_users_phone"`
	AvatarPath   *string   `json:"avatarPath,omitempty" gorm:"size:256;default:null"`
	PasswordHash string    `json:"-" gorm:"size:256;not null"` // never exposed in JSON
	IsAdmin      bool      `json:"isAdmin" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate assigns the opaque identifier before the row is inserted
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword replaces the stored hash with a salted bcrypt hash of plaintext.
// Passwords of any length are accepted; bcrypt only ever sees their digest.
func (u *User) SetPassword(plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(plaintext), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func (u *User) CheckPassword(plaintext string) bool {
	if u.PasswordHash == "" || plaintext == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), passwordDigest(plaintext)) == nil
}

// passwordDigest keeps bcrypt's input at 44 bytes, below its 72 byte limit
func passwordDigest(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	digest := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(digest, sum[:])
	return digest
}

// Actor returns the acting identity for this user
func (u *User) Actor() Actor {
	return Actor{UserID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}
