package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DeviceType represents the kind of endpoint a token belongs to
type DeviceType string

const (
	DeviceTypeWeb     DeviceType = "web"
	DeviceTypeAndroid DeviceType = "android"
	DeviceTypeIOS     DeviceType = "ios"
)

// Valid reports whether the device type is one of the supported values
func (d DeviceType) Valid() bool {
	switch d {
	case DeviceTypeWeb, DeviceTypeAndroid, DeviceTypeIOS:
		return true
	}
	return false
}

// TokenTTL is how long a registration stays valid without re-registration
const TokenTTL = 90 * 24 * time.Hour

// DeviceInfo is the client-reported metadata a device registers with. Its
// fingerprint distinguishes one physical device/browser installation from
// another for the same user.
type DeviceInfo struct {
	Platform   string `json:"platform"`
	Browser    string `json:"browser,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
	InstallID  string `json:"install_id"`
}

// Fingerprint derives a stable device identifier from the attributes that do
// not change between registrations. Two registrations from the same install
// always produce the same fingerprint, so they reconcile to one token row.
func (i DeviceInfo) Fingerprint() string {
	sum := sha256.Sum256([]byte(i.Platform + "|" + i.AppVersion + "|" + i.InstallID))
	return hex.EncodeToString(sum[:])[:32]
}

// DeviceToken represents one registered push endpoint for a user.
// At most one row exists per (user_id, device_id); re-registering the same
// device updates the row in place.
type DeviceToken struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	UserID     string     `json:"user_id" gorm:"uniqueIndex:idx_user_token;uniqueIndex:idx_user_device;not null"`
	Token      string     `json:"-" gorm:"uniqueIndex:idx_user_token;not null"` // Don't expose token in JSON
	DeviceID   string     `json:"device_id" gorm:"uniqueIndex:idx_user_device;not null"`
	DeviceType DeviceType `json:"device_type" gorm:"default:web"`
	DeviceInfo string     `json:"device_info"` // JSON snapshot of the registering DeviceInfo
	IsActive   bool       `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	LastUsedAt time.Time  `json:"last_used_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}
