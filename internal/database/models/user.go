package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `json:"full_name"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Setting      *UserSetting      `gorm:"foreignKey:UserID" json:"settings,omitempty"`
	Subscription *UserSubscription `gorm:"foreignKey:UserID" json:"subscription,omitempty"`
	Projects     []Project         `gorm:"foreignKey:UserID" json:"-"`
	Tasks        []Task            `gorm:"foreignKey:UserID" json:"-"`
	AuthSessions []AuthSession     `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// AuthSession is one login. The token is the opaque lookup key carried as the
// subject of the signed bearer envelope; the row's ExpiredAt is checked at
// validation in addition to the envelope's own expiry claim.
type AuthSession struct {
	Base
	Token     string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiredAt time.Time `gorm:"not null" json:"expired_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}

type UserSetting struct {
	Base
	UserID uuid.UUID `gorm:"type:uuid;index" json:"-"`
}

func (UserSetting) TableName() string {
	return "user_settings"
}

type UserSubscription struct {
	Base
	UserID                        uuid.UUID `gorm:"type:uuid;index" json:"-"`
	ActiveSubscription            bool      `gorm:"default:false" json:"active_subscription"`
	CancelSubscriptionAtPeriodEnd bool      `gorm:"default:false" json:"cancel_subscription_at_period_end"`
}

func (UserSubscription) TableName() string {
	return "user_subscriptions"
}
