package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150" json:"username"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	Email        string    `gorm:"size:254" json:"email"`
	CreatedAt    time.Time `json:"-"`
}

// Token is an opaque bearer credential. A user holds at most one at a time:
// login reuses the existing row, logout and password change delete all rows
// for the user.
type Token struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Key       string    `gorm:"uniqueIndex;size:64" json:"key"`
	UserID    uint      `gorm:"index" json:"-"`
	User      User      `json:"-"`
	CreatedAt time.Time `json:"-"`
}

type App struct {
	ID           uint          `gorm:"primarykey" json:"id"`
	Name         string        `gorm:"size:100" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	UserID       uint          `gorm:"index" json:"-"`
	User         User          `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// Subscription links an App to a Plan, 1:1 with the App. Plan changes update
// this row in place rather than inserting a new one.
type Subscription struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	AppID     uint       `gorm:"uniqueIndex" json:"-"`
	PlanID    uint       `gorm:"index" json:"-"`
	Plan      Plan       `json:"plan"`
	Active    bool       `gorm:"default:true" json:"active"`
	StartDate time.Time  `gorm:"autoCreateTime" json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}
