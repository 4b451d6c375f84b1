package domain

import (
	"errors"
	"time"
)

var ErrDuplicateUser = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrNoSessions = errors.New("no sessions recorded")
var ErrInvalidArgument = errors.New("invalid argument")

// UserStatus is the coarse classification of a user's total activity time.
type UserStatus string

const (
	StatusInactive     UserStatus = "Inactive"
	StatusActive       UserStatus = "Active"
	StatusHighlyActive UserStatus = "Highly active"
)

// Activity-time bands, in minutes. Lower bounds are inclusive.
const (
	activeThreshold       = 60
	highlyActiveThreshold = 120
)

// StatusForMinutes classifies a total activity time into a UserStatus band.
func StatusForMinutes(minutes int64) UserStatus {
	switch {
	case minutes < activeThreshold:
		return StatusInactive
	case minutes < highlyActiveThreshold:
		return StatusActive
	default:
		return StatusHighlyActive
	}
}

// User is a registered account. The id is assigned by the caller at
// registration and never changes; users are never deleted.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is one recorded login/logout interval. Timestamps are naive local
// date-times taken as given by the caller; a session is never mutated or
// removed once recorded.
type Session struct {
	UserID     string    `json:"user_id"`
	LoginTime  time.Time `json:"login_time"`
	LogoutTime time.Time `json:"logout_time"`
}

// Minutes returns the session duration in whole minutes, truncated toward
// zero. A session whose logout precedes its login yields a negative value.
func (s Session) Minutes() int64 {
	return int64(s.LogoutTime.Sub(s.LoginTime) / time.Minute)
}
