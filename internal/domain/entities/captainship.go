package entities

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Captainship assigns one email address to one calendar week. StartedAt is
// the Monday of that week (ISO-8601 commercial date) and is the natural key:
// at most one Captainship exists per distinct StartedAt.
type Captainship struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	StartedAt time.Time `json:"startedAt"`
	CreatedAt time.Time `json:"createdAt"`

	// Filled from the profile directory at render time, never persisted back.
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	URL    string `json:"url,omitempty"`
}

// EmailHash returns the MD5 hex digest of the captain's email, the key the
// profile directory is addressed by.
func (c *Captainship) EmailHash() string {
	return EmailHash(c.Email)
}

// EmailHash returns the MD5 hex digest of an email address.
func EmailHash(email string) string {
	sum := md5.Sum([]byte(email))
	return hex.EncodeToString(sum[:])
}

var weekPattern = regexp.MustCompile(`^\d{1,2}$`)

// ValidWeek reports whether s is a 1-to-2-digit numeral in [1, 52].
func ValidWeek(s string) bool {
	if !weekPattern.MatchString(s) {
		return false
	}
	w, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return w >= 1 && w <= 52
}

// ValidWeekNumber reports whether w is a usable ISO week number.
func ValidWeekNumber(w int) bool {
	return ValidWeek(strconv.Itoa(w))
}
