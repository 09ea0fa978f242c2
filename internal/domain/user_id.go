package domain

import (
	"errors"
	"strings"
	"unicode"
)

// UserID is the subject issued by the identity provider. It is opaque to the
// reminder engine; only its shape is checked.
type UserID struct {
	value string
}

const MaxUserIDLength = 255

var ErrInvalidUserID = errors.New("invalid user ID: must be non-empty, at most 255 bytes, without whitespace")

func UserIDFromString(s string) (UserID, error) {
	if s == "" || len(s) > MaxUserIDLength {
		return UserID{}, ErrInvalidUserID
	}

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return UserID{}, ErrInvalidUserID
	}

	return UserID{value: s}, nil
}

func MustUserID(s string) UserID {
	id, err := UserIDFromString(s)
	if err != nil {
		panic(err)
	}

	return id
}

func (u UserID) String() string {
	return u.value
}

func (u UserID) IsZero() bool {
	return u.value == ""
}

func (u UserID) Equals(other UserID) bool {
	return u.value == other.value
}
