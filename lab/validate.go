package lab

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MinUIDLength = 8
	MaxUIDLength = 12

	MinHours = 1
	MaxHours = 6
)

var assetIDPattern = regexp.MustCompile(`^LAB-[0-9]+$`)

// ValidateUID checks the uid is 8 to 12 characters with no spaces.
func ValidateUID(uid string) error {
	n := utf8.RuneCountInString(uid)
	if uid == "" || n < MinUIDLength || n > MaxUIDLength || strings.Contains(uid, " ") {
		return fmt.Errorf("%w: invalid UID %q", ErrInvalidArgument, uid)
	}
	return nil
}

// ValidateAssetID accepts ids of the form LAB-<digits>.
func ValidateAssetID(assetID string) error {
	if !assetIDPattern.MatchString(assetID) {
		return fmt.Errorf("%w: invalid asset ID %q", ErrInvalidArgument, assetID)
	}
	return nil
}

func ValidateHours(hours int) error {
	if hours < MinHours || hours > MaxHours {
		return fmt.Errorf("%w: invalid hours %d", ErrInvalidArgument, hours)
	}
	return nil
}
