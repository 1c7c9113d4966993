package lab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidateUID(t *testing.T) {
	tests := []struct {
		name  string
		uid   string
		valid bool
	}{
		{"empty", "", false},
		{"seven chars", "KRG2028", false},
		{"eight chars", "KRG20281", true},
		{"twelve chars", "KRG202812345", true},
		{"thirteen chars", "KRG2028123456", false},
		{"contains space", "KRG 20281", false},
		{"multibyte counted as characters", "ÄÖÜäöüßé", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUID(tt.uid)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidArgument)
			// same input, same outcome
			assert.Equal(t, err.Error(), ValidateUID(tt.uid).Error())
		})
	}
}

func Test_ValidateAssetID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"LAB-101", true},
		{"LAB-0", true},
		{"LAB-", false},
		{"LAB-12a", false},
		{"lab-101", false},
		{"LAB101", false},
		{"XLAB-101", false},
		{"LAB-101 ", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				err := ValidateAssetID(tt.id)
				if tt.valid {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, ErrInvalidArgument)
				}
			}
		})
	}
}

func Test_ValidateHours(t *testing.T) {
	for h := -1; h <= 8; h++ {
		err := ValidateHours(h)
		if h >= 1 && h <= 6 {
			assert.NoError(t, err, "hours %d", h)
		} else {
			assert.ErrorIs(t, err, ErrInvalidArgument, "hours %d", h)
		}
	}
}

func Test_NewCheckoutRequest_RejectsHoursOutOfRange(t *testing.T) {
	for _, h := range []int{0, 7, -3} {
		_, err := NewCheckoutRequest("KRG20281", "LAB-101", h)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}

	req, err := NewCheckoutRequest("KRG20281", "LAB-101", 6)
	assert.NoError(t, err)
	assert.Equal(t, "KRG20281", req.UID())
	assert.Equal(t, "LAB-101", req.AssetID())
	assert.Equal(t, 6, req.Hours())
}

func Test_KindOf(t *testing.T) {
	assert.Equal(t, KindInvalidArgument, KindOf(ValidateHours(0)))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, "not found", KindNotFound.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
