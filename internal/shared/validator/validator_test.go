package validator

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Phone     string   `validate:"phone"`
	Type      string   `validate:"membershiptype"`
	Interests []string `validate:"dive,interest"`
	Password  string   `validate:"bcryptlen"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, v.RegisterValidation("phone", ValidatePhone))
	require.NoError(t, v.RegisterValidation("membershiptype", ValidateMembershipType))
	require.NoError(t, v.RegisterValidation("interest", ValidateInterest))
	require.NoError(t, v.RegisterValidation("bcryptlen", ValidateBcryptLength))
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate(t)

	testCases := []struct {
		name  string
		input sample
		valid bool
	}{
		{"uk number", sample{Phone: "+44 20 7946 0958", Type: "Premium"}, true},
		{"no phone", sample{Type: "Basic", Interests: []string{"Art", "Music"}}, true},
		{"letters in phone", sample{Phone: "call me", Type: "Basic"}, false},
		{"unknown type", sample{Type: "Gold"}, false},
		{"lowercase type", sample{Type: "premium"}, false},
		{"unknown interest", sample{Type: "Basic", Interests: []string{"Art", "Knitting"}}, false},
		{"72 byte password", sample{Type: "Basic", Password: strings.Repeat("a", 72)}, true},
		{"36 two-byte runes", sample{Type: "Basic", Password: strings.Repeat("é", 36)}, true},
		{"40 two-byte runes", sample{Type: "Basic", Password: strings.Repeat("é", 40)}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.input)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestToErrorResponse_FirstFieldMessage(t *testing.T) {
	v := newValidate(t)

	err := v.Struct(sample{Type: "Gold"})
	resp, ok := ToErrorResponse(err)

	require.True(t, ok)
	assert.Equal(t, 400, resp.Status)
	assert.Equal(t, "ERROR-001", resp.Code)
	assert.Contains(t, resp.Message, "Membership type")
}
