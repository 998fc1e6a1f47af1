package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type restaurantRequest struct {
	Name   string  `json:"name" validate:"required,max=100"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
	CityID string  `json:"cityId" validate:"required,uuid"`
}

func TestValidator_Valid(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&loginRequest{Username: "alice@example.com", Password: "secret"}))
}

func TestValidator_FieldMessages(t *testing.T) {
	v := New()

	err := v.Validate(&loginRequest{Username: "not-an-email", Password: "123"})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The field 'username' must be a valid email address.", verr.Fields["username"])
	assert.Equal(t, "The field 'password' must be at least 6 characters long.", verr.Fields["password"])
	assert.Contains(t, verr.Error(), "username")
}

func TestValidator_RangeAndUUID(t *testing.T) {
	v := New()

	err := v.Validate(&restaurantRequest{Name: "Diner", Rating: 7, CityID: "nope"})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "The field 'rating' must be less than or equal to 5.", verr.Fields["rating"])
	assert.Equal(t, "The field 'cityId' must be a valid UUID.", verr.Fields["cityId"])
}

func TestValidator_Required(t *testing.T) {
	v := New()

	err := v.Validate(&loginRequest{})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "The field 'username' is required.", verr.Fields["username"])
	assert.Equal(t, "The field 'password' is required.", verr.Fields["password"])
}
