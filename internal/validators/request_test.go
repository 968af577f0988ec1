package validators

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repa/models"
)

func TestRequestValidator_Credentials(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CredentialsRequest{Email: "ana@example.com", Password: "x"}))

	err := v.Validate(ctx, &models.CredentialsRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	var fe *FieldsError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Messages, "email must be a valid email")
	assert.Contains(t, fe.Messages, "password is required")
}

func TestRequestValidator_ProfileUpdate(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ProfileUpdate{}))

	bad := "nope"
	err := v.Validate(ctx, models.ProfileUpdate{Email: &bad})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "email must be a valid email")
}

func TestRequestValidator_RolesRequest(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.RolesRequest{Roles: []string{"admin"}}))
	assert.ErrorIs(t, v.Validate(ctx, models.RolesRequest{}), ErrInvalidRequest)
	assert.ErrorIs(t, v.Validate(ctx, models.RolesRequest{Roles: []string{""}}), ErrInvalidRequest)
}

func TestRequestValidator_Training(t *testing.T) {
	v := NewRequestValidator()

	err := v.Validate(context.Background(), models.Training{CertificateURL: "::bad"})
	require.Error(t, err)

	var fe *FieldsError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Messages, "course_name is required")
	assert.Contains(t, fe.Messages, "certificate_url must be a valid URL")
}

func TestRequestValidator_PersonEthnicity(t *testing.T) {
	v := NewRequestValidator()
	p := validPerson()
	assert.NoError(t, v.Validate(context.Background(), p))

	p.Ethnicity = true
	err := v.Validate(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "ethnicity_name is required")
}

func TestRequestValidator_UnsupportedType(t *testing.T) {
	err := NewRequestValidator().Validate(context.Background(), "string")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func validPerson() models.Person {
	p := models.Person{
		FirstName: "Ana",
		LastName:  "Diaz",
		TaxID:     "20-12345678-9",
		Phone:     "+54 11 5555 5555",
	}
	p.BirthDate = p.BirthDate.AddDate(1990, 0, 0)
	return p
}
