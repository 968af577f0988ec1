package models

import "time"

// Person is the personal record attached to an account by e-mail. At most
// one person exists per account.
type Person struct {
	ID                int64     `json:"id"`
	UserEmail         string    `json:"user_email"`
	FirstName         string    `json:"first_name" validate:"required"`
	LastName          string    `json:"last_name" validate:"required"`
	TaxID             string    `json:"tax_id" validate:"required"`
	BirthDate         time.Time `json:"birth_date" validate:"required"`
	Nationality       string    `json:"nationality,omitempty"`
	GenderIdentity    string    `json:"gender_identity,omitempty" validate:"omitempty,oneof=woman trans_woman man trans_man undisclosed"`
	Ethnicity         bool      `json:"ethnicity"`
	EthnicityName     string    `json:"ethnicity_name,omitempty" validate:"required_if=Ethnicity true"`
	MaritalStatus     string    `json:"marital_status,omitempty"`
	EducationLevel    string    `json:"education_level,omitempty"`
	Dependents        int       `json:"dependents" validate:"gte=0"`
	Phone             string    `json:"phone" validate:"required"`
	AddressStreet     string    `json:"address_street,omitempty"`
	AddressNumber     string    `json:"address_number,omitempty"`
	AddressPostalCode string    `json:"address_postal_code,omitempty"`
	AddressCity       string    `json:"address_city,omitempty"`
	AddressProvince   string    `json:"address_province,omitempty"`
	AddressCountry    string    `json:"address_country,omitempty"`
}

// TableName returns the name of the database table
// associated with the Person model.
func (p Person) TableName() string {
	return "persons"
}
