package models

import (
	"database/sql/driver"
	"fmt"
)

// Gender is the closed set of gender labels stored on a profile
type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

// Genders lists every valid gender in display order
var Genders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

// ParseGender maps a persisted or submitted label to a Gender
func ParseGender(label string) (Gender, error) {
	switch g := Gender(label); g {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return g, nil
	}
	return "", fmt.Errorf("invalid gender %q", label)
}

// Value implements driver.Valuer
func (g Gender) Value() (driver.Value, error) {
	if _, err := ParseGender(string(g)); err != nil {
		return nil, err
	}
	return string(g), nil
}

// Scan implements sql.Scanner
func (g *Gender) Scan(src interface{}) error {
	label, err := scanLabel(src)
	if err != nil {
		return err
	}
	parsed, err := ParseGender(label)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// BloodGroup is one of the eight ABO/Rh combinations
type BloodGroup string

const (
	BloodGroupAPositive  BloodGroup = "A+"
	BloodGroupANegative  BloodGroup = "A-"
	BloodGroupBPositive  BloodGroup = "B+"
	BloodGroupBNegative  BloodGroup = "B-"
	BloodGroupABPositive BloodGroup = "AB+"
	BloodGroupABNegative BloodGroup = "AB-"
	BloodGroupOPositive  BloodGroup = "O+"
	BloodGroupONegative  BloodGroup = "O-"
)

// BloodGroups lists every valid blood group in display order
var BloodGroups = []BloodGroup{
	BloodGroupAPositive, BloodGroupANegative,
	BloodGroupBPositive, BloodGroupBNegative,
	BloodGroupABPositive, BloodGroupABNegative,
	BloodGroupOPositive, BloodGroupONegative,
}

// ParseBloodGroup maps a persisted or submitted label to a BloodGroup
func ParseBloodGroup(label string) (BloodGroup, error) {
	switch b := BloodGroup(label); b {
	case BloodGroupAPositive, BloodGroupANegative,
		BloodGroupBPositive, BloodGroupBNegative,
		BloodGroupABPositive, BloodGroupABNegative,
		BloodGroupOPositive, BloodGroupONegative:
		return b, nil
	}
	return "", fmt.Errorf("invalid blood group %q", label)
}

// Value implements driver.Valuer
func (b BloodGroup) Value() (driver.Value, error) {
	if _, err := ParseBloodGroup(string(b)); err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (b *BloodGroup) Scan(src interface{}) error {
	label, err := scanLabel(src)
	if err != nil {
		return err
	}
	parsed, err := ParseBloodGroup(label)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ApplicationStatus is the review state of a donor application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus maps a persisted or submitted label to an ApplicationStatus
func ParseApplicationStatus(label string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(label); s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("invalid application status %q", label)
}

// Value implements driver.Valuer
func (s ApplicationStatus) Value() (driver.Value, error) {
	if _, err := ParseApplicationStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

// Scan implements sql.Scanner
func (s *ApplicationStatus) Scan(src interface{}) error {
	label, err := scanLabel(src)
	if err != nil {
		return err
	}
	parsed, err := ParseApplicationStatus(label)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func scanLabel(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported enum column type %T", src)
	}
}
