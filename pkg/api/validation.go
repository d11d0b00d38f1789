package api

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field limits, matching the persisted schema.
const (
	MaxEmailLength     = 512
	MaxNameLength      = 64
	MaxPasswordLength  = 70
	MaxPersonNameLen   = 254
	MaxURLLength       = 1024
	MinGiftNameLength  = 4
	MaxGiftNameLength  = 64
	MinGiftPrice       = 100
	DefaultGiftPrice   = 1000
	MaxStoreNameLength = 254
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserParams carries the decodable fields of a user create or patch request.
// Nil pointers mean "not provided", which patch handlers treat as "leave
// unchanged".
type UserParams struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Normalize trims whitespace and lowercases the email, mirroring the
// case-normalization applied before the uniqueness check.
func (p *UserParams) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(p.Email)
	trim(p.Password)
	trim(p.FirstName)
	trim(p.LastName)
	if p.Email != nil {
		*p.Email = strings.ToLower(*p.Email)
	}
}

// Empty reports whether no field is provided at all.
func (p *UserParams) Empty() bool {
	return p.Email == nil && p.Password == nil && p.FirstName == nil && p.LastName == nil
}

// ValidateNewUser checks a registration payload. All fields are required.
func ValidateNewUser(p *UserParams) *APIError {
	if p.Email == nil || *p.Email == "" {
		return NewValidationError("email is required")
	}
	if p.Password == nil || *p.Password == "" {
		return NewValidationError("password is required")
	}
	if p.FirstName == nil || *p.FirstName == "" {
		return NewValidationError("firstName is required")
	}
	if p.LastName == nil || *p.LastName == "" {
		return NewValidationError("lastName is required")
	}
	return ValidateUserPatch(p)
}

// ValidateUserPatch checks only the provided fields of a partial update.
func ValidateUserPatch(p *UserParams) *APIError {
	if p.Email != nil {
		if len(*p.Email) > MaxEmailLength {
			return NewValidationError(fmt.Sprintf("email exceeds %d characters", MaxEmailLength))
		}
		if !emailPattern.MatchString(*p.Email) {
			return NewValidationError(fmt.Sprintf("%s is not a valid email address.", *p.Email))
		}
	}
	if p.Password != nil && len(*p.Password) > MaxPasswordLength {
		return NewValidationError(fmt.Sprintf("password exceeds %d characters", MaxPasswordLength))
	}
	if p.FirstName != nil && len(*p.FirstName) > MaxNameLength {
		return NewValidationError(fmt.Sprintf("firstName exceeds %d characters", MaxNameLength))
	}
	if p.LastName != nil && len(*p.LastName) > MaxNameLength {
		return NewValidationError(fmt.Sprintf("lastName exceeds %d characters", MaxNameLength))
	}
	return nil
}

// StoreParams carries the decodable fields of a gift's store descriptor.
type StoreParams struct {
	Name       *string `json:"name"`
	ProductURL *string `json:"productURL"`
}

// GiftParams carries the decodable fields of a gift create or patch request.
type GiftParams struct {
	Name     *string      `json:"name"`
	Price    *int         `json:"price"`
	ImageUrl *string      `json:"imageUrl"`
	Store    *StoreParams `json:"store"`
}

// ValidateNewGift checks a gift append payload. Name is required; price
// defaults to DefaultGiftPrice when omitted.
func ValidateNewGift(p *GiftParams) *APIError {
	if p.Name == nil || *p.Name == "" {
		return NewValidationError("gift name is required")
	}
	return ValidateGiftPatch(p)
}

// ValidateGiftPatch checks only the provided fields of a gift update.
func ValidateGiftPatch(p *GiftParams) *APIError {
	if p.Name != nil {
		if len(*p.Name) < MinGiftNameLength || len(*p.Name) > MaxGiftNameLength {
			return NewValidationError(fmt.Sprintf("gift name must be between %d and %d characters",
				MinGiftNameLength, MaxGiftNameLength))
		}
	}
	if p.Price != nil && *p.Price < MinGiftPrice {
		return NewValidationError(fmt.Sprintf("price must be at least %d", MinGiftPrice))
	}
	if p.ImageUrl != nil && len(*p.ImageUrl) > MaxURLLength {
		return NewValidationError(fmt.Sprintf("imageUrl exceeds %d characters", MaxURLLength))
	}
	if p.Store != nil {
		if p.Store.Name != nil && len(*p.Store.Name) > MaxStoreNameLength {
			return NewValidationError(fmt.Sprintf("store name exceeds %d characters", MaxStoreNameLength))
		}
		if p.Store.ProductURL != nil && len(*p.Store.ProductURL) > MaxURLLength {
			return NewValidationError(fmt.Sprintf("store productURL exceeds %d characters", MaxURLLength))
		}
	}
	return nil
}

// PersonParams carries the decodable fields of a person create, replace, or
// patch request. Owner is never client-settable; it is assigned from the
// authenticated caller on creation.
type PersonParams struct {
	Name       *string      `json:"name"`
	BirthDate  *time.Time   `json:"birthDate"`
	SharedWith *[]string    `json:"sharedWith"`
	Gifts      *[]GiftParams `json:"gifts"`
	ImageURL   *string      `json:"imageURL"`
}

// Empty reports whether no field is provided at all.
func (p *PersonParams) Empty() bool {
	return p.Name == nil && p.BirthDate == nil && p.SharedWith == nil &&
		p.Gifts == nil && p.ImageURL == nil
}

// ValidateNewPerson checks a person create (or full-replace) payload.
func ValidateNewPerson(p *PersonParams) *APIError {
	if p.Name == nil || *p.Name == "" {
		return NewValidationError("name is required")
	}
	if p.BirthDate == nil {
		return NewValidationError("birthDate is required")
	}
	return ValidatePersonPatch(p)
}

// ValidatePersonPatch checks only the provided fields of a partial update.
func ValidatePersonPatch(p *PersonParams) *APIError {
	if p.Name != nil && len(*p.Name) > MaxPersonNameLen {
		return NewValidationError(fmt.Sprintf("name exceeds %d characters", MaxPersonNameLen))
	}
	if p.ImageURL != nil && len(*p.ImageURL) > MaxURLLength {
		return NewValidationError(fmt.Sprintf("imageURL exceeds %d characters", MaxURLLength))
	}
	if p.SharedWith != nil {
		for _, id := range *p.SharedWith {
			if !ValidateID(id) {
				return NewValidationError(fmt.Sprintf("sharedWith contains an invalid user id: %s", id))
			}
		}
	}
	if p.Gifts != nil {
		for i := range *p.Gifts {
			if err := ValidateNewGift(&(*p.Gifts)[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
