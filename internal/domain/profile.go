package domain

import "strings"

// UserProfile holds a shopper's shipping and contact details. At most one
// profile exists per shopper; saves replace it wholesale.
type UserProfile struct {
	Name              string `json:"name"`
	FullAddress       string `json:"full_address"`
	Pincode           string `json:"pincode"`
	Mobile            string `json:"mobile"`
	AlternativeNumber string `json:"alternative_number,omitempty"`
	Email             string `json:"email,omitempty"`
}

// IsComplete reports whether all required fields (name, address, pincode,
// mobile) are non-empty after trimming whitespace. Optional fields are
// ignored.
func (p *UserProfile) IsComplete() bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.FullAddress) != "" &&
		strings.TrimSpace(p.Pincode) != "" &&
		strings.TrimSpace(p.Mobile) != ""
}

// ProfilePatch carries a partial profile update. Nil fields are left
// untouched by Apply.
type ProfilePatch struct {
	Name              *string `json:"name,omitempty"`
	FullAddress       *string `json:"full_address,omitempty"`
	Pincode           *string `json:"pincode,omitempty"`
	Mobile            *string `json:"mobile,omitempty"`
	AlternativeNumber *string `json:"alternative_number,omitempty"`
	Email             *string `json:"email,omitempty"`
}

// Apply merges the non-nil patch fields into the profile.
func (p *UserProfile) Apply(patch ProfilePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.FullAddress != nil {
		p.FullAddress = *patch.FullAddress
	}
	if patch.Pincode != nil {
		p.Pincode = *patch.Pincode
	}
	if patch.Mobile != nil {
		p.Mobile = *patch.Mobile
	}
	if patch.AlternativeNumber != nil {
		p.AlternativeNumber = *patch.AlternativeNumber
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
}
