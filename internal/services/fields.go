package services

import (
	"github.com/chaitali929/coremodeling/internal/models"
)

// Field names a profile attribute as it appears in requests and responses.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldRole        Field = "role"
	FieldIdentity    Field = "identity"
	FieldContact     Field = "contact"
	FieldGender      Field = "gender"
	FieldDOB         Field = "dob"
	FieldCity        Field = "city"
	FieldState       Field = "state"
	FieldCountry     Field = "country"
	FieldLanguage    Field = "language"
	FieldDescription Field = "description"
)

// Column is the accounts column backing the field.
func (f Field) Column() string {
	return string(f)
}

type FieldSet []Field

func (s FieldSet) Has(f Field) bool {
	for _, x := range s {
		if x == f {
			return true
		}
	}
	return false
}

func (s FieldSet) Without(drop ...Field) FieldSet {
	out := make(FieldSet, 0, len(s))
	for _, f := range s {
		if !FieldSet(drop).Has(f) {
			out = append(out, f)
		}
	}
	return out
}

var allFields = FieldSet{
	FieldName, FieldEmail, FieldRole, FieldIdentity, FieldContact, FieldGender,
	FieldDOB, FieldCity, FieldState, FieldCountry, FieldLanguage, FieldDescription,
}

var contactFields = FieldSet{FieldName, FieldEmail, FieldContact}

type rolePair struct {
	viewer models.AccountRole
	target models.AccountRole
}

// fieldVisibility is the read capability table. Pairs that are absent see nothing.
var fieldVisibility = map[rolePair]FieldSet{
	{models.RoleArtist, models.RoleArtist}:       allFields,
	{models.RoleRecruiter, models.RoleRecruiter}: contactFields,
	{models.RoleRecruiter, models.RoleArtist}:    allFields.Without(FieldRole, FieldIdentity),
	{models.RoleAdmin, models.RoleAdmin}:         contactFields,
	{models.RoleAdmin, models.RoleArtist}:        allFields,
	{models.RoleAdmin, models.RoleRecruiter}:     append(FieldSet{FieldRole}, contactFields...),
}

// fieldEditability is the write capability table for an owner editing their own profile.
// Role is never editable through the profile.
var fieldEditability = map[models.AccountRole]FieldSet{
	models.RoleArtist:    allFields.Without(FieldRole),
	models.RoleRecruiter: contactFields,
	models.RoleAdmin:     contactFields,
}

// FieldsVisibleTo returns the fields a viewer with viewerRole may read on an account with accountRole.
func FieldsVisibleTo(viewerRole, accountRole models.AccountRole) FieldSet {
	return fieldVisibility[rolePair{viewerRole, accountRole}]
}

// EditableFields returns the fields an owner with role may change on their own profile.
func EditableFields(role models.AccountRole) FieldSet {
	return fieldEditability[role]
}

func fieldValue(a *models.Account, f Field) string {
	switch f {
	case FieldName:
		return a.Name
	case FieldEmail:
		return a.Email
	case FieldRole:
		return string(a.Role)
	case FieldIdentity:
		return a.Identity
	case FieldContact:
		return a.Contact
	case FieldGender:
		return a.Gender
	case FieldDOB:
		return a.DOB
	case FieldCity:
		return a.City
	case FieldState:
		return a.State
	case FieldCountry:
		return a.Country
	case FieldLanguage:
		return a.Language
	case FieldDescription:
		return a.Description
	}
	return ""
}

// ProjectAccount renders the account as the viewer may see it. Artists also expose status and gallery.
func ProjectAccount(a *models.Account, viewerRole models.AccountRole) map[string]interface{} {
	visible := FieldsVisibleTo(viewerRole, a.Role)
	out := make(map[string]interface{}, len(visible)+5)
	out["id"] = a.ID
	for _, f := range visible {
		out[string(f)] = fieldValue(a, f)
	}
	if a.IsArtist() {
		out["status"] = a.CurrentStatus()
		out["photos"] = nonNilStrings(a.Photos)
		out["videos"] = nonNilStrings(a.Videos)
	}
	if a.ProfilePic != nil {
		out["profilePic"] = *a.ProfilePic
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
