package dto

// ProfilePatch carries only the fields present in the request. Nil means keep the stored value.
type ProfilePatch struct {
	Name        *string `form:"name" json:"name" validate:"omitempty,min=2,max=100"`
	Email       *string `form:"email" json:"email" validate:"omitempty,email"`
	// Role and Identity are checked against the owner's editable fields, not here.
	Role        *string `form:"role" json:"role"`
	Identity    *string `form:"identity" json:"identity"`
	Contact     *string `form:"contact" json:"contact" validate:"omitempty,max=30"`
	Gender      *string `form:"gender" json:"gender" validate:"omitempty,is-gender"`
	DOB         *string `form:"dob" json:"dob" validate:"omitempty,datetime=2006-01-02"`
	City        *string `form:"city" json:"city" validate:"omitempty,max=100"`
	State       *string `form:"state" json:"state" validate:"omitempty,max=100"`
	Country     *string `form:"country" json:"country" validate:"omitempty,max=100"`
	Language    *string `form:"language" json:"language" validate:"omitempty,max=100"`
	Description *string `form:"description" json:"description" validate:"omitempty,max=2000"`
}

// Values maps field names to the supplied values.
func (p *ProfilePatch) Values() map[string]string {
	out := make(map[string]string)
	set := func(name string, v *string) {
		if v != nil {
			out[name] = *v
		}
	}
	set("name", p.Name)
	set("email", p.Email)
	set("role", p.Role)
	set("identity", p.Identity)
	set("contact", p.Contact)
	set("gender", p.Gender)
	set("dob", p.DOB)
	set("city", p.City)
	set("state", p.State)
	set("country", p.Country)
	set("language", p.Language)
	set("description", p.Description)
	return out
}
