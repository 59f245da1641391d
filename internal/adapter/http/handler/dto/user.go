package dto

import (
	"net/url"

	"github.com/Temutjin2k/kart-laptimes/internal/domain/types"
)

// UserForm carries the registration and profile fields. Absent fields are
// empty strings.
type UserForm struct {
	Name       string
	Class      string
	Identifier string
}

func NewUserForm(form url.Values, kind types.IdentifierKind) *UserForm {
	return &UserForm{
		Name:       form.Get("name"),
		Class:      form.Get("class"),
		Identifier: form.Get(kind.FormField()),
	}
}
