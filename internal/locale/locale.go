// Package locale holds the user-facing strings of the provider form in
// English (the message keys themselves) and Spanish.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/roach88/providers/internal/form"
	"github.com/roach88/providers/internal/provider"
)

// UI labels. Validation and notification messages are keyed by the strings
// in the provider and form packages.
const (
	Title              = "Provider Management"
	PlaceholderName    = "Provider name"
	PlaceholderContact = "Contact person"
	PlaceholderAddress = "Address"
	PlaceholderPhone   = "Phone"
	PlaceholderEmail   = "Email address"
	ColName            = "Name"
	ColContact         = "Contact"
	ColAddress         = PlaceholderAddress
	ColPhone           = PlaceholderPhone
	ColEmail           = "Email"
	ColActions         = "Actions"
	ButtonAdd          = "Add provider"
	ButtonUpdate       = "Update provider"
	ButtonEdit         = "Edit"
	ButtonDelete       = "Delete"
	ButtonCancel       = "Cancel"
	EmptyTable         = "No providers registered"
)

var spanish = map[string]string{
	Title:              "Gestión de Proveedores",
	PlaceholderName:    "Nombre del proveedor",
	PlaceholderContact: "Persona de contacto",
	PlaceholderAddress: "Dirección",
	PlaceholderPhone:   "Teléfono",
	PlaceholderEmail:   "Correo electrónico",
	ColName:            "Nombre",
	ColContact:         "Contacto",
	ColEmail:           "Email",
	ColActions:         "Acciones",
	ButtonAdd:          "Agregar Proveedor",
	ButtonUpdate:       "Actualizar Proveedor",
	ButtonEdit:         "Editar",
	ButtonDelete:       "Eliminar",
	ButtonCancel:       "Cancelar",
	EmptyTable:         "No hay proveedores registrados",

	provider.MsgNameRequired:    "El nombre es obligatorio",
	provider.MsgContactRequired: "El contacto es obligatorio",
	provider.MsgAddressRequired: "La dirección es obligatoria",
	provider.MsgPhoneNumeric:    "El teléfono debe contener solo números",
	provider.MsgEmailInvalid:    "El email no es válido",

	form.MsgAdded:   "Proveedor agregado correctamente",
	form.MsgUpdated: "Proveedor actualizado correctamente",
	form.MsgDeleted: "Proveedor eliminado",
}

var (
	supported = []language.Tag{language.English, language.Spanish}
	matcher   = language.NewMatcher(supported)
	cat       = build()
)

func build() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range spanish {
		if err := b.SetString(language.Spanish, key, msg); err != nil {
			panic(err)
		}
	}
	for key := range spanish {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	return b
}

// Supported returns the languages with a full catalog.
func Supported() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// Match returns the supported language closest to the given BCP 47 tag or
// Accept-Language value. Unparseable input yields English.
func Match(s string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// Printer returns a printer that translates message keys into tag's language.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(cat))
}

// Text translates a single key. Text outside the catalog, such as a raw
// error message, is returned unchanged.
func Text(p *message.Printer, key string) string {
	if _, ok := spanish[key]; !ok {
		return key
	}
	return p.Sprintf(key)
}
