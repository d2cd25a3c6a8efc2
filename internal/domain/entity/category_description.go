package entity

// CategoryDescription textos localizados de una categoría (uno por idioma).
// StoreID se denormaliza para poder aplicar la unicidad (store, locale, friendly_url)
// sin join.
type CategoryDescription struct {
	CategoryID      string
	StoreID         string
	Locale          string // ej. "es", "en"
	Name            string
	FriendlyURL     string // slug único por (store, locale)
	MetaTitle       string
	MetaKeywords    string
	MetaDescription string
}
