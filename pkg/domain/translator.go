package domain

// Translator resolves a string key to display text, falling back when the key is unknown.
type Translator func(key, fallback string) string

// IdentityTranslator returns the fallback unchanged.
func IdentityTranslator(_, fallback string) string {
	return fallback
}

// T calls t, treating a nil Translator as IdentityTranslator.
func (t Translator) T(key, fallback string) string {
	if t == nil {
		return fallback
	}
	return t(key, fallback)
}
