package model

// Acronym is one catalog entry: the acronym and the definition whose words
// get scrambled into the on-screen puzzle. Immutable once loaded.
type Acronym struct {
	Acronym    string `json:"acronym"`
	Definition string `json:"definition"`
}
