package domain

import "encoding/json"

// Locator identifies one exact package instance.
// It is comparable and safe to use as a map key.
type Locator struct {
	Name      InternedString
	Reference InternedString
}

// TopLevelLocator is the locator of the project itself when the registry declares no named root.
var TopLevelLocator = Locator{}

// NewLocator creates a Locator from plain strings.
func NewLocator(name, reference string) Locator {
	return Locator{
		Name:      NewInternedString(name),
		Reference: NewInternedString(reference),
	}
}

// IsTopLevel reports whether l is the anonymous top-level locator.
func (l Locator) IsTopLevel() bool {
	return l == TopLevelLocator
}

// String returns the locator in name@reference form.
func (l Locator) String() string {
	if l.IsTopLevel() {
		return "<top-level>"
	}
	return l.Name.String() + "@" + l.Reference.String()
}

// locatorJSON is the wire shape of a Locator.
type locatorJSON struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// MarshalJSON implements json.Marshaler.
func (l Locator) MarshalJSON() ([]byte, error) {
	return json.Marshal(locatorJSON{Name: l.Name.String(), Reference: l.Reference.String()})
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Locator) UnmarshalJSON(data []byte) error {
	var raw locatorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = NewLocator(raw.Name, raw.Reference)
	return nil
}
