package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ShippingAddress is a value object representing a delivery address.
// It is immutable - all fields are set at construction time.
type ShippingAddress struct {
	street     string
	city       string
	state      string
	postalCode string
	country    string
}

// NewShippingAddress creates a new ShippingAddress. All fields are required.
func NewShippingAddress(street, city, state, postalCode, country string) (ShippingAddress, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	postalCode = strings.TrimSpace(postalCode)
	country = strings.TrimSpace(country)

	fields := map[string]string{
		"street":      street,
		"city":        city,
		"state":       state,
		"postal code": postalCode,
		"country":     country,
	}
	for name, v := range fields {
		if v == "" {
			return ShippingAddress{}, fmt.Errorf("%s cannot be empty", name)
		}
	}
	if len(street) > 500 {
		return ShippingAddress{}, fmt.Errorf("street cannot exceed 500 characters")
	}
	for name, v := range map[string]string{"city": city, "state": state, "country": country} {
		if len(v) > 100 {
			return ShippingAddress{}, fmt.Errorf("%s cannot exceed 100 characters", name)
		}
	}
	if len(postalCode) > 20 {
		return ShippingAddress{}, fmt.Errorf("postal code cannot exceed 20 characters")
	}

	return ShippingAddress{
		street:     street,
		city:       city,
		state:      state,
		postalCode: postalCode,
		country:    country,
	}, nil
}

// MustNewShippingAddress creates a new ShippingAddress, panics on error
func MustNewShippingAddress(street, city, state, postalCode, country string) ShippingAddress {
	addr, err := NewShippingAddress(street, city, state, postalCode, country)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyShippingAddress returns a zero-value address
func EmptyShippingAddress() ShippingAddress {
	return ShippingAddress{}
}

// Street returns the street line
func (a ShippingAddress) Street() string {
	return a.street
}

// City returns the city
func (a ShippingAddress) City() string {
	return a.city
}

// State returns the state or region
func (a ShippingAddress) State() string {
	return a.state
}

// PostalCode returns the postal code
func (a ShippingAddress) PostalCode() string {
	return a.postalCode
}

// Country returns the country
func (a ShippingAddress) Country() string {
	return a.country
}

// IsEmpty returns true if all fields are blank
func (a ShippingAddress) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" &&
		a.postalCode == "" && a.country == ""
}

// Equals returns true if both addresses are equal
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

// String returns the single-line formatted address
func (a ShippingAddress) String() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 5)
	for _, p := range []string{a.street, a.city, a.state, a.postalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// shippingAddressJSON is used for JSON marshaling/unmarshaling
type shippingAddressJSON struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(shippingAddressJSON{
		Street:     a.street,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Validation is delegated to the
// NewShippingAddress factory so a decoded address obeys the same rules as a
// constructed one. Empty objects decode to the zero value.
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var v shippingAddressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Street == "" && v.City == "" && v.State == "" && v.PostalCode == "" && v.Country == "" {
		*a = EmptyShippingAddress()
		return nil
	}
	addr, err := NewShippingAddress(v.Street, v.City, v.State, v.PostalCode, v.Country)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer so the address is stored as a JSON column
func (a ShippingAddress) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *ShippingAddress) Scan(value any) error {
	if value == nil {
		*a = EmptyShippingAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyShippingAddress()
		return nil
	}

	return json.Unmarshal(data, a)
}
