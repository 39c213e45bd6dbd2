package airport

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	iataPattern    = regexp.MustCompile(`^[A-Z]{3}$`)
	countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)
)

// ParseIATACode normalizes and validates a 3-letter IATA airport code.
func ParseIATACode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !iataPattern.MatchString(code) {
		return "", fmt.Errorf("invalid IATA code %q: must be exactly 3 uppercase letters", raw)
	}
	return code, nil
}

// Airport is one entry of the airport registry.
type Airport struct {
	ID       string `json:"id"`
	IATACode string `json:"iata_code"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	City     string `json:"city"`
	Active   bool   `json:"active"`
}

func New(id, iataCode, name, country, city string) (*Airport, error) {
	code, err := ParseIATACode(iataCode)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("airport name cannot be empty")
	}

	country = strings.ToUpper(strings.TrimSpace(country))
	if !countryPattern.MatchString(country) {
		return nil, fmt.Errorf("invalid country code %q: must be ISO 3166-1 alpha-2", country)
	}

	city = strings.TrimSpace(city)
	if city == "" {
		return nil, fmt.Errorf("airport city cannot be empty")
	}

	return &Airport{
		ID:       id,
		IATACode: code,
		Name:     name,
		Country:  country,
		City:     city,
		Active:   true,
	}, nil
}

// Activate is a no-op when the airport is already active.
func (a *Airport) Activate() {
	a.Active = true
}

// Deactivate is a no-op when the airport is already inactive.
func (a *Airport) Deactivate() {
	a.Active = false
}
