package geocode

import "strings"

// nominatimAddress is the address-details block of a jsonv2 result.
// Only the fields used for condensing are mapped.
type nominatimAddress struct {
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Pedestrian    string `json:"pedestrian"`
	Footway       string `json:"footway"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	CityDistrict  string `json:"city_district"`
	Borough       string `json:"borough"`
	Quarter       string `json:"quarter"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	County        string `json:"county"`
	State         string `json:"state"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
}

// isZero reports whether no address details were present at all.
func (a nominatimAddress) isZero() bool {
	return a == nominatimAddress{}
}

// condense reduces full address details to a short "vicinity, country" label.
// Singapore addresses get the street-level form "12 Orchard Road, Singapore"
// because a city-state's vicinity fields are rarely meaningful on their own.
// With no address details at all, the provider display name (or "Unknown
// location") is used verbatim.
func (a nominatimAddress) condense(fallback string) string {
	if a.isZero() {
		if fallback != "" {
			return fallback
		}
		return "Unknown location"
	}

	country := a.Country
	if country == "" {
		country = "Unknown country"
	}

	if a.isSingapore() {
		road := firstNonEmpty(a.Road, a.Pedestrian, a.Footway)
		street := strings.TrimSpace(strings.Join(nonEmpty(a.HouseNumber, road), " "))
		if street != "" {
			return street + ", Singapore"
		}
	}

	vicinity := firstNonEmpty(
		a.Neighbourhood, a.Suburb, a.CityDistrict, a.Borough, a.Quarter,
		a.City, a.Town, a.Village, a.County, a.State,
	)
	if vicinity != "" {
		return vicinity + ", " + country
	}
	return country
}

func (a nominatimAddress) isSingapore() bool {
	return strings.EqualFold(a.CountryCode, "sg") ||
		strings.Contains(strings.ToLower(a.Country), "singapore")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
