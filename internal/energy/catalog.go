package energy

// DefaultCities is the built-in list of supported cities, in display order.
var DefaultCities = []City{
	{ID: "chennai", Name: "Chennai", State: "Tamil Nadu"},
	{ID: "delhi", Name: "Delhi", State: "Delhi"},
	{ID: "mumbai", Name: "Mumbai", State: "Maharashtra"},
	{ID: "bengaluru", Name: "Bengaluru", State: "Karnataka"},
	{ID: "kolkata", Name: "Kolkata", State: "West Bengal"},
}

// Catalog is an immutable, ordered set of cities.
type Catalog struct {
	cities []City
}

// NewCatalog copies cities so later changes by the caller are not observed.
func NewCatalog(cities []City) *Catalog {
	c := make([]City, len(cities))
	copy(c, cities)
	return &Catalog{cities: c}
}

// Cities returns the cities in insertion order.
func (c *Catalog) Cities() []City {
	out := make([]City, len(c.cities))
	copy(out, c.cities)
	return out
}
