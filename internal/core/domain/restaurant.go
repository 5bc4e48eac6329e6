package domain

// Address is a structured location owned by a single restaurant.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
	Country string `json:"country" bson:"country"`
}

// Restaurant is a catalogue entry. The public surface is read-only; entries
// are added through the admin-guarded create route.
type Restaurant struct {
	ID      string  `json:"id" bson:"_id,omitempty"`
	Name    string  `json:"name" bson:"name"`
	Address Address `json:"address" bson:"address"`
}
