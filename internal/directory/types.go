package directory

// Profile is a user record in the external directory service. The field
// layout mirrors the service's JSON schema; encoding/json matches the
// names case-insensitively, which is all the contract requires.
//
// Geo coordinates arrive as strings and are parsed downstream; the
// directory is non-authoritative and individual bad values are expected.
type Profile struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Address  *Address `json:"address"`
	Phone    string   `json:"phone"`
	Website  string   `json:"website"`
	Company  *Company `json:"company"`
}

// Address is the nested address block of a directory profile.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     *Geo   `json:"geo"`
}

// Geo holds textual coordinates as the directory returns them.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Company is the nested company block of a directory profile.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	Bs          string `json:"bs"`
}
