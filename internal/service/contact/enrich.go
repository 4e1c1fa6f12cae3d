package contact

import (
	"strconv"
	"strings"

	"github.com/smesner/contactsweb/internal/directory"
	"github.com/smesner/contactsweb/internal/domain"
)

// mergeProfile copies directory data onto the contact, filling only
// fields that are still unset. Coordinates arrive as text and are parsed
// with the C locale; a value that does not parse is dropped on its own
// without affecting the rest of the profile.
func mergeProfile(c *domain.Contact, p *directory.Profile) {
	if p == nil {
		return
	}

	setString(&c.Phone, p.Phone)
	setString(&c.Website, p.Website)

	if p.Address != nil {
		setString(&c.AddressStreet, p.Address.Street)
		setString(&c.AddressSuite, p.Address.Suite)
		setString(&c.AddressCity, p.Address.City)
		setString(&c.AddressZipCode, p.Address.Zipcode)
		if p.Address.Geo != nil {
			setCoord(&c.AddressLatitude, p.Address.Geo.Lat)
			setCoord(&c.AddressLongitude, p.Address.Geo.Lng)
		}
	}

	if p.Company != nil {
		setString(&c.CompanyName, p.Company.Name)
		setString(&c.CompanyBs, p.Company.Bs)
		setString(&c.CompanyCatchPhrase, p.Company.CatchPhrase)
	}
}

func setString(dst **string, val string) {
	if *dst != nil {
		return
	}
	if val = strings.TrimSpace(val); val == "" {
		return
	}
	*dst = &val
}

func setCoord(dst **float64, val string) {
	if *dst != nil {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return
	}
	*dst = &f
}
