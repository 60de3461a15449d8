package qrcode

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: Build(r) == Build(r) for any record.
func TestBuildDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("every kind builds the same payload twice", prop.ForAll(
		func(a, b, c string, hidden bool) bool {
			records := []Record{
				URL{Address: a},
				Text{Content: a},
				Email{Address: a, Subject: b, Body: c},
				Phone{Number: a},
				SMS{Number: a, Message: b},
				WiFi{SSID: a, Password: b, Security: c, Hidden: hidden},
				VCard{Name: a, Org: b, Phone: c, Email: b, URL: c},
				Location{Latitude: a, Longitude: b},
			}

			for _, r := range records {
				p1, err1 := Build(r)
				p2, err2 := Build(r)

				if (err1 == nil) != (err2 == nil) || p1 != p2 {
					return false
				}
			}

			return true
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.Bool(),
	))

	properties.Property("urls always carry an http scheme", prop.ForAll(
		func(address string) bool {
			p, err := Build(URL{Address: address})
			if strings.TrimSpace(address) == "" {
				return err != nil
			}

			lower := strings.ToLower(p)

			return err == nil && (strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://"))
		},
		gen.AnyString(),
	))

	properties.Property("email query parameters never contain raw spaces", prop.ForAll(
		func(subject, body string) bool {
			p, err := Build(Email{Address: "a@b.com", Subject: subject, Body: body})

			return err == nil && !strings.Contains(p, " ")
		},
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
