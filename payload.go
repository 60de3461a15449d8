package qrcode

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Kind names the input variant a payload was built from.
type Kind string

const (
	KindURL      Kind = "url"
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindSMS      Kind = "sms"
	KindWiFi     Kind = "wifi"
	KindVCard    Kind = "vcard"
	KindLocation Kind = "location"
)

// Kinds lists every supported input variant.
var Kinds = []Kind{KindURL, KindText, KindEmail, KindPhone, KindSMS, KindWiFi, KindVCard, KindLocation}

// Record is one typed form input. The set of implementations is closed.
type Record interface {
	Kind() Kind

	record()
}

type URL struct {
	Address string
}

type Text struct {
	Content string
}

type Email struct {
	Address string
	Subject string
	Body    string
}

type Phone struct {
	Number string
}

type SMS struct {
	Number  string
	Message string
}

// WiFi security values understood by scanners.
const (
	SecurityWPA    = "WPA"
	SecurityWEP    = "WEP"
	SecurityNoPass = "nopass"
)

// WiFi holds network join credentials. Special characters in SSID and
// password are written as-is; ';', ',', ':' and '\' are not escaped.
type WiFi struct {
	SSID     string
	Password string
	Security string
	Hidden   bool
}

type VCard struct {
	Name  string
	Org   string
	Phone string
	Email string
	URL   string
}

// Location carries externally supplied decimal coordinates.
type Location struct {
	Latitude  string
	Longitude string
}

func (URL) Kind() Kind      { return KindURL }
func (Text) Kind() Kind     { return KindText }
func (Email) Kind() Kind    { return KindEmail }
func (Phone) Kind() Kind    { return KindPhone }
func (SMS) Kind() Kind      { return KindSMS }
func (WiFi) Kind() Kind     { return KindWiFi }
func (VCard) Kind() Kind    { return KindVCard }
func (Location) Kind() Kind { return KindLocation }

func (URL) record()      {}
func (Text) record()     {}
func (Email) record()    {}
func (Phone) record()    {}
func (SMS) record()      {}
func (WiFi) record()     {}
func (VCard) record()    {}
func (Location) record() {}

var schemePattern = regexp.MustCompile(`(?i)^https?://`)

// Build serializes r into the payload string its consumer expects.
func Build(r Record) (string, error) {
	switch v := r.(type) {
	case URL:
		return buildURL(v)
	case Text:
		return buildText(v)
	case Email:
		return buildEmail(v)
	case Phone:
		return buildPhone(v)
	case SMS:
		return buildSMS(v)
	case WiFi:
		return buildWiFi(v)
	case VCard:
		return buildVCard(v)
	case Location:
		return buildLocation(v)
	default:
		return "", fmt.Errorf("unsupported record %T", r)
	}
}

func buildURL(v URL) (string, error) {
	address := strings.TrimSpace(v.Address)
	if address == "" {
		return "", missing(KindURL, "address")
	}

	if !schemePattern.MatchString(address) {
		return "https://" + address, nil
	}

	return address, nil
}

func buildText(v Text) (string, error) {
	content := strings.TrimSpace(v.Content)
	if content == "" {
		return "", missing(KindText, "content")
	}

	return content, nil
}

func buildEmail(v Email) (string, error) {
	address := strings.TrimSpace(v.Address)
	if address == "" {
		return "", missing(KindEmail, "address")
	}

	var params []string

	if subject := strings.TrimSpace(v.Subject); subject != "" {
		params = append(params, "subject="+EncodeURIComponent(subject))
	}

	if body := strings.TrimSpace(v.Body); body != "" {
		params = append(params, "body="+EncodeURIComponent(body))
	}

	payload := "mailto:" + address
	if len(params) > 0 {
		payload += "?" + strings.Join(params, "&")
	}

	return payload, nil
}

func buildPhone(v Phone) (string, error) {
	number := strings.TrimSpace(v.Number)
	if number == "" {
		return "", missing(KindPhone, "number")
	}

	return "tel:" + number, nil
}

func buildSMS(v SMS) (string, error) {
	number := strings.TrimSpace(v.Number)
	if number == "" {
		return "", missing(KindSMS, "number")
	}

	if message := strings.TrimSpace(v.Message); message != "" {
		return "sms:" + number + "?body=" + EncodeURIComponent(message), nil
	}

	return "sms:" + number, nil
}

func buildWiFi(v WiFi) (string, error) {
	ssid := strings.TrimSpace(v.SSID)
	if ssid == "" {
		return "", missing(KindWiFi, "ssid")
	}

	security := strings.TrimSpace(v.Security)
	if security == "" {
		security = SecurityWPA
	}

	var b strings.Builder

	fmt.Fprintf(&b, "WIFI:T:%s;S:%s;", security, ssid)

	if password := strings.TrimSpace(v.Password); password != "" && security != SecurityNoPass {
		fmt.Fprintf(&b, "P:%s;", password)
	}

	fmt.Fprintf(&b, "H:%t;;", v.Hidden)

	return b.String(), nil
}

func buildVCard(v VCard) (string, error) {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return "", missing(KindVCard, "name")
	}

	lines := []string{"BEGIN:VCARD", "VERSION:3.0", "FN:" + name}

	optional := []struct {
		tag   string
		value string
	}{
		{"ORG", v.Org},
		{"TEL", v.Phone},
		{"EMAIL", v.Email},
		{"URL", v.URL},
	}

	for _, o := range optional {
		if value := strings.TrimSpace(o.value); value != "" {
			lines = append(lines, o.tag+":"+value)
		}
	}

	lines = append(lines, "END:VCARD")

	return strings.Join(lines, "\n"), nil
}

func buildLocation(v Location) (string, error) {
	lat := strings.TrimSpace(v.Latitude)
	if lat == "" {
		return "", missing(KindLocation, "latitude")
	}

	lng := strings.TrimSpace(v.Longitude)
	if lng == "" {
		return "", missing(KindLocation, "longitude")
	}

	return "geo:" + lat + "," + lng, nil
}

// EncodeURIComponent escapes s the way browsers do for URI components:
// everything except A-Z a-z 0-9 and -_.!~*'() is percent-encoded as UTF-8.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)

	// QueryEscape differs in three places: '+' for space and escaped !'()*.
	replacer := strings.NewReplacer(
		"+", "%20",
		"%21", "!",
		"%27", "'",
		"%28", "(",
		"%29", ")",
		"%2A", "*",
	)

	return replacer.Replace(escaped)
}
