package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	qrcode "github.com/RashadAnsari/go-qrstudio"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a QR code for one kind of input",
}

// recordBuilder reads a record from the flags of its subcommand.
type recordBuilder func(cmd *cobra.Command, s *qrcode.Session) (qrcode.Record, error)

func addKind(kind qrcode.Kind, short string, flags func(*cobra.Command), build recordBuilder) {
	c := &cobra.Command{
		Use:   string(kind),
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return generate(cmd, kind, build)
		},
	}

	flags(c)
	addOutputFlags(c)
	generateCmd.AddCommand(c)
}

func addOutputFlags(c *cobra.Command) {
	f := c.Flags()

	f.Int("size", 256, "image side in pixels")
	f.String("level", "M", "error correction level: L, M, Q or H")
	f.String("fg", "#000000", "foreground color")
	f.String("bg", "#ffffff", "background color")
	f.String("style", "rounded", "module style: "+joinNames(qrcode.Styles))
	f.String("frame", "none", "frame: "+joinNames(qrcode.Frames))
	f.String("pitch", "aligned", "cell layout: aligned or fixed")
	f.String("encoder", qrcode.DefaultEncoder, "encoder backend: "+strings.Join(qrcode.EncoderNames(), ", "))
	f.String("format", "png", "output format: "+joinNames(qrcode.Formats))
	f.String("out", ".", "output directory, or - for stdout")
	f.Bool("base64", false, "write a base64 data URI instead of raw bytes")
}

func joinNames[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}

	return strings.Join(names, ", ")
}

func generate(cmd *cobra.Command, kind qrcode.Kind, build recordBuilder) error {
	s, err := newSession()
	if err != nil {
		return err
	}

	s.SelectKind(kind)

	r, err := build(cmd, s)
	if err != nil {
		return err
	}

	if _, err := s.Generate(r); err != nil {
		return err
	}

	format, err := qrcode.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	artifact, err := s.Export(format)
	if err != nil {
		return err
	}

	if cfg.OutputDir == "-" {
		_, err = os.Stdout.Write(artifact.Data)
		return err
	}

	path := filepath.Join(cfg.OutputDir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Info("qr code written",
		slog.String("path", path),
		slog.String("kind", string(s.Kind())),
		slog.String("class", s.Result().Framed.Class()),
	)

	fmt.Println(path)

	return nil
}

func str(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

// phone reads a phone number flag and normalizes North American numbers.
func phone(cmd *cobra.Command, name string) string {
	v := str(cmd, name)

	if formatted := qrcode.FormatPhoneNumber(v); formatted != v {
		log.Info("phone number normalized", slog.String("from", v), slog.String("to", formatted))
		return formatted
	}

	return v
}

func init() {
	addKind(qrcode.KindURL, "Website address",
		func(c *cobra.Command) { c.Flags().String("url", "", "address, https:// is added when missing") },
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			return qrcode.URL{Address: str(c, "url")}, nil
		})

	addKind(qrcode.KindText, "Plain text",
		func(c *cobra.Command) { c.Flags().String("text", "", "text to encode") },
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			return qrcode.Text{Content: str(c, "text")}, nil
		})

	addKind(qrcode.KindEmail, "mailto: link",
		func(c *cobra.Command) {
			c.Flags().String("address", "", "recipient")
			c.Flags().String("subject", "", "subject")
			c.Flags().String("body", "", "body")
		},
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			return qrcode.Email{Address: str(c, "address"), Subject: str(c, "subject"), Body: str(c, "body")}, nil
		})

	addKind(qrcode.KindPhone, "tel: link",
		func(c *cobra.Command) { c.Flags().String("number", "", "phone number") },
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			return qrcode.Phone{Number: phone(c, "number")}, nil
		})

	addKind(qrcode.KindSMS, "sms: link",
		func(c *cobra.Command) {
			c.Flags().String("number", "", "phone number")
			c.Flags().String("message", "", "message body")
		},
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			return qrcode.SMS{Number: phone(c, "number"), Message: str(c, "message")}, nil
		})

	addKind(qrcode.KindWiFi, "WiFi join credentials",
		func(c *cobra.Command) {
			c.Flags().String("ssid", "", "network name")
			c.Flags().String("password", "", "network password")
			c.Flags().String("security", qrcode.SecurityWPA, "WPA, WEP or nopass")
			c.Flags().Bool("hidden", false, "network is hidden")
		},
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			hidden, err := c.Flags().GetBool("hidden")
			if err != nil {
				return nil, err
			}

			return qrcode.WiFi{
				SSID:     str(c, "ssid"),
				Password: str(c, "password"),
				Security: str(c, "security"),
				Hidden:   hidden,
			}, nil
		})

	addKind(qrcode.KindVCard, "Contact card",
		func(c *cobra.Command) {
			c.Flags().String("name", "", "full name")
			c.Flags().String("org", "", "organization")
			c.Flags().String("phone", "", "phone number")
			c.Flags().String("email", "", "email address")
			c.Flags().String("url", "", "website")
		},
		func(c *cobra.Command, _ *qrcode.Session) (qrcode.Record, error) {
			return qrcode.VCard{
				Name:  str(c, "name"),
				Org:   str(c, "org"),
				Phone: phone(c, "phone"),
				Email: str(c, "email"),
				URL:   str(c, "url"),
			}, nil
		})

	addKind(qrcode.KindLocation, "geo: position",
		func(c *cobra.Command) {
			c.Flags().String("lat", "", "latitude in decimal degrees")
			c.Flags().String("lng", "", "longitude in decimal degrees")
			c.Flags().Bool("here", false, "use the configured position (geo_lat, geo_lng)")
		},
		func(c *cobra.Command, s *qrcode.Session) (qrcode.Record, error) {
			here, err := c.Flags().GetBool("here")
			if err != nil {
				return nil, err
			}

			lat, lng := str(c, "lat"), str(c, "lng")
			if !here {
				return qrcode.Location{Latitude: lat, Longitude: lng}, nil
			}

			if lat != "" || lng != "" {
				return nil, errors.New("--here cannot be combined with --lat or --lng")
			}

			res := <-s.RequestLocation(c.Context())
			if res.Err != nil {
				return nil, res.Err
			}

			return res.Location, nil
		})

	rootCmd.AddCommand(generateCmd)
}
