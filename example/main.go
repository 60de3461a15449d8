package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	qrcode "github.com/RashadAnsari/go-qrstudio"
)

func main() {
	enc, err := qrcode.NewEncoder(qrcode.DefaultEncoder)
	if err != nil {
		log.Fatal(err.Error())
	}

	opts := qrcode.DefaultOptions()
	opts.Size = 500
	opts.Level = qrcode.Highest

	opacity := 100
	a := (float64(opacity) / float64(100)) * float64(255)
	opts.Foreground = color.RGBA{R: 32, G: 0, B: 96, A: uint8(a)}

	session := qrcode.NewSession(enc, qrcode.WithOptions(opts), qrcode.WithCooldown(0))

	wifi := qrcode.WiFi{SSID: "Home", Password: "correct horse", Security: qrcode.SecurityWPA}

	if _, err := session.Generate(wifi); err != nil {
		log.Fatal(err.Error())
	}

	for _, style := range qrcode.Styles {
		if err := session.SetStyle(style); err != nil {
			log.Fatal(err.Error())
		}

		writeToFile(session, qrcode.FormatPNG)
	}

	writeToFile(session, qrcode.FormatJPEG)
	writeToFile(session, qrcode.FormatSVG)
	writeToFile(session, qrcode.FormatPDF)

	opts.Base64 = true
	opts.Frame = qrcode.FrameRounded

	if err := session.SetOptions(opts); err != nil {
		log.Fatal(err.Error())
	}

	stdoutBase64(session, qrcode.FormatPNG)
	fmt.Println("----------")
	stdoutBase64(session, qrcode.FormatSVG)
}

func writeToFile(session *qrcode.Session, format qrcode.Format) {
	fileMode := os.FileMode(0644)

	artifact, err := session.Export(format)
	if err != nil {
		log.Fatal(err.Error())
	}

	name := fmt.Sprintf("%s-%s", session.Result().Style, artifact.Name)

	if err := os.WriteFile(name, artifact.Data, fileMode); err != nil {
		log.Fatal(err.Error())
	}
}

func stdoutBase64(session *qrcode.Session, format qrcode.Format) {
	artifact, err := session.Export(format)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Println(string(artifact.Data))
}
