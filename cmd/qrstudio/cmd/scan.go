package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"

	qrcode "github.com/RashadAnsari/go-qrstudio"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image-file> [image-file...]",
	Short: "Decode QR codes from PNG, JPEG or BMP files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		failed := 0

		for _, path := range args {
			text, err := scanFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				failed++

				continue
			}

			if len(args) > 1 {
				fmt.Printf("%s: ", path)
			}

			fmt.Println(text)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be decoded", failed, len(args))
		}

		return nil
	},
}

func scanFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	return qrcode.Scan(img)
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
