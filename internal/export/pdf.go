package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfImageName = "canvas"

// WritePDF writes a single-page PDF sized width x height points whose page
// is the given JPEG raster.
func WritePDF(w io.Writer, jpegData []byte, width, height int) error {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	p.RegisterImageOptionsReader(pdfImageName, opts, bytes.NewReader(jpegData))
	p.ImageOptions(pdfImageName, 0, 0, float64(width), float64(height), false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// PDF renders src to JPEG and wraps it in a PDF page.
func PDF(w io.Writer, src Encoder, width, height int) error {
	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		return err
	}
	return WritePDF(w, buf.Bytes(), width, height)
}
