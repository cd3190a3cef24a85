// Package charts renders the dashboard's time-series and fuel-breakdown
// charts to PNG using gonum/plot. The choropleth map is drawn client-side
// from the JSON endpoint and is not rendered here.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Default render size for embedded dashboard charts.
const (
	defaultWidth  = 7 * vg.Inch
	defaultHeight = 4.5 * vg.Inch
)

func renderPNG(p *plot.Plot) ([]byte, error) {
	w, err := p.WriterTo(defaultWidth, defaultHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("create plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render plot: %w", err)
	}
	return buf.Bytes(), nil
}

// Base64 encodes rendered PNG bytes for inline embedding in HTML.
func Base64(png []byte) string {
	return base64.StdEncoding.EncodeToString(png)
}
