package render

import (
	"bytes"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/nmluan/payreq-pdf/internal/model"
)

// Diagonal, translucent, behind the page content. The status token stays
// ASCII so the built-in watermark font can render it.
const watermarkDesc = "fontname:Helvetica, points:64, rotation:-45, opacity:0.15, fillcolor:#9E9E9E"

// stampStatus stamps the uppercase status token across every page.
func stampStatus(b []byte, status model.Status) ([]byte, error) {
	wm, err := api.TextWatermark(strings.ToUpper(string(status)), watermarkDesc, false, false, types.POINTS)
	if err != nil {
		return nil, err
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	var buf bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(b), &buf, nil, wm, conf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// verifyBytes parses the produced document and reports its page count. It
// guards against handing out a corrupt artifact.
func verifyBytes(b []byte) (int, error) {
	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(b), conf)
	if err != nil {
		return 0, err
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}
