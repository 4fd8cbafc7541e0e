package out

import (
	"fmt"

	reportout "paymind/internal/modules/report/port/out"

	"rsc.io/pdf"
)

type PDFInspector struct{}

func NewPDFInspector() reportout.Inspector {
	return PDFInspector{}
}

func (PDFInspector) PageCount(path string) (int, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	for n := 1; n <= total; n++ {
		if doc.Page(n).V.IsNull() {
			return 0, fmt.Errorf("pdf page %d is null", n)
		}
	}
	return total, nil
}
