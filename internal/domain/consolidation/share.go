package consolidation

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
)

// ShareMode modo de exportación de texto.
type ShareMode string

const (
	ShareApprovedOnly ShareMode = "approved-only"
	ShareFullReport   ShareMode = "full-report"
)

// ValidShareMode indica si m es un modo soportado.
func ValidShareMode(m ShareMode) bool {
	return m == ShareApprovedOnly || m == ShareFullReport
}

// Formatter arma el bloque de texto compartible (WhatsApp, portapapeles...).
// Las cantidades se imprimen con el separador decimal del idioma configurado.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter construye el formateador para el idioma indicado ("es", "en"...).
// Un tag inválido cae en español.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// FormatShareableText genera el texto compartible.
// approved-only: pedido consolidado con desglose por solicitud.
// full-report: por solicitud, insumos aprobados, luego rechazados, luego un resumen.
func (f *Formatter) FormatShareableText(title string, lines []OrderLine, submissions []entity.Submission, mode ShareMode) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("*" + title + "*\n\n")
	}
	if mode == ShareFullReport {
		f.writeFullReport(&b, submissions)
	} else {
		f.writeApproved(&b, lines)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (f *Formatter) writeApproved(b *strings.Builder, lines []OrderLine) {
	if len(lines) == 0 {
		b.WriteString("Sin insumos aprobados.\n")
		return
	}
	for _, l := range lines {
		b.WriteString(f.printer.Sprintf("• %s: %s %s\n", l.CatalogItemName, f.Quantity(l.TotalQuantity), l.Unit))
		if len(l.Breakdown) > 1 {
			for _, c := range l.Breakdown {
				b.WriteString(f.printer.Sprintf("    - %s (%s): %s\n", c.SourceListName, c.SubmittedByName, f.Quantity(c.Quantity)))
			}
		}
	}
	b.WriteString(f.printer.Sprintf("\nTotal: %d insumos\n", len(lines)))
}

func (f *Formatter) writeFullReport(b *strings.Builder, submissions []entity.Submission) {
	for _, s := range submissions {
		b.WriteString(f.printer.Sprintf("*%s* - %s\n", s.SourceListName, s.SubmittedByName))

		var approved, rejected []entity.SubmissionLine
		for _, l := range s.Lines {
			switch l.LineStatus {
			case entity.LineStatusApproved:
				approved = append(approved, l)
			case entity.LineStatusRejected:
				rejected = append(rejected, l)
			}
		}
		if len(approved) > 0 {
			b.WriteString("Aprobados:\n")
			for _, l := range approved {
				b.WriteString(f.printer.Sprintf("  ✓ %s: %s %s\n", l.CatalogItemName, f.Quantity(l.RequestedQuantity), l.Unit))
			}
		}
		if len(rejected) > 0 {
			b.WriteString("Rechazados:\n")
			for _, l := range rejected {
				b.WriteString(f.printer.Sprintf("  ✗ %s: %s %s\n", l.CatalogItemName, f.Quantity(l.RequestedQuantity), l.Unit))
			}
		}
		b.WriteString(f.printer.Sprintf("Resumen: %d aprobados, %d rechazados\n\n", len(approved), len(rejected)))
	}
}

// Quantity imprime hasta 3 decimales con la convención del idioma (ej. "2,5" en español).
func (f *Formatter) Quantity(d decimal.Decimal) string {
	return f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}
