// Package pdf genera la constancia de autorización de una empresa: datos de
// la resolución vigente, rutas autorizadas y flota habilitada, con un código
// QR que apunta a la consulta pública.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: DRTC Puno │ Constancia + N° Resolución + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Razón social, RUC, domicilio fiscal               │
//	│  RESOLUCIÓN: número, trámite, vigencia desde/hasta          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA RUTAS: Código | Origen - Destino | Frecuencia        │
//	│  TABLA FLOTA: Placa | Categoría | Marca | Asientos          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de verificación + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
	"github.com/drtc-puno/sirret-api/pkg/peru"
)

var (
	colorPrimary = &props.Color{Red: 128, Green: 0, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ConstanciaInput datos consolidados para la constancia.
type ConstanciaInput struct {
	Company    *entity.Company
	Resolution *entity.Resolution
	Routes     []*entity.Route
	Vehicles   []*entity.Vehicle
	// VerifyURL destino del QR de verificación pública
	VerifyURL string
}

// ConstanciaGenerator genera la constancia en PDF con Maroto v2.
type ConstanciaGenerator struct {
	institution string
}

// NewConstanciaGenerator construye el generador con el nombre institucional
// que encabeza el documento.
func NewConstanciaGenerator(institution string) *ConstanciaGenerator {
	if institution == "" {
		institution = "Dirección Regional de Transportes y Comunicaciones"
	}
	return &ConstanciaGenerator{institution: institution}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *ConstanciaGenerator) Generate(in ConstanciaInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Constancia de Autorización", true).
		WithAuthor(g.institution, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(in.Resolution))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(empresaRows(in.Company)...)
	m.AddRows(resolucionRows(in.Resolution)...)

	if len(in.Routes) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("RUTAS AUTORIZADAS"))
		m.AddRows(rutasHeaderRow())
		for _, r := range in.Routes {
			m.AddRows(rutaRow(r))
		}
	}
	if len(in.Vehicles) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("FLOTA HABILITADA"))
		m.AddRows(flotaHeaderRow())
		for _, v := range in.Vehicles {
			m.AddRows(flotaRow(v))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(in))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar constancia: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ConstanciaGenerator) headerRow(r *entity.Resolution) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.institution, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro Regional de Transporte Terrestre", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CONSTANCIA DE AUTORIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(r.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitida: "+peru.FormatFecha(r.IssueDate), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func empresaRows(c *entity.Company) []core.Row {
	return []core.Row{
		sectionTitle("EMPRESA"),
		row.New(14).Add(col.New(12).Add(
			text.New(c.LegalName.Canonical, props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
			text.New("RUC: "+c.RUC, props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(c.FiscalAddress, props.Text{Size: 8, Top: 10, Color: colorGray}),
		)),
	}
}

func resolucionRows(r *entity.Resolution) []core.Row {
	vigencia := fmt.Sprintf("Vigencia: %s al %s",
		peru.FormatFecha(r.ValidityStart), peru.FormatFecha(r.ValidityEnd))
	return []core.Row{
		row.New(10).Add(
			col.New(6).Add(
				text.New("Trámite: "+r.ProcedureKind, props.Text{Size: 8, Top: 1}),
				text.New("Estado: "+r.State, props.Text{Size: 8, Top: 5}),
			),
			col.New(6).Add(
				text.New(vigencia, props.Text{Size: 8, Top: 1, Align: align.Right}),
			),
		),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func rutasHeaderRow() core.Row {
	return row.New(5).Add(
		col.New(2).Add(text.New("Código", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(7).Add(text.New("Ruta", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(3).Add(text.New("Frecuencia", props.Text{Style: fontstyle.Bold, Size: 7})),
	)
}

func rutaRow(r *entity.Route) core.Row {
	freq := r.Frequency.Description
	if freq == "" {
		freq = r.Frequency.Kind
	}
	return row.New(5).Add(
		col.New(2).Add(text.New(r.Code, props.Text{Size: 7})),
		col.New(7).Add(text.New(r.Origin.Name+" - "+r.Destination.Name, props.Text{Size: 7})),
		col.New(3).Add(text.New(freq, props.Text{Size: 7})),
	)
}

func flotaHeaderRow() core.Row {
	return row.New(5).Add(
		col.New(3).Add(text.New("Placa", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(2).Add(text.New("Categoría", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(4).Add(text.New("Marca / Modelo", props.Text{Style: fontstyle.Bold, Size: 7})),
		col.New(3).Add(text.New("Asientos", props.Text{Style: fontstyle.Bold, Size: 7})),
	)
}

func flotaRow(v *entity.Vehicle) core.Row {
	seats := ""
	if v.TechnicalData.Seats > 0 {
		seats = fmt.Sprintf("%d", v.TechnicalData.Seats)
	}
	return row.New(5).Add(
		col.New(3).Add(text.New(v.Plate, props.Text{Size: 7})),
		col.New(2).Add(text.New(v.Category, props.Text{Size: 7})),
		col.New(4).Add(text.New(v.Brand+" "+v.Model, props.Text{Size: 7})),
		col.New(3).Add(text.New(seats, props.Text{Size: 7})),
	)
}

func footerRow(in ConstanciaInput) core.Row {
	legend := "Documento informativo emitido por el registro regional. " +
		"Verifique la vigencia escaneando el código QR."
	qrData := in.VerifyURL
	if qrData == "" {
		qrData = in.Resolution.Number
	}
	return row.New(26).Add(
		col.New(8).Add(
			text.New(legend, props.Text{Size: 7, Top: 2, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(qrData, props.Rect{
			Center: true, Percent: 90,
		})),
	)
}
