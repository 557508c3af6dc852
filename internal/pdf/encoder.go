package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/go-pdf/fpdf"

	"scribe/internal/conversation"
	"scribe/internal/logging"
	"scribe/internal/render"
)

// Colors from the chat front-end's stylesheet.
var (
	primaryColor   = [3]int{75, 131, 192}  // #4b83c0
	secondaryColor = [3]int{135, 136, 137} // #878889
	ruleColor      = [3]int{238, 238, 238} // #eeeeee
)

const (
	pageMargin  = 20.0
	logoHeight  = 16.0
	lineHeight  = 5.0
	speakerSize = 10.0
	bodySize    = 10.0
)

// Encoder turns rendered documents into PDF artifacts.
type Encoder struct {
	logger *slog.Logger
}

// NewEncoder builds a PDF encoder. logger may be nil.
func NewEncoder(logger *slog.Logger) *Encoder {
	return &Encoder{logger: logging.NewComponentLogger(logger, "pdf-encoder")}
}

// Encode produces the final PDF bytes for a rendered document.
func (e *Encoder) Encode(doc render.Document) ([]byte, error) {
	p := fpdf.New("P", "mm", "A4", "")
	p.SetTitle(doc.Title, true)
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.SetAutoPageBreak(true, pageMargin)
	p.AddPage()
	tr := p.UnicodeTranslatorFromDescriptor("")

	e.drawLogos(p, doc.Assets)
	e.drawTitles(p, tr, doc)
	e.drawInfo(p, tr, doc)
	e.drawMessages(p, tr, doc)

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *Encoder) drawLogos(p *fpdf.Fpdf, assets render.Assets) {
	pageWidth, _ := p.GetPageSize()
	logos := make([][]byte, 0, 2)
	for _, data := range [][]byte{assets.AvatarLogo, assets.PrimaryLogo} {
		if e.validPNG(data) {
			logos = append(logos, data)
		}
	}
	if len(logos) == 0 {
		return
	}

	// Logos render side by side, centered, with square bounding boxes.
	count := float64(len(logos))
	total := count*logoHeight + (count-1)*4
	x := (pageWidth - total) / 2
	for i, data := range logos {
		name := fmt.Sprintf("logo-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		p.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		p.ImageOptions(name, x, pageMargin-6, 0, logoHeight, false, opts, 0, "")
		x += logoHeight + 4
	}
	p.SetY(pageMargin + logoHeight - 2)
	e.drawRule(p)
}

func (e *Encoder) drawTitles(p *fpdf.Fpdf, tr func(string) string, doc render.Document) {
	p.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
	p.SetFont("Helvetica", "B", 14)
	if doc.Topic != "" {
		p.CellFormat(0, 8, tr(doc.Topic), "", 1, "C", false, 0, "")
	}
	p.CellFormat(0, 8, tr(doc.Title), "", 1, "C", false, 0, "")
	p.Ln(4)
}

func (e *Encoder) drawInfo(p *fpdf.Fpdf, tr func(string) string, doc render.Document) {
	p.SetTextColor(51, 51, 51)
	p.SetFont("Helvetica", "B", 9)
	rows := [][2]string{
		{"Nombre:", doc.FullName},
		{"Correo:", doc.Email},
		{"Fecha:", doc.DateLine},
	}
	for _, row := range rows {
		p.CellFormat(22, 5, tr(row[0]), "", 0, "L", false, 0, "")
		p.SetFont("Helvetica", "", 9)
		p.CellFormat(0, 5, tr(row[1]), "", 1, "L", false, 0, "")
		p.SetFont("Helvetica", "B", 9)
	}
	p.Ln(4)
}

func (e *Encoder) drawMessages(p *fpdf.Fpdf, tr func(string) string, doc render.Document) {
	p.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 7, tr("Mensajes"), "", 1, "L", false, 0, "")
	e.drawRule(p)
	p.Ln(2)

	for _, block := range doc.Blocks {
		color := primaryColor
		if block.Role == conversation.RoleUser {
			color = secondaryColor
		}
		p.SetTextColor(color[0], color[1], color[2])
		p.SetFont("Helvetica", "B", speakerSize)
		p.CellFormat(0, lineHeight, tr(block.Speaker+":"), "", 1, "L", false, 0, "")

		p.SetTextColor(51, 51, 51)
		p.SetFont("Helvetica", "", bodySize)
		for _, paragraph := range block.Paragraphs {
			if paragraph == "" {
				p.Ln(lineHeight / 2)
				continue
			}
			p.MultiCell(0, lineHeight, tr(paragraph), "", "L", false)
		}
		p.Ln(3)
	}
}

func (e *Encoder) drawRule(p *fpdf.Fpdf) {
	pageWidth, _ := p.GetPageSize()
	p.SetDrawColor(ruleColor[0], ruleColor[1], ruleColor[2])
	y := p.GetY()
	p.Line(pageMargin, y, pageWidth-pageMargin, y)
	p.Ln(2)
}

// validPNG reports whether data looks like a decodable PNG. Invalid assets
// are skipped so they cannot poison the whole encode.
func (e *Encoder) validPNG(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		if e.logger != nil {
			e.logger.Warn("skipping undecodable logo", logging.Error(err))
		}
		return false
	}
	return true
}
