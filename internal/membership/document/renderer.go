// Package document renders the membership bulletin PDF. The layout is the
// printed form the organization archives: letterhead, title block, the
// sixteen personal-information lines, and an optional photo page.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"adhesion/internal/membership/models"
)

const orgTitle = "FORMULAIRE D'ADHÉSION À L'ONG Bien-Être"

// Artifact describes a rendered bulletin on disk.
type Artifact struct {
	Path  string
	Pages int
}

// Renderer writes bulletins under dir, one PDF per numero.
type Renderer struct {
	dir      string
	logoPath string
}

// NewRenderer returns a renderer rooted at dir. logoPath may point at a
// missing file; the letterhead is then simply omitted.
func NewRenderer(dir, logoPath string) *Renderer {
	return &Renderer{dir: dir, logoPath: logoPath}
}

// Path returns the PDF location for a numero.
func (r *Renderer) Path(numero string) string {
	return filepath.Join(r.dir, numero+".pdf")
}

// Render writes {dir}/{numero}.pdf. The file is fully flushed and closed
// before Render returns, so callers may hand the path to the notifier as
// soon as this succeeds.
func (r *Renderer) Render(ctx context.Context, m models.Member) (Artifact, error) {
	if m.Numero == "" {
		return Artifact{}, fmt.Errorf("render bulletin: record has no numero")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Bulletin d'adhésion "+m.Numero, true)
	pdf.AddPage()

	if r.logoPath != "" {
		if _, err := os.Stat(r.logoPath); err == nil {
			pdf.ImageOptions(r.logoPath, 15, 12, 28, 0, false, imageOptions(r.logoPath), 0, "")
		}
	}

	pdf.SetY(45)
	pdf.SetFont("Times", "B", 18)
	pdf.SetTextColor(0x00, 0x4A, 0xAD)
	pdf.CellFormat(0, 10, tr(orgTitle), "", 1, "C", false, 0, "")
	pdf.SetFont("Times", "", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr("Bulletin d'adhésion N° : "+m.Numero), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Times", "U", 14)
	pdf.CellFormat(0, 8, tr("Informations personnelles"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Times", "", 12)
	for _, line := range FieldLines(m) {
		pdf.MultiCell(0, 6, tr(line.Label+" : "+line.Value), "", "L", false)
	}

	if m.PhotoPath != "" {
		r.photoPage(pdf, tr, m.PhotoPath)
	}

	if pdf.Err() {
		return Artifact{}, fmt.Errorf("render bulletin %s: %w", m.Numero, pdf.Error())
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("create bulletin dir: %w", err)
	}
	pages := pdf.PageCount()
	path := r.Path(m.Numero)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return Artifact{}, fmt.Errorf("write bulletin %s: %w", m.Numero, err)
	}
	return Artifact{Path: path, Pages: pages}, nil
}

// photoPage adds a page with the member photo fit into a bounded box,
// centered on both axes.
func (r *Renderer) photoPage(pdf *fpdf.Fpdf, tr func(string) string, photoPath string) {
	pdf.AddPage()
	pdf.SetFont("Times", "", 16)
	pdf.CellFormat(0, 10, tr("Photo de l'adhérent"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	opts := imageOptions(photoPath)
	info := pdf.RegisterImageOptions(photoPath, opts)
	if info == nil || pdf.Err() {
		return
	}

	const box = 90.0
	w, h := info.Extent()
	scale := box / w
	if box/h < scale {
		scale = box / h
	}
	w, h = w*scale, h*scale

	pageW, pageH := pdf.GetPageSize()
	x := (pageW - w) / 2
	top := pdf.GetY()
	y := top + (pageH-top-20-h)/2
	if y < top {
		y = top
	}
	pdf.ImageOptions(photoPath, x, y, w, h, false, opts, 0, "")
}

// FieldLine is one labeled value of the bulletin.
type FieldLine struct {
	Label string
	Value string
}

// FieldLines returns the sixteen bulletin lines in their fixed print order.
func FieldLines(m models.Member) []FieldLine {
	return []FieldLine{
		{"Nom", m.Nom},
		{"Prénoms", m.Prenoms},
		{"Date de naissance", m.Naissance},
		{"Lieu de naissance", m.Lieu},
		{"Sexe", m.Sexe},
		{"Nationalité", m.Nationalite},
		{"Profession", m.Profession},
		{"Email", m.Email},
		{"Téléphone", m.Tel},
		{"Ville", m.Ville},
		{"Pays", m.Pays},
		{"Pièce", m.Piece + " — " + m.NumeroPiece},
		{"Niveau d'étude", m.Niveau},
		{"Motivation", m.Motivation},
		{"Adhésion payée", ouiNon(m.PayAdhesion)},
		{"Cotisation payée", ouiNon(m.PayCotisation)},
	}
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}

// imageOptions derives the fpdf image type from the file extension so
// staged uploads without a canonical name still embed correctly.
func imageOptions(path string) fpdf.ImageOptions {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "jpg", "jpeg":
		return fpdf.ImageOptions{ImageType: "JPG", ReadDpi: true}
	case "png":
		return fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	case "gif":
		return fpdf.ImageOptions{ImageType: "GIF", ReadDpi: true}
	default:
		return fpdf.ImageOptions{ReadDpi: true}
	}
}
