package document

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"adhesion/internal/membership/models"
)

type RendererSuite struct {
	suite.Suite
	dir      string
	renderer *Renderer
}

func (s *RendererSuite) SetupTest() {
	s.dir = filepath.Join(s.T().TempDir(), "adherents")
	// Logo path points nowhere; the letterhead is optional.
	s.renderer = NewRenderer(s.dir, filepath.Join(s.T().TempDir(), "logo.png"))
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererSuite))
}

func (s *RendererSuite) member() models.Member {
	return models.Member{
		Numero:        "M-0001",
		Nom:           "Koné",
		Prenoms:       "Awa",
		Naissance:     "1994-05-12",
		Lieu:          "Abidjan",
		Piece:         "CNI",
		NumeroPiece:   "CI-123456",
		Pays:          "Côte d'Ivoire",
		Ville:         "Abidjan",
		Tel:           "+2250700000000",
		Email:         "awa.kone@example.com",
		Profession:    "Enseignante",
		Sexe:          "F",
		Nationalite:   "Ivoirienne",
		Niveau:        "Licence",
		Motivation:    "Aider la communauté",
		PayAdhesion:   true,
		PayCotisation: false,
	}
}

// writePhoto creates a small PNG the renderer can embed.
func (s *RendererSuite) writePhoto() string {
	img := image.NewRGBA(image.Rect(0, 0, 120, 160))
	for x := 0; x < 120; x++ {
		for y := 0; y < 160; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	path := filepath.Join(s.T().TempDir(), "photo.png")
	f, err := os.Create(path)
	s.Require().NoError(err)
	defer f.Close()
	s.Require().NoError(png.Encode(f, img))
	return path
}

func (s *RendererSuite) TestWithoutPhotoIsOnePage() {
	artifact, err := s.renderer.Render(context.Background(), s.member())
	s.Require().NoError(err)

	s.Equal(1, artifact.Pages)
	s.Equal(filepath.Join(s.dir, "M-0001.pdf"), artifact.Path)

	raw, err := os.ReadFile(artifact.Path)
	s.Require().NoError(err)
	s.NotEmpty(raw)
	s.Equal("%PDF", string(raw[:4]))
}

func (s *RendererSuite) TestWithPhotoAddsASecondPage() {
	m := s.member()
	m.PhotoPath = s.writePhoto()

	artifact, err := s.renderer.Render(context.Background(), m)
	s.Require().NoError(err)
	s.Equal(2, artifact.Pages)
}

func (s *RendererSuite) TestFileIsFlushedWhenRenderReturns() {
	artifact, err := s.renderer.Render(context.Background(), s.member())
	s.Require().NoError(err)

	info, err := os.Stat(artifact.Path)
	s.Require().NoError(err)
	s.Positive(info.Size())
}

func (s *RendererSuite) TestPresentLogoIsEmbedded() {
	logo := s.writePhoto()
	renderer := NewRenderer(s.dir, logo)

	artifact, err := renderer.Render(context.Background(), s.member())
	s.Require().NoError(err)
	s.Equal(1, artifact.Pages)
}

func (s *RendererSuite) TestMissingNumeroIsRejected() {
	m := s.member()
	m.Numero = ""

	_, err := s.renderer.Render(context.Background(), m)
	s.Error(err)
}

func TestFieldLinesOrder(t *testing.T) {
	m := models.Member{
		Nom: "Koné", Prenoms: "Awa", Naissance: "1994-05-12", Lieu: "Abidjan",
		Sexe: "F", Nationalite: "Ivoirienne", Profession: "Enseignante",
		Email: "awa@example.com", Tel: "+225", Ville: "Abidjan", Pays: "CI",
		Piece: "CNI", NumeroPiece: "CI-123456", Niveau: "Licence",
		Motivation: "Aider", PayAdhesion: true,
	}
	lines := FieldLines(m)

	wantLabels := []string{
		"Nom", "Prénoms", "Date de naissance", "Lieu de naissance", "Sexe",
		"Nationalité", "Profession", "Email", "Téléphone", "Ville", "Pays",
		"Pièce", "Niveau d'étude", "Motivation", "Adhésion payée", "Cotisation payée",
	}
	if len(lines) != len(wantLabels) {
		t.Fatalf("got %d lines, want %d", len(lines), len(wantLabels))
	}
	for i, want := range wantLabels {
		if lines[i].Label != want {
			t.Errorf("line %d label = %q, want %q", i, lines[i].Label, want)
		}
	}

	if got := lines[11].Value; got != "CNI — CI-123456" {
		t.Errorf("Pièce value = %q", got)
	}
	if got := lines[14].Value; got != "Oui" {
		t.Errorf("Adhésion payée = %q, want Oui", got)
	}
	if got := lines[15].Value; got != "Non" {
		t.Errorf("Cotisation payée = %q, want Non", got)
	}
}
