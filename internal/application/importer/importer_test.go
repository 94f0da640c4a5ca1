package importer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulinhof/assistencia-api/internal/application/importer"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakePartRepo struct {
	upserted  []entity.Part
	failCodes map[string]bool
}

func (f *fakePartRepo) List() ([]entity.Part, error)         { return nil, nil }
func (f *fakePartRepo) GetByID(string) (*entity.Part, error) { return nil, nil }
func (f *fakePartRepo) Create(*entity.Part) error            { return nil }
func (f *fakePartRepo) Update(*entity.Part) error            { return nil }
func (f *fakePartRepo) Exists(string) (bool, error)          { return false, nil }
func (f *fakePartRepo) Upsert(p *entity.Part) error {
	if f.failCodes[p.Code] {
		return errors.New("constraint violada")
	}
	f.upserted = append(f.upserted, *p)
	return nil
}

type fakeRefresher struct{ called int }

func (f *fakeRefresher) RefreshParts() { f.called++ }

// ── Perfil general ────────────────────────────────────────────────────────────

func TestImport_PerfilGeneralCSV(t *testing.T) {
	csvData := strings.Join([]string{
		"Código,Nome da Peça,Preço,Contagem,Prateleira",
		`APT-600D-COB,COB Chip LS 600d Pro,"R$ 1.250,00",3,A1-02`,
		"APT-120D-FAN,Cooler Fan 120d II,R$ 89,,B2-01",
		",Peça sem código,10,1,C1-01",
	}, "\n")

	repo := &fakePartRepo{}
	refresher := &fakeRefresher{}
	uc := importer.NewUseCase(repo, refresher)

	result, err := uc.Import("inventario.csv", strings.NewReader(csvData), importer.ProfileGeneral)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Skipped, "la fila sin código se ignora y no cuenta como falla")
	assert.Equal(t, 1, refresher.called, "el catálogo se recarga al terminar")

	require.Len(t, repo.upserted, 2)
	first := repo.upserted[0]
	assert.Equal(t, "APT-600D-COB", first.Code)
	assert.Equal(t, "COB Chip LS 600d Pro", first.Name)
	assert.True(t, first.Price.Equal(decimal.NewFromFloat(1250.00)),
		"el precio en formato brasileño debe limpiarse, obtenido %s", first.Price)
	assert.Equal(t, 3, first.Quantity)
	assert.Equal(t, "A1-02", first.Location)
	assert.Equal(t, entity.ManufacturerAputure, first.Manufacturer)
	assert.Equal(t, 5, first.MinStock)
	assert.Equal(t, "Geral", first.Category)
}

// ── Perfil astera ─────────────────────────────────────────────────────────────

func TestImport_PerfilAstera(t *testing.T) {
	// la columna de cantidad viene como "Contagem 08/2025" (varía por planilla)
	csvData := strings.Join([]string{
		"Código,Nome da Peça,Valor unitário,Contagem 08/2025,Prateleira,Unid. no pacote",
		`AST-TITAN-01,Tubo Titan,"R$ 2.500,90",8,D1-03,4`,
	}, "\n")

	repo := &fakePartRepo{}
	uc := importer.NewUseCase(repo, &fakeRefresher{})

	result, err := uc.Import("astera.csv", strings.NewReader(csvData), importer.ProfileAstera)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	require.Len(t, repo.upserted, 1)
	p := repo.upserted[0]
	assert.Equal(t, entity.ManufacturerAstera, p.Manufacturer)
	assert.Equal(t, entity.ManufacturerAstera, p.Category)
	assert.Equal(t, 0, p.MinStock, "solo el perfil general aplica stock mínimo")
	assert.Equal(t, 8, p.Quantity)
	assert.Equal(t, 4, p.UnitsPerPackage)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(2500.90)))
}

func TestImport_PerfilAsteraSinUnidNoPacoteAsumeUno(t *testing.T) {
	csvData := strings.Join([]string{
		"Código,Nome da Peça,Valor unitário,Contagem,Prateleira,Unid. no pacote",
		"AST-HELIOS-02,Tubo Helios,900,2,D2-01,",
	}, "\n")

	repo := &fakePartRepo{}
	uc := importer.NewUseCase(repo, &fakeRefresher{})

	_, err := uc.Import("astera.csv", strings.NewReader(csvData), importer.ProfileAstera)
	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, 1, repo.upserted[0].UnitsPerPackage)
}

// ── Perfil cream_source ───────────────────────────────────────────────────────

func TestImport_PerfilCreamSource(t *testing.T) {
	csvData := strings.Join([]string{
		"Código,Nome da Peça,Valor,Quantidade,Prateleira",
		"CS-VORTEX-L,Vortex Lens,450,2,E2-01",
	}, "\n")

	repo := &fakePartRepo{}
	uc := importer.NewUseCase(repo, &fakeRefresher{})

	result, err := uc.Import("cream.csv", strings.NewReader(csvData), importer.ProfileCreamSource)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	p := repo.upserted[0]
	assert.Equal(t, entity.ManufacturerCreamSource, p.Manufacturer)
	assert.Equal(t, entity.ManufacturerCreamSource, p.Category)
	assert.Equal(t, 0, p.MinStock)
	assert.Equal(t, 0, p.UnitsPerPackage)
}

// ── Errores y filas problemáticas ─────────────────────────────────────────────

func TestImport_FilaQueFallaNoCortaLaImportacion(t *testing.T) {
	csvData := strings.Join([]string{
		"Código,Nome da Peça,Preço,Contagem,Prateleira",
		"OK-1,Pieza uno,10,1,A1",
		"FAIL-1,Pieza dos,20,2,A2",
		"OK-2,Pieza tres,30,3,A3",
	}, "\n")

	repo := &fakePartRepo{failCodes: map[string]bool{"FAIL-1": true}}
	uc := importer.NewUseCase(repo, &fakeRefresher{})

	result, err := uc.Import("inv.csv", strings.NewReader(csvData), importer.ProfileGeneral)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Skipped)
}

func TestImport_PerfilDesconocido(t *testing.T) {
	uc := importer.NewUseCase(&fakePartRepo{}, &fakeRefresher{})
	_, err := uc.Import("x.csv", strings.NewReader("a,b"), importer.Profile("otro"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_FormatoNoSoportado(t *testing.T) {
	uc := importer.NewUseCase(&fakePartRepo{}, &fakeRefresher{})
	_, err := uc.Import("inventario.pdf", strings.NewReader("x"), importer.ProfileGeneral)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_SinColumnaCodigo(t *testing.T) {
	csvData := "Nombre,Precio\nalgo,10"
	uc := importer.NewUseCase(&fakePartRepo{}, &fakeRefresher{})
	_, err := uc.Import("inv.csv", strings.NewReader(csvData), importer.ProfileGeneral)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_EncabezadoSinAcentosTambienMatchea(t *testing.T) {
	csvData := strings.Join([]string{
		"codigo,nome da peca,preco,contagem,prateleira",
		"X-1,Pieza,15,1,A1",
	}, "\n")

	repo := &fakePartRepo{}
	uc := importer.NewUseCase(repo, &fakeRefresher{})

	result, err := uc.Import("inv.csv", strings.NewReader(csvData), importer.ProfileGeneral)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
}
