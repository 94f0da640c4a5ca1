package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/paulinhof/assistencia-api/internal/application/dto"
	"github.com/paulinhof/assistencia-api/internal/domain"
	"github.com/paulinhof/assistencia-api/internal/domain/catalog"
	"github.com/paulinhof/assistencia-api/internal/domain/entity"
	"github.com/paulinhof/assistencia-api/internal/domain/repository"
)

// Profile identifica el layout de la planilla a importar. Cada fabricante
// entrega sus planillas con encabezados propios (en portugués).
type Profile string

const (
	ProfileGeneral     Profile = "general"
	ProfileAstera      Profile = "astera"
	ProfileCreamSource Profile = "cream_source"
)

// Valid indica si el perfil es conocido.
func (p Profile) Valid() bool {
	return p == ProfileGeneral || p == ProfileAstera || p == ProfileCreamSource
}

func (p Profile) manufacturer() string {
	switch p {
	case ProfileAstera:
		return entity.ManufacturerAstera
	case ProfileCreamSource:
		return entity.ManufacturerCreamSource
	default:
		return entity.ManufacturerAputure
	}
}

// category de catálogo asignada a las filas importadas por este perfil.
func (p Profile) category() string {
	switch p {
	case ProfileAstera:
		return entity.ManufacturerAstera
	case ProfileCreamSource:
		return entity.ManufacturerCreamSource
	default:
		return "Geral"
	}
}

// minStock aplicado en la importación; solo el perfil general carga piezas
// con alerta de stock mínimo.
func (p Profile) minStock() int {
	if p == ProfileGeneral {
		return 5
	}
	return 0
}

// Refresher recarga el catálogo en memoria después de una importación.
type Refresher interface {
	RefreshParts()
}

// UseCase importa planillas de inventario (xlsx o csv) con upsert por
// (code, manufacturer). Las filas sin código se ignoran y no cuentan ni como
// importadas ni como fallidas.
type UseCase struct {
	partRepo  repository.PartRepository
	refresher Refresher
}

// NewUseCase construye el caso de uso de importación.
func NewUseCase(partRepo repository.PartRepository, refresher Refresher) *UseCase {
	return &UseCase{partRepo: partRepo, refresher: refresher}
}

// Import procesa la planilla y hace upsert fila por fila. Una fila que falla
// no corta la importación: se cuenta y se sigue con la siguiente.
func (uc *UseCase) Import(filename string, r io.Reader, profile Profile) (*dto.ImportResultResponse, error) {
	if !profile.Valid() {
		return nil, fmt.Errorf("perfil %q: %w", profile, domain.ErrInvalidInput)
	}

	rows, err := readTable(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("planilha sem linhas de dados: %w", domain.ErrInvalidInput)
	}

	cols, err := resolveColumns(profile, rows[0])
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResultResponse{Log: []string{}}
	now := time.Now()
	for i, row := range rows[1:] {
		line := i + 2 // 1-based, contando el encabezado

		code := strings.TrimSpace(cols.cell(row, cols.code))
		if code == "" {
			result.Skipped++
			result.Log = append(result.Log, fmt.Sprintf("Linha %d: sem código, ignorada", line))
			continue
		}

		units := catalog.ParseQuantity(cols.cell(row, cols.unitsPerPackage))
		if profile == ProfileAstera && strings.TrimSpace(cols.cell(row, cols.unitsPerPackage)) == "" {
			units = 1 // la planilla Astera asume un pacote unitário cuando falta la celda
		}

		part := entity.Part{
			ID:              uuid.New().String(),
			Name:            catalog.NameOrPlaceholder(cols.cell(row, cols.name)),
			Code:            code,
			Category:        profile.category(),
			Quantity:        catalog.ParseQuantity(cols.cell(row, cols.quantity)),
			MinStock:        profile.minStock(),
			Price:           catalog.ParseMoney(cols.cell(row, cols.price)),
			Location:        strings.TrimSpace(cols.cell(row, cols.location)),
			Manufacturer:    profile.manufacturer(),
			UnitsPerPackage: units,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := uc.partRepo.Upsert(&part); err != nil {
			result.Failed++
			result.Log = append(result.Log, fmt.Sprintf("Linha %d (%s): erro ao salvar: %v", line, code, err))
			continue
		}
		result.Imported++
	}

	result.Log = append(result.Log, fmt.Sprintf(
		"Importação concluída: %d importadas, %d falhas, %d ignoradas",
		result.Imported, result.Failed, result.Skipped))

	uc.refresher.RefreshParts()
	return result, nil
}

// readTable lee xlsx (primera hoja) o csv a una matriz de celdas.
func readTable(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1 // las planillas reales traen filas desparejas
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("ler csv: %w", err)
		}
		return rows, nil
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("abrir planilha: %w", err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("planilha sem abas: %w", domain.ErrInvalidInput)
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("ler planilha: %w", err)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("formato %q não suportado: %w", filepath.Ext(filename), domain.ErrInvalidInput)
	}
}

// columns índices de columna resueltos del encabezado (-1 = no presente).
type columns struct {
	code            int
	name            int
	price           int
	quantity        int
	location        int
	unitsPerPackage int
}

func (c columns) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// resolveColumns ubica las columnas según los encabezados del perfil.
// La comparación ignora mayúsculas y acentos ("Código" == "codigo").
func resolveColumns(profile Profile, header []string) (columns, error) {
	cols := columns{code: -1, name: -1, price: -1, quantity: -1, location: -1, unitsPerPackage: -1}

	find := func(names ...string) int {
		for i, h := range header {
			folded := catalog.Fold(strings.TrimSpace(h))
			for _, n := range names {
				if folded == catalog.Fold(n) {
					return i
				}
			}
		}
		return -1
	}
	findPrefix := func(prefix string) int {
		for i, h := range header {
			if strings.HasPrefix(catalog.Fold(strings.TrimSpace(h)), catalog.Fold(prefix)) {
				return i
			}
		}
		return -1
	}

	cols.code = find("Código")
	cols.name = find("Nome da Peça")
	cols.location = find("Prateleira", "Local")

	switch profile {
	case ProfileGeneral:
		cols.price = find("Price", "Preço")
		cols.quantity = find("Contagem", "Quantidade")
	case ProfileAstera:
		cols.price = find("Valor unitário")
		cols.quantity = findPrefix("contagem")
		cols.unitsPerPackage = find("Unid. no pacote")
	case ProfileCreamSource:
		cols.price = find("Price", "Valor")
		cols.quantity = find("Quantidade", "Contagem")
	}

	if cols.code < 0 {
		return cols, fmt.Errorf("planilha sem coluna Código: %w", domain.ErrInvalidInput)
	}
	return cols, nil
}
