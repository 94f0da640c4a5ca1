package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paulinhof/assistencia-api/internal/domain/catalog"
)

func TestFold_QuitaAcentosYMayusculas(t *testing.T) {
	assert.Equal(t, "joao", catalog.Fold("João"))
	assert.Equal(t, "refletor", catalog.Fold("Refletor"))
	assert.Equal(t, "em analise", catalog.Fold("Em Análise"))
	assert.Equal(t, "aprovacao", catalog.Fold("Aprovação"))
}

func TestMatches_IgnoraAcentos(t *testing.T) {
	assert.True(t, catalog.Matches("João da Silva", "joao"))
	assert.True(t, catalog.Matches("Reflector Astera", "ástera"))
	assert.False(t, catalog.Matches("Cream Source", "aputure"))
}

func TestMatches_NeedleVacioSiempreMatchea(t *testing.T) {
	assert.True(t, catalog.Matches("cualquier cosa", ""))
	assert.True(t, catalog.Matches("cualquier cosa", "   "))
}
