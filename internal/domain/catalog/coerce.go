package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Los datos legados (tablas por fabricante y planillas importadas) traen montos
// en formato brasileño ("R$ 1.234,56") y números como texto libre. Este paquete
// concentra la coerción defensiva: nunca retorna error, degrada a cero o a un
// placeholder para que una fila sucia no tumbe la carga del catálogo.

// NamePlaceholder se usa cuando una fila no trae nombre.
const NamePlaceholder = "Sem nome"

// CleanMoney normaliza un monto en formato brasileño a notación decimal:
// quita "R$" y espacios, elimina el '.' de miles y convierte la ',' decimal en '.'.
func CleanMoney(s string) string {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		// con coma decimal, todo '.' es separador de miles
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", ".")
	}
	// Sin coma decimal: los '.' son de miles solo cuando cada grupo que sigue
	// tiene exactamente tres dígitos ("1.234" -> 1234, "12.345.678" -> 12345678);
	// en cualquier otro caso el punto es decimal ("1234.56" se mantiene).
	partes := strings.Split(s, ".")
	if len(partes) > 1 {
		miles := true
		for _, p := range partes[1:] {
			if len(p) != 3 {
				miles = false
				break
			}
		}
		if miles {
			return strings.Join(partes, "")
		}
	}
	return s
}

// ParseMoney convierte un monto (posiblemente en formato brasileño) a decimal.
// Valores vacíos o no numéricos degradan a cero.
func ParseMoney(s string) decimal.Decimal {
	cleaned := CleanMoney(s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity convierte una cantidad en texto a entero, degradando a cero.
// Acepta decimales truncando la parte fraccionaria ("3.0" -> 3).
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

// NameOrPlaceholder devuelve el nombre limpio o el placeholder si viene vacío.
func NameOrPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NamePlaceholder
	}
	return s
}
