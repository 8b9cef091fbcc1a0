package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/salesflow-api/internal/application/store"
)

// Columnas esperadas en el encabezado del CSV. category y supplier son opcionales.
var catalogColumns = []string{"name", "unit_price", "quantity", "category", "supplier"}

// catalogReader envuelve r con el decodificador de la codificación indicada.
// Los catálogos exportados desde Excel en Windows suelen venir en Windows-1252.
func catalogReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf8", "utf-8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// parseCatalog lee productos desde un CSV con encabezado. Acepta "," o ";" como separador
// y coma decimal en el precio.
func parseCatalog(r io.Reader) ([]store.ProductInput, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = detectComma(text)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catálogo vacío")
	}
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []store.ProductInput
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		in, err := toProduct(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func detectComma(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range catalogColumns[:3] {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}
	return idx, nil
}

func toProduct(rec []string, idx map[string]int) (store.ProductInput, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	price, err := decimal.NewFromString(strings.ReplaceAll(field("unit_price"), ",", "."))
	if err != nil {
		return store.ProductInput{}, fmt.Errorf("unit_price %q inválido", field("unit_price"))
	}
	qty, err := strconv.Atoi(field("quantity"))
	if err != nil {
		return store.ProductInput{}, fmt.Errorf("quantity %q inválido", field("quantity"))
	}
	return store.ProductInput{
		Name:      field("name"),
		UnitPrice: price,
		Quantity:  qty,
		Category:  field("category"),
		Supplier:  field("supplier"),
	}, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
