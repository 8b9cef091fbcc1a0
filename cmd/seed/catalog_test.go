package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseCatalog_CommaSeparated(t *testing.T) {
	in := "name,unit_price,quantity,category,supplier\n" +
		"Rice 5kg,25.50,30,Grains,Acme\n" +
		"\n" +
		"Sugar,12,5,,\n"

	items, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Rice 5kg", items[0].Name)
	assert.Equal(t, "25.5", items[0].UnitPrice.String())
	assert.Equal(t, 30, items[0].Quantity)
	assert.Equal(t, "Grains", items[0].Category)
	assert.Equal(t, "Acme", items[0].Supplier)
	assert.Equal(t, "", items[1].Category)
}

func TestParseCatalog_SemicolonAndDecimalComma(t *testing.T) {
	in := "\ufeffname;unit_price;quantity\nAzúcar;3,75;8\n"
	items, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Azúcar", items[0].Name)
	assert.Equal(t, "3.75", items[0].UnitPrice.String())
}

func TestParseCatalog_Errors(t *testing.T) {
	_, err := parseCatalog(strings.NewReader(""))
	assert.Error(t, err)

	_, err = parseCatalog(strings.NewReader("name,quantity\nRice,1\n"))
	assert.ErrorContains(t, err, "unit_price")

	_, err = parseCatalog(strings.NewReader("name,unit_price,quantity\nRice,abc,1\n"))
	assert.ErrorContains(t, err, "línea 2")

	_, err = parseCatalog(strings.NewReader("name,unit_price,quantity\nRice,1,x\n"))
	assert.ErrorContains(t, err, "quantity")
}

func TestCatalogReader_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("name,unit_price,quantity\nCafé,10,2\n")
	require.NoError(t, err)

	r, err := catalogReader(bytes.NewReader([]byte(encoded)), "windows-1252")
	require.NoError(t, err)
	items, err := parseCatalog(r)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Café", items[0].Name)
}

func TestCatalogReader_UnknownEncoding(t *testing.T) {
	_, err := catalogReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}
