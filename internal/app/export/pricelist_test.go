package export

import (
	"bytes"
	"testing"

	"shiningstar/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPriceList(t *testing.T) {
	unit := "rooms"
	services := []ds.Service{
		{ID: "room-cleaning", Name: ds.LocalizedText{"en": "Room Cleaning"}, Category: "residential",
			CalculationType: ds.CalculationQuantity, Unit: &unit, Price: 30, Duration: 45, Available: true},
		{ID: "organizing", Name: ds.LocalizedText{"en": "Organizing"}, CalculationType: ds.CalculationTime, Price: 25, Duration: 60},
	}
	packages := []ds.Package{
		{ID: "move-in", Name: ds.LocalizedText{"en": "Move In"}, Services: []string{"room-cleaning", "organizing"},
			Price: 200, Discount: 15, Duration: 180, Available: true},
	}

	data, err := PriceList(services, packages)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{ServicesSheet, PackagesSheet}, f.GetSheetList())

	rows, err := f.GetRows(ServicesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "calculation_type", rows[0][3])
	assert.Equal(t, []string{"room-cleaning", "Room Cleaning", "residential", "quantity", "rooms", "30", "45", "TRUE"}, rows[1])

	pkgRows, err := f.GetRows(PackagesSheet)
	require.NoError(t, err)
	require.Len(t, pkgRows, 2)
	assert.Equal(t, "room-cleaning, organizing", pkgRows[1][2])
	assert.Equal(t, "170", pkgRows[1][5])
}
