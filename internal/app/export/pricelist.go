// Package export выгружает каталог в прайс-лист xlsx для админки.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"shiningstar/internal/app/ds"
	"shiningstar/internal/app/quote"

	"github.com/xuri/excelize/v2"
)

const (
	ServicesSheet = "Services"
	PackagesSheet = "Packages"
)

// PriceList возвращает xlsx файл с листами для услуг и для пакетов
func PriceList(services []ds.Service, packages []ds.Package) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ServicesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(PackagesSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	serviceRows := make([][]interface{}, 0, len(services))
	for _, s := range services {
		unit := ""
		if s.Unit != nil {
			unit = *s.Unit
		}
		serviceRows = append(serviceRows, []interface{}{
			s.ID,
			s.Name.En(),
			s.Category,
			string(s.CalculationType),
			unit,
			s.Price,
			s.Duration,
			s.Available,
		})
	}
	err := writeSheet(f, ServicesSheet, []interface{}{
		"id", "name", "category", "calculation_type", "unit", "price", "duration_min", "available",
	}, serviceRows)
	if err != nil {
		return nil, err
	}

	packageRows := make([][]interface{}, 0, len(packages))
	for _, p := range packages {
		packageRows = append(packageRows, []interface{}{
			p.ID,
			p.Name.En(),
			strings.Join(p.Services, ", "),
			p.Price,
			p.Discount,
			quote.Round2(p.DiscountedPrice()),
			p.Duration,
			p.Available,
		})
	}
	err = writeSheet(f, PackagesSheet, []interface{}{
		"id", "name", "services", "price", "discount_pct", "discounted_price", "duration_min", "available",
	}, packageRows)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	row := 2
	for _, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("%s cell: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, row, err)
		}
		row++
	}
	return nil
}
