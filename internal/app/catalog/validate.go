// Package catalog валидирует записи каталога из админки и назначает им id.
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"shiningstar/internal/app/ds"
)

// ValidateService собирает все нарушения правил для услуги.
// Не останавливается на первой ошибке и никогда не паникует.
func ValidateService(in ServiceInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(in.Name.En()) == "" {
		errs.add("name.en", "name.en is required")
	}
	if strings.TrimSpace(in.Description.En()) == "" {
		errs.add("description.en", "description.en is required")
	}

	checkNonNegative(&errs, "price", in.Price, true)
	checkDuration(&errs, in.Duration)

	if in.Category != nil {
		if _, ok := in.Category.(string); !ok {
			errs.add("category", "category must be a string")
		}
	}
	if in.Available != nil {
		if _, ok := in.Available.(bool); !ok {
			errs.add("available", "available must be a boolean")
		}
	}

	calc := ds.CalculationType(in.CalculationType)
	switch {
	case in.CalculationType == "":
		errs.add("calculationType", "calculationType is required")
	case !calc.Valid():
		errs.add("calculationType", fmt.Sprintf("calculationType must be one of quantity, area, time, fixed (got %q)", in.CalculationType))
	}

	unitMissing := in.Unit == nil || strings.TrimSpace(*in.Unit) == ""
	if (calc == ds.CalculationQuantity || calc == ds.CalculationArea) && unitMissing {
		errs.add("unit", fmt.Sprintf("unit is required for %s type", calc))
	}

	if in.MaxQuantity != nil && !(*in.MaxQuantity > 0) {
		errs.add("maxQuantity", "maxQuantity must be a positive number")
	}
	checkNonNegative(&errs, "minArea", in.MinArea, false)
	if in.MaxArea != nil && !(*in.MaxArea > 0) {
		errs.add("maxArea", "maxArea must be a positive number")
	}
	if in.MinArea != nil && in.MaxArea != nil && *in.MinArea > *in.MaxArea {
		errs.add("minArea", "minArea must not exceed maxArea")
	}

	return errs
}

// ValidatePackage собирает все нарушения правил для пакета.
// knownServiceIDs - id услуг, существующих на данный момент.
func ValidatePackage(in PackageInput, knownServiceIDs []string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(in.Name.En()) == "" {
		errs.add("name.en", "name.en is required")
	}
	if strings.TrimSpace(in.Description.En()) == "" {
		errs.add("description.en", "description.en is required")
	}

	if in.Services == nil {
		errs.add("services", "services must be a list")
	} else {
		known := make(map[string]struct{}, len(knownServiceIDs))
		for _, id := range knownServiceIDs {
			known[id] = struct{}{}
		}
		var unknown []string
		seen := make(map[string]struct{})
		for _, id := range in.Services {
			if _, ok := known[id]; ok {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			unknown = append(unknown, id)
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			errs.add("services", "unknown service ids: "+strings.Join(unknown, ", "))
		}
	}

	checkNonNegative(&errs, "price", in.Price, true)
	if in.Discount != nil {
		d := *in.Discount
		if math.IsNaN(d) || d < 0 || d > 100 {
			errs.add("discount", "discount must be between 0 and 100")
		}
	}
	checkDuration(&errs, in.Duration)

	if in.Available != nil {
		if _, ok := in.Available.(bool); !ok {
			errs.add("available", "available must be a boolean")
		}
	}

	return errs
}

func checkNonNegative(errs *ValidationErrors, field string, v *float64, required bool) {
	if v == nil {
		if required {
			errs.add(field, field+" is required")
		}
		return
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		errs.add(field, field+" must be a non-negative number")
	}
}

func checkDuration(errs *ValidationErrors, v *float64) {
	if v == nil {
		errs.add("duration", "duration is required")
		return
	}
	d := *v
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 || d != math.Trunc(d) {
		errs.add("duration", "duration must be a non-negative integer")
	}
}
