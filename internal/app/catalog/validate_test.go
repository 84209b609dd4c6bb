package catalog

import (
	"errors"
	"math"
	"testing"

	"shiningstar/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validService() ServiceInput {
	return ServiceInput{
		Name:            ds.LocalizedText{"en": "Window Cleaning", "es": "Limpieza de ventanas"},
		Description:     ds.LocalizedText{"en": "Inside and out"},
		Price:           ptr(8.0),
		Duration:        ptr(15.0),
		Category:        "residential",
		Available:       true,
		CalculationType: "quantity",
		Unit:            ptr("windows"),
		MaxQuantity:     ptr(50.0),
	}
}

func TestValidateService_Valid(t *testing.T) {
	assert.Empty(t, ValidateService(validService()))
}

func TestValidateService_MissingUnitIsSingleError(t *testing.T) {
	in := ServiceInput{
		Name:            ds.LocalizedText{"en": "Deep Clean"},
		Description:     ds.LocalizedText{"en": "x"},
		Price:           ptr(100.0),
		Duration:        ptr(60.0),
		CalculationType: "quantity",
	}

	errs := ValidateService(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "unit is required for quantity type", errs[0].Message)
}

func TestValidateService_CollectsAllErrors(t *testing.T) {
	in := ServiceInput{
		Name:            ds.LocalizedText{"ru": "Уборка"},
		Price:           ptr(-1.0),
		Duration:        ptr(12.5),
		Category:        42.0,
		Available:       "yes",
		CalculationType: "area",
		MinArea:         ptr(500.0),
		MaxArea:         ptr(100.0),
	}

	errs := ValidateService(in)
	assert.ElementsMatch(t, []string{
		"name.en is required",
		"description.en is required",
		"price must be a non-negative number",
		"duration must be a non-negative integer",
		"category must be a string",
		"available must be a boolean",
		"unit is required for area type",
		"minArea must not exceed maxArea",
	}, errs.Messages())
}

func TestValidateService_CalculationType(t *testing.T) {
	in := validService()
	in.CalculationType = ""
	assert.Equal(t, []string{"calculationType is required"}, ValidateService(in).Messages())

	in.CalculationType = "hourly"
	errs := ValidateService(in)
	require.Len(t, errs, 1)
	assert.Equal(t, "calculationType", errs[0].Field)
}

func TestValidateService_Bounds(t *testing.T) {
	in := validService()
	in.MaxQuantity = ptr(0.0)
	in.MinArea = ptr(-5.0)
	in.Price = ptr(math.NaN())

	assert.ElementsMatch(t, []string{
		"maxQuantity must be a positive number",
		"minArea must be a non-negative number",
		"price must be a non-negative number",
	}, ValidateService(in).Messages())
}

func TestValidateService_MaxAreaMustBePositive(t *testing.T) {
	for name, minArea := range map[string]*float64{
		"without minArea":   nil,
		"with zero minArea": ptr(0.0),
	} {
		t.Run(name, func(t *testing.T) {
			in := validService()
			in.CalculationType = "area"
			in.Unit = ptr("sq ft")
			in.MinArea = minArea
			in.MaxArea = ptr(0.0)

			assert.Equal(t, []string{"maxArea must be a positive number"}, ValidateService(in).Messages())
		})
	}

	in := validService()
	in.MaxArea = ptr(-1.0)
	assert.Equal(t, []string{"maxArea must be a positive number"}, ValidateService(in).Messages())
}

func TestValidateService_TimeNeedsNoUnit(t *testing.T) {
	in := validService()
	in.CalculationType = "time"
	in.Unit = nil
	assert.Empty(t, ValidateService(in))
}

func TestValidationErrors_IsValidationFailed(t *testing.T) {
	in := validService()
	in.Name = nil
	err := ValidateService(in).Err()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ds.ErrValidationFailed))
	assert.NoError(t, ValidateService(validService()).Err())
}

func validPackage() PackageInput {
	return PackageInput{
		Name:        ds.LocalizedText{"en": "Move In"},
		Description: ds.LocalizedText{"en": "Everything for a new home"},
		Services:    []string{"a", "b"},
		Price:       ptr(250.0),
		Discount:    ptr(10.0),
		Duration:    ptr(240.0),
		Available:   true,
	}
}

func TestValidatePackage_Valid(t *testing.T) {
	assert.Empty(t, ValidatePackage(validPackage(), []string{"a", "b", "c"}))
}

func TestValidatePackage_UnknownServices(t *testing.T) {
	in := validPackage()
	in.Services = []string{"a", "missing-id"}

	errs := ValidatePackage(in, []string{"a"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "missing-id")
}

func TestValidatePackage_ReportsEveryUnknownID(t *testing.T) {
	in := validPackage()
	in.Services = []string{"zeta", "a", "alpha", "zeta"}

	errs := ValidatePackage(in, []string{"a"})
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown service ids: alpha, zeta", errs[0].Message)
}

func TestValidatePackage_Rules(t *testing.T) {
	in := PackageInput{
		Name:     ds.LocalizedText{"en": "Spring"},
		Discount: ptr(120.0),
		Duration: ptr(-30.0),
	}

	assert.ElementsMatch(t, []string{
		"description.en is required",
		"services must be a list",
		"price is required",
		"discount must be between 0 and 100",
		"duration must be a non-negative integer",
	}, ValidatePackage(in, nil).Messages())
}

func TestValidatePackage_DiscountDefaults(t *testing.T) {
	in := validPackage()
	in.Discount = nil
	require.Empty(t, ValidatePackage(in, []string{"a", "b"}))
	assert.Zero(t, in.ToPackage("move-in").Discount)
}

func TestServiceInput_ToService(t *testing.T) {
	in := validService()
	in.Available = nil
	in.Unit = ptr("  windows ")

	s := in.ToService("window-cleaning")
	assert.Equal(t, "window-cleaning", s.ID)
	assert.True(t, s.Available)
	assert.Equal(t, ds.CalculationQuantity, s.CalculationType)
	assert.Equal(t, "windows", *s.Unit)
	assert.Equal(t, 15, s.Duration)
}

func TestServiceInputFrom_RoundTripsValid(t *testing.T) {
	s := validService().ToService("window-cleaning")
	in := ServiceInputFrom(s)
	assert.Empty(t, ValidateService(in))
	assert.Equal(t, s, in.ToService(s.ID))
}
