package quote

import (
	"errors"
	"math"
	"testing"

	"shiningstar/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func fixedService(price float64) ds.Service {
	return ds.Service{
		ID:              "standard-cleaning",
		Name:            ds.LocalizedText{"en": "Standard Cleaning"},
		Price:           price,
		Available:       true,
		CalculationType: ds.CalculationFixed,
	}
}

func TestComputeTravelCost(t *testing.T) {
	tests := []struct {
		miles float64
		want  float64
	}{
		{0, 0},
		{3.2, 0},
		{5, 0},
		{10, 2.61},
		{15, 5.22},
		{28, 12},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeTravelCost(tt.miles), "miles=%v", tt.miles)
	}
}

func TestComputeTravelCost_NonDecreasing(t *testing.T) {
	prev := 0.0
	for d := 0.0; d <= 60; d += 0.25 {
		cost := ComputeTravelCost(d)
		assert.GreaterOrEqual(t, cost, prev, "miles=%v", d)
		prev = cost
	}
}

func TestComputeTravelCost_HugeDistance(t *testing.T) {
	assert.True(t, math.IsInf(ComputeTravelCost(math.MaxFloat64), 1))
	assert.True(t, math.IsInf(ComputeTravelCost(math.Inf(1)), 1))
	assert.Equal(t, 0.0, ComputeTravelCost(math.NaN()))
}

func TestComputeQuote_RejectsOverflowingTotal(t *testing.T) {
	_, err := ComputeQuote(fixedService(50), Selection{}, math.MaxFloat64)
	assert.True(t, errors.Is(err, ds.ErrInvalidSelection), "got %v", err)

	_, err = ComputeQuote(fixedService(math.MaxFloat64), Selection{}, 0)
	assert.True(t, errors.Is(err, ds.ErrInvalidSelection), "got %v", err)
}

func TestComputeQuote_FixedWithTravel(t *testing.T) {
	q, err := ComputeQuote(fixedService(50), Selection{}, 10)
	require.NoError(t, err)

	assert.Equal(t, 50.0, q.ServiceCost)
	assert.Equal(t, 2.61, q.TravelCost)
	assert.Equal(t, 52.61, q.Subtotal)
	assert.Equal(t, 4.21, q.Tax)
	assert.Equal(t, 56.82, q.Total)
}

func TestComputeQuote_RoundTripCharge(t *testing.T) {
	q, err := ComputeQuote(fixedService(50), Selection{}, 15)
	require.NoError(t, err)

	assert.Equal(t, 5.22, q.TravelCost)
	assert.Equal(t, 55.22, q.Subtotal)
	assert.Equal(t, 4.42, q.Tax)
	assert.Equal(t, 59.64, q.Total)
}

func TestComputeQuote_ByCalculationType(t *testing.T) {
	rooms := ds.Service{
		ID: "room-cleaning", Price: 30, Available: true,
		CalculationType: ds.CalculationQuantity, Unit: ptr("rooms"), MaxQuantity: ptr(10.0),
	}
	carpet := ds.Service{
		ID: "carpet-cleaning", Price: 0.15, Available: true,
		CalculationType: ds.CalculationArea, Unit: ptr("sq ft"), MinArea: ptr(100.0), MaxArea: ptr(5000.0),
	}
	hourly := ds.Service{ID: "organizing", Price: 999, Available: true, CalculationType: ds.CalculationTime}
	unknown := ds.Service{ID: "legacy", Price: 70, Available: true, CalculationType: "per_visit"}

	tests := []struct {
		name     string
		service  ds.Service
		sel      Selection
		wantCost float64
		wantTax  float64
		wantSum  float64
	}{
		{"quantity", rooms, Selection{Quantity: ptr(3.0)}, 90, 7.2, 97.2},
		{"area", carpet, Selection{Area: ptr(1000.0)}, 150, 12, 162},
		{"time uses labor rate", hourly, Selection{Hours: ptr(3.0)}, 75, 6, 81},
		{"unknown type is fixed", unknown, Selection{Quantity: ptr(4.0)}, 70, 5.6, 75.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ComputeQuote(tt.service, tt.sel, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, q.ServiceCost)
			assert.Equal(t, 0.0, q.TravelCost)
			assert.Equal(t, tt.wantTax, q.Tax)
			assert.Equal(t, tt.wantSum, q.Total)
		})
	}
}

func TestComputeQuote_Errors(t *testing.T) {
	rooms := ds.Service{
		ID: "room-cleaning", Price: 30, Available: true,
		CalculationType: ds.CalculationQuantity, Unit: ptr("rooms"), MaxQuantity: ptr(10.0),
	}
	carpet := ds.Service{
		ID: "carpet-cleaning", Price: 0.15, Available: true,
		CalculationType: ds.CalculationArea, Unit: ptr("sq ft"), MinArea: ptr(100.0), MaxArea: ptr(5000.0),
	}
	hourly := ds.Service{ID: "organizing", Available: true, CalculationType: ds.CalculationTime}
	unavailable := fixedService(50)
	unavailable.Available = false

	tests := []struct {
		name    string
		service ds.Service
		sel     Selection
		miles   float64
		want    error
	}{
		{"unavailable", unavailable, Selection{}, 0, ds.ErrServiceUnavailable},
		{"missing quantity", rooms, Selection{Area: ptr(3.0)}, 0, ds.ErrInvalidSelection},
		{"zero quantity", rooms, Selection{Quantity: ptr(0.0)}, 0, ds.ErrInvalidSelection},
		{"fractional quantity", rooms, Selection{Quantity: ptr(2.5)}, 0, ds.ErrInvalidSelection},
		{"quantity over max", rooms, Selection{Quantity: ptr(11.0)}, 0, ds.ErrInvalidSelection},
		{"missing area", carpet, Selection{}, 0, ds.ErrInvalidSelection},
		{"negative area", carpet, Selection{Area: ptr(-10.0)}, 0, ds.ErrInvalidSelection},
		{"area below min", carpet, Selection{Area: ptr(99.0)}, 0, ds.ErrInvalidSelection},
		{"area above max", carpet, Selection{Area: ptr(5001.0)}, 0, ds.ErrInvalidSelection},
		{"missing hours", hourly, Selection{}, 0, ds.ErrInvalidSelection},
		{"zero hours", hourly, Selection{Hours: ptr(0.0)}, 0, ds.ErrInvalidSelection},
		{"negative distance", fixedService(50), Selection{}, -1, ds.ErrInvalidSelection},
		{"NaN distance", fixedService(50), Selection{}, math.NaN(), ds.ErrInvalidSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ComputeQuote(tt.service, tt.sel, tt.miles)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, Quote{}, q)
		})
	}
}

func TestComputeQuote_AreaBoundsInclusive(t *testing.T) {
	carpet := ds.Service{
		ID: "carpet-cleaning", Price: 0.2, Available: true,
		CalculationType: ds.CalculationArea, Unit: ptr("sq ft"), MinArea: ptr(100.0), MaxArea: ptr(500.0),
	}
	for _, area := range []float64{100, 500} {
		_, err := ComputeQuote(carpet, Selection{Area: ptr(area)}, 0)
		assert.NoError(t, err, "area=%v", area)
	}
}

func TestComputeQuote_Idempotent(t *testing.T) {
	rooms := ds.Service{
		ID: "room-cleaning", Price: 33.33, Available: true,
		CalculationType: ds.CalculationQuantity, Unit: ptr("rooms"),
	}
	sel := Selection{Quantity: ptr(7.0)}

	first, err := ComputeQuote(rooms, sel, 18.4)
	require.NoError(t, err)
	second, err := ComputeQuote(rooms, sel, 18.4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeQuote_TotalsConsistent(t *testing.T) {
	rooms := ds.Service{
		ID: "room-cleaning", Price: 17.35, Available: true,
		CalculationType: ds.CalculationQuantity, Unit: ptr("rooms"),
	}
	for qty := 1.0; qty <= 12; qty++ {
		for _, miles := range []float64{0, 4.9, 7.3, 21.7, 40} {
			q, err := ComputeQuote(rooms, Selection{Quantity: ptr(qty)}, miles)
			require.NoError(t, err)
			assert.Equal(t, Round2(q.ServiceCost+q.TravelCost), q.Subtotal)
			assert.Equal(t, Round2(q.Subtotal+q.Tax), q.Total)
		}
	}
}

func TestEngine_CustomConfig(t *testing.T) {
	cfg := DefaultPricingConfig()
	cfg.LaborRate = 40
	cfg.TaxRate = 0
	engine := NewEngine(cfg)

	hourly := ds.Service{ID: "organizing", Available: true, CalculationType: ds.CalculationTime}
	q, err := engine.ComputeQuote(hourly, Selection{Hours: ptr(2.0)}, 0)
	require.NoError(t, err)

	assert.Equal(t, 80.0, q.ServiceCost)
	assert.Equal(t, 0.0, q.Tax)
	assert.Equal(t, 80.0, q.Total)
}

func TestCheckSelection(t *testing.T) {
	engine := NewEngine(DefaultPricingConfig())
	rooms := ds.Service{
		ID: "room-cleaning", Price: 30, Available: true,
		CalculationType: ds.CalculationQuantity, Unit: ptr("rooms"),
	}

	assert.NoError(t, engine.CheckSelection(rooms, Selection{Quantity: ptr(2.0)}))
	assert.True(t, errors.Is(engine.CheckSelection(rooms, Selection{}), ds.ErrInvalidSelection))

	rooms.Available = false
	assert.True(t, errors.Is(engine.CheckSelection(rooms, Selection{Quantity: ptr(2.0)}), ds.ErrServiceUnavailable))
}
