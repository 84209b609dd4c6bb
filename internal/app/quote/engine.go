// Package quote рассчитывает стоимость одной услуги для адреса клиента.
// Расстояние определяет вызывающий код и передает в милях.
package quote

import (
	"fmt"
	"math"

	"shiningstar/internal/app/ds"
)

// Selection - выбор клиента для услуги. Читается только поле,
// соответствующее типу расчета услуги.
type Selection struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Area     *float64 `json:"area,omitempty"`
	Hours    *float64 `json:"hours,omitempty"`
}

type Quote struct {
	Service       ds.Service `json:"service"`
	Quantity      *float64   `json:"quantity,omitempty"`
	Area          *float64   `json:"area,omitempty"`
	Hours         *float64   `json:"hours,omitempty"`
	Details       string     `json:"details"`
	DistanceMiles float64    `json:"distanceMiles"`
	ServiceCost   float64    `json:"serviceCost"`
	TravelCost    float64    `json:"travelCost"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
}

type Engine struct {
	cfg PricingConfig
}

func NewEngine(cfg PricingConfig) *Engine {
	return &Engine{cfg: cfg}
}

var defaultEngine = NewEngine(DefaultPricingConfig())

// ComputeQuote рассчитывает стоимость с константами по умолчанию
func ComputeQuote(service ds.Service, sel Selection, distanceMiles float64) (Quote, error) {
	return defaultEngine.ComputeQuote(service, sel, distanceMiles)
}

// ComputeTravelCost возвращает доплату за выезд с константами по умолчанию
func ComputeTravelCost(distanceMiles float64) float64 {
	return defaultEngine.ComputeTravelCost(distanceMiles)
}

func (e *Engine) Config() PricingConfig {
	return e.cfg
}

// ComputeQuote возвращает полный расчет или ошибку, оборачивающую ds.ErrServiceUnavailable
// или ds.ErrInvalidSelection. Частичный расчет не возвращается никогда.
func (e *Engine) ComputeQuote(service ds.Service, sel Selection, distanceMiles float64) (Quote, error) {
	if !service.Available {
		return Quote{}, fmt.Errorf("%w: %s", ds.ErrServiceUnavailable, service.ID)
	}
	if math.IsNaN(distanceMiles) || math.IsInf(distanceMiles, 0) || distanceMiles < 0 {
		return Quote{}, fmt.Errorf("%w: distance must be a non-negative number", ds.ErrInvalidSelection)
	}

	p, err := e.price(service, sel)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		Service:       service,
		Quantity:      p.quantity,
		Area:          p.area,
		Hours:         p.hours,
		Details:       p.details,
		DistanceMiles: distanceMiles,
	}
	q.TravelCost = e.ComputeTravelCost(distanceMiles)
	q.ServiceCost = Round2(p.cost)
	q.Subtotal = Round2(q.ServiceCost + q.TravelCost)
	q.Tax = Round2(q.Subtotal * e.cfg.TaxRate)
	q.Total = Round2(q.Subtotal + q.Tax)
	if math.IsInf(q.Total, 0) || math.IsNaN(q.Total) {
		return Quote{}, fmt.Errorf("%w: quote total is out of range", ds.ErrInvalidSelection)
	}

	return q, nil
}

// CheckSelection возвращает ту ошибку, которую вернул бы ComputeQuote для услуги и выбора,
// без расстояния.
func (e *Engine) CheckSelection(service ds.Service, sel Selection) error {
	if !service.Available {
		return fmt.Errorf("%w: %s", ds.ErrServiceUnavailable, service.ID)
	}
	_, err := e.price(service, sel)
	return err
}

type priced struct {
	cost     float64
	quantity *float64
	area     *float64
	hours    *float64
	details  string
}

func (e *Engine) price(service ds.Service, sel Selection) (priced, error) {
	unit := ""
	if service.Unit != nil {
		unit = *service.Unit
	}

	var p priced
	switch service.CalculationType {
	case ds.CalculationQuantity:
		quantity, err := requireQuantity(service, sel.Quantity)
		if err != nil {
			return priced{}, err
		}
		p.cost = service.Price * quantity
		p.quantity = &quantity
		p.details = fmt.Sprintf("%g %s × $%.2f = $%.2f", quantity, unit, service.Price, p.cost)

	case ds.CalculationArea:
		area, err := requireArea(service, sel.Area)
		if err != nil {
			return priced{}, err
		}
		p.cost = service.Price * area
		p.area = &area
		p.details = fmt.Sprintf("%g %s × $%.2f = $%.2f", area, unit, service.Price, p.cost)

	case ds.CalculationTime:
		hours, err := requireHours(sel.Hours)
		if err != nil {
			return priced{}, err
		}
		p.cost = e.cfg.LaborRate * hours
		p.hours = &hours
		p.details = fmt.Sprintf("%g hours × $%.2f = $%.2f", hours, e.cfg.LaborRate, p.cost)

	default:
		// fixed и все неизвестные типы
		p.cost = service.Price
		p.details = fmt.Sprintf("Fixed price: $%.2f", p.cost)
	}
	return p, nil
}

// ComputeTravelCost считает дорогу туда и обратно за пределами бесплатного радиуса по цене бензина с наценкой
func (e *Engine) ComputeTravelCost(distanceMiles float64) float64 {
	if !(distanceMiles > e.cfg.FreeMiles) {
		return 0
	}
	chargeMiles := distanceMiles - e.cfg.FreeMiles
	gallons := chargeMiles * 2 / e.cfg.VehicleMPG
	gas := gallons * e.cfg.GasPricePerGallon
	return Round2(gas * e.cfg.TravelMarkup)
}

func requireQuantity(service ds.Service, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: quantity is required for %s", ds.ErrInvalidSelection, service.ID)
	}
	quantity := *v
	if !(quantity > 0) || math.IsInf(quantity, 0) || quantity != math.Trunc(quantity) {
		return 0, fmt.Errorf("%w: quantity must be a positive integer", ds.ErrInvalidSelection)
	}
	if service.MaxQuantity != nil && quantity > *service.MaxQuantity {
		return 0, fmt.Errorf("%w: quantity %g exceeds maximum %g", ds.ErrInvalidSelection, quantity, *service.MaxQuantity)
	}
	return quantity, nil
}

func requireArea(service ds.Service, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: area is required for %s", ds.ErrInvalidSelection, service.ID)
	}
	area := *v
	if !(area > 0) || math.IsInf(area, 0) {
		return 0, fmt.Errorf("%w: area must be greater than 0", ds.ErrInvalidSelection)
	}
	if service.MinArea != nil && area < *service.MinArea {
		return 0, fmt.Errorf("%w: area %g is below minimum %g", ds.ErrInvalidSelection, area, *service.MinArea)
	}
	if service.MaxArea != nil && area > *service.MaxArea {
		return 0, fmt.Errorf("%w: area %g exceeds maximum %g", ds.ErrInvalidSelection, area, *service.MaxArea)
	}
	return area, nil
}

func requireHours(v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: hours are required", ds.ErrInvalidSelection)
	}
	hours := *v
	if !(hours > 0) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: hours must be greater than 0", ds.ErrInvalidSelection)
	}
	return hours, nil
}

// Round2 округляет до центов, половину от нуля
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
