package quote

import (
	"fmt"

	"shiningstar/internal/app/ds"
)

const Currency = "USD"

type LineItem struct {
	Type     string  `json:"type"` // service или package
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

// Estimate - итог корзины перед отправкой заявки
type Estimate struct {
	Items         []LineItem `json:"items"`
	TotalPrice    float64    `json:"totalPrice"`
	TotalDuration int        `json:"totalDuration"`
	Currency      string     `json:"currency"`
}

// EstimateCart суммирует услуги по прайсу и пакеты по цене со скидкой.
// Все позиции должны быть доступны.
func EstimateCart(services []ds.Service, packages []ds.Package) (Estimate, error) {
	est := Estimate{Items: make([]LineItem, 0, len(services)+len(packages)), Currency: Currency}
	var total float64

	for _, s := range services {
		if !s.Available {
			return Estimate{}, fmt.Errorf("%w: %s", ds.ErrServiceUnavailable, s.ID)
		}
		est.Items = append(est.Items, LineItem{Type: "service", ID: s.ID, Name: s.Name.En(), Price: s.Price, Duration: s.Duration})
		total += s.Price
		est.TotalDuration += s.Duration
	}

	for _, p := range packages {
		if !p.Available {
			return Estimate{}, fmt.Errorf("%w: package %s", ds.ErrServiceUnavailable, p.ID)
		}
		price := Round2(p.DiscountedPrice())
		est.Items = append(est.Items, LineItem{Type: "package", ID: p.ID, Name: p.Name.En(), Price: price, Duration: p.Duration})
		total += price
		est.TotalDuration += p.Duration
	}

	est.TotalPrice = Round2(total)
	return est, nil
}
