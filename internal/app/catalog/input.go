package catalog

import (
	"maps"
	"strings"

	"shiningstar/internal/app/ds"
)

// ServiceInput - услуга в том виде, в каком ее присылает админка или seed файл.
// Category и Available не типизированы, чтобы неверный JSON тип попал в ошибки, а не потерялся.
type ServiceInput struct {
	Name            ds.LocalizedText `json:"name"`
	Description     ds.LocalizedText `json:"description"`
	Price           *float64         `json:"price"`
	Duration        *float64         `json:"duration"`
	Category        any              `json:"category"`
	Available       any              `json:"available"`
	CalculationType string           `json:"calculationType"`
	Unit            *string          `json:"unit"`
	MaxQuantity     *float64         `json:"maxQuantity"`
	MinArea         *float64         `json:"minArea"`
	MaxArea         *float64         `json:"maxArea"`
}

// PackageInput - пакет из админки или seed файла
type PackageInput struct {
	Name        ds.LocalizedText `json:"name"`
	Description ds.LocalizedText `json:"description"`
	Services    []string         `json:"services"`
	Price       *float64         `json:"price"`
	Discount    *float64         `json:"discount"`
	Duration    *float64         `json:"duration"`
	Available   any              `json:"available"`
}

// ServiceInputFrom превращает сохраненную услугу обратно во input,
// поверх которого накладывается частичное обновление
func ServiceInputFrom(s ds.Service) ServiceInput {
	duration := float64(s.Duration)
	return ServiceInput{
		Name:            maps.Clone(s.Name),
		Description:     maps.Clone(s.Description),
		Price:           &s.Price,
		Duration:        &duration,
		Category:        s.Category,
		Available:       s.Available,
		CalculationType: string(s.CalculationType),
		Unit:            s.Unit,
		MaxQuantity:     s.MaxQuantity,
		MinArea:         s.MinArea,
		MaxArea:         s.MaxArea,
	}
}

// ToService собирает запись из провалидированного input
func (in ServiceInput) ToService(id string) ds.Service {
	s := ds.Service{
		ID:              id,
		Name:            in.Name,
		Description:     in.Description,
		Available:       true,
		CalculationType: ds.CalculationType(in.CalculationType),
		MaxQuantity:     in.MaxQuantity,
		MinArea:         in.MinArea,
		MaxArea:         in.MaxArea,
	}
	if in.Price != nil {
		s.Price = *in.Price
	}
	if in.Duration != nil {
		s.Duration = int(*in.Duration)
	}
	if c, ok := in.Category.(string); ok {
		s.Category = c
	}
	if a, ok := in.Available.(bool); ok {
		s.Available = a
	}
	if in.Unit != nil {
		if u := strings.TrimSpace(*in.Unit); u != "" {
			s.Unit = &u
		}
	}
	return s
}

func PackageInputFrom(p ds.Package) PackageInput {
	duration := float64(p.Duration)
	return PackageInput{
		Name:        maps.Clone(p.Name),
		Description: maps.Clone(p.Description),
		Services:    append([]string{}, p.Services...),
		Price:       &p.Price,
		Discount:    &p.Discount,
		Duration:    &duration,
		Available:   p.Available,
	}
}

func (in PackageInput) ToPackage(id string) ds.Package {
	p := ds.Package{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Services:    append([]string{}, in.Services...),
		Available:   true,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.Duration != nil {
		p.Duration = int(*in.Duration)
	}
	if a, ok := in.Available.(bool); ok {
		p.Available = a
	}
	return p
}
