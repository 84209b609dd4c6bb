// Package distance определяет расстояние в милях от базового адреса компании до адреса клиента.
package distance

import (
	"context"
	"fmt"
	"strings"

	"shiningstar/internal/app/ds"
)

const metersPerMile = 1609.344

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Resolver возвращает мили или ошибку, оборачивающую ds.ErrDistanceUnavailable
type Resolver interface {
	Resolve(ctx context.Context, origin, destination string) (float64, error)
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ds.ErrDistanceUnavailable, fmt.Sprintf(format, args...))
}

// NormalizeAddress приводит адрес к нижнему регистру, схлопывает пробелы и убирает пунктуацию в конце,
// чтобы одинаковые адреса давали одну запись в таблице и один ключ кэша.
func NormalizeAddress(addr string) string {
	addr = strings.ToLower(strings.Join(strings.Fields(addr), " "))
	return strings.TrimRight(addr, " .,;")
}
