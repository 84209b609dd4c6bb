package quote

// PricingConfig содержит константы правил расчета
type PricingConfig struct {
	FreeMiles         float64 // расстояние без доплаты за выезд
	VehicleMPG        float64
	GasPricePerGallon float64
	TravelMarkup      float64 // множитель к стоимости бензина
	LaborRate         float64 // долларов в час для почасовых услуг
	TaxRate           float64
}

func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeMiles:         5,
		VehicleMPG:        23,
		GasPricePerGallon: 4.00,
		TravelMarkup:      1.5,
		LaborRate:         25,
		TaxRate:           0.08,
	}
}
