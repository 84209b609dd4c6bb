package ds

// Models перечисляет все модели для миграции
func Models() []any {
	return []any{
		&Service{},
		&Package{},
		&PortfolioItem{},
		&User{},
		&ContactMessage{},
		&ServiceRequest{},
		&Payment{},
		&Invoice{},
	}
}
