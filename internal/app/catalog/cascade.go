package catalog

import "shiningstar/internal/app/ds"

// RemoveServiceFromPackages возвращает копии пакетов, ссылавшихся на serviceID, уже без него.
// Пакеты без этой услуги не возвращаются.
func RemoveServiceFromPackages(packages []ds.Package, serviceID string) []ds.Package {
	var changed []ds.Package
	for _, p := range packages {
		if !p.HasService(serviceID) {
			continue
		}
		kept := make([]string, 0, len(p.Services))
		for _, id := range p.Services {
			if id != serviceID {
				kept = append(kept, id)
			}
		}
		p.Services = kept
		changed = append(changed, p)
	}
	return changed
}
