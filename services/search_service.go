package services

import (
	"context"

	"rclinic-backend/models"
	"rclinic-backend/store"
)

// Specialties offered in the search form.
var Specialties = []string{
	"Medicina General", "Cardiología", "Dermatología", "Gastroenterología", "Ginecología",
	"Neurología", "Oftalmología", "Pediatría", "Traumatología", "Urología",
}

// Cities in display order, and the sectors of each.
var (
	Cities        = []string{"Guayaquil", "Quito", "Cuenca"}
	SectorsByCity = map[string][]string{
		"Guayaquil": {"Norte", "Centro", "Sur", "Ceibos", "Kennedy", "Samborondón"},
		"Quito":     {"Norte", "Centro", "Sur", "Cumbayá", "Tumbaco"},
		"Cuenca":    {"Centro Histórico", "El Ejido", "Yanuncay"},
	}
)

type SearchCatalog struct {
	Cities      []string            `json:"cities"`
	Sectors     map[string][]string `json:"sectors"`
	Specialties []string            `json:"specialties"`
}

type SearchQuery struct {
	Ciudad       string `form:"ciudad"`
	Sector       string `form:"sector"`
	Especialidad string `form:"especialidad"`
}

type SearchResult struct {
	Specialist    models.Specialist     `json:"specialist"`
	MedicalCenter *models.MedicalCenter `json:"medicalCenter,omitempty"`
}

type SearchService struct {
	stores *store.Stores
}

func NewSearchService(stores *store.Stores) *SearchService {
	return &SearchService{stores: stores}
}

func (s *SearchService) Catalog() SearchCatalog {
	return SearchCatalog{Cities: Cities, Sectors: SectorsByCity, Specialties: Specialties}
}

// Search returns visible specialists working at a visible center in the
// requested city (and sector, when given), filtered by specialty when
// given. No match is an empty list, not an error.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	centers, err := store.Filter(ctx, s.stores.MedicalCenters, func(mc models.MedicalCenter) bool {
		return mc.Status == models.Visible &&
			mc.City == q.Ciudad &&
			(q.Sector == "" || mc.Sector == q.Sector)
	})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.MedicalCenter, len(centers))
	for _, mc := range centers {
		byID[mc.ID] = mc
	}

	specialists, err := store.Filter(ctx, s.stores.Specialists, func(sp models.Specialist) bool {
		_, inArea := byID[sp.MedicalCenterID]
		return sp.Status == models.Visible &&
			inArea &&
			(q.Especialidad == "" || sp.Specialty == q.Especialidad)
	})
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(specialists))
	for _, sp := range specialists {
		mc := byID[sp.MedicalCenterID]
		results = append(results, SearchResult{Specialist: sp, MedicalCenter: &mc})
	}
	return results, nil
}
