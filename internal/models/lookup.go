package models

// Genre is a row of the fixed genre lookup table.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// MpaRating is a row of the fixed MPA-style rating lookup table.
type MpaRating struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Seed data for the lookup tables; the migration inserts the same rows.
var (
	SeedGenres = []Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}

	SeedMpaRatings = []MpaRating{
		{ID: 1, Name: "G", Description: "Нет возрастных ограничений"},
		{ID: 2, Name: "PG", Description: "Детям рекомендуется смотреть с родителями"},
		{ID: 3, Name: "PG-13", Description: "Детям до 13 лет просмотр не желателен"},
		{ID: 4, Name: "R", Description: "Лицам до 17 лет только в присутствии взрослого"},
		{ID: 5, Name: "NC-17", Description: "Лицам до 18 лет просмотр запрещён"},
	}
)
