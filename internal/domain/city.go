package domain

// City представляет город, к которому привязаны кафе.
// Соответствует таблице 'cities', справочные данные.
type City struct {
	Code  string `json:"code" db:"code" gorm:"primaryKey"`
	Name  string `json:"name" db:"name"`
	State string `json:"state" db:"state"`
}

func (City) TableName() string {
	return "cities"
}

// CityChoice — пара (код, название) для выпадающего списка в форме кафе
type CityChoice struct {
	Code string
	Name string
}

// CityChoices строит список вариантов для формы из списка городов.
func CityChoices(cities []City) []CityChoice {
	choices := make([]CityChoice, 0, len(cities))
	for _, c := range cities {
		choices = append(choices, CityChoice{Code: c.Code, Name: c.Name})
	}
	return choices
}
