package forms

import (
	"net/url"

	"github.com/GoArmGo/CafeApp/internal/domain"
)

// CafeForm — форма добавления и редактирования кафе
type CafeForm struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description"`
	URL         string `form:"url" validate:"omitempty,url"`
	Address     string `form:"address" validate:"required"`
	City        string `form:"city" validate:"required"`
	ImageURL    string `form:"image_url" validate:"omitempty,url"`
}

// CafeFormFromValues читает поля формы из тела запроса.
func CafeFormFromValues(values url.Values) CafeForm {
	return CafeForm{
		Name:        field(values, "name"),
		Description: field(values, "description"),
		URL:         field(values, "url"),
		Address:     field(values, "address"),
		City:        field(values, "city"),
		ImageURL:    field(values, "image_url"),
	}
}

// CafeFormFromCafe заполняет форму текущими значениями кафе.
// Картинка-заглушка не показывается, чтобы пустое поле снова дало заглушку.
func CafeFormFromCafe(c domain.Cafe) CafeForm {
	image := c.ImageURL
	if image == domain.DefaultCafeImageURL {
		image = ""
	}
	return CafeForm{
		Name:        c.Name,
		Description: c.Description,
		URL:         c.URL,
		Address:     c.Address,
		City:        c.CityCode,
		ImageURL:    image,
	}
}

// Validate проверяет форму; city должен быть одним из известных сейчас городов.
func (f CafeForm) Validate(choices []domain.CityChoice) Errors {
	errs := check(f)
	if errs.Has("city") {
		return errs
	}

	for _, c := range choices {
		if c.Code == f.City {
			return errs
		}
	}
	errs["city"] = "Not a valid choice."
	return errs
}

// Input переводит форму в данные для usecase.
func (f CafeForm) Input() domain.CafeInput {
	return domain.CafeInput{
		Name:        f.Name,
		Description: f.Description,
		URL:         f.URL,
		Address:     f.Address,
		CityCode:    f.City,
		ImageURL:    f.ImageURL,
	}
}
