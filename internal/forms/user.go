package forms

import (
	"net/url"

	"github.com/GoArmGo/CafeApp/internal/domain"
)

// SignupForm — регистрация.
// image_url необязателен, как и во всех остальных формах: пустое значение даёт аватар по умолчанию.
type SignupForm struct {
	Username    string `form:"username" validate:"required,max=20"`
	FirstName   string `form:"first_name" validate:"required,max=20"`
	LastName    string `form:"last_name" validate:"required,max=20"`
	Description string `form:"description"`
	Email       string `form:"email" validate:"required,email,max=50"`
	Password    string `form:"password" validate:"required,min=6,maxbytes=72"`
	ImageURL    string `form:"image_url" validate:"omitempty,url"`
}

func SignupFormFromValues(values url.Values) SignupForm {
	return SignupForm{
		Username:    field(values, "username"),
		FirstName:   field(values, "first_name"),
		LastName:    field(values, "last_name"),
		Description: field(values, "description"),
		Email:       field(values, "email"),
		// пароль не обрезаем: пробелы — часть пароля
		Password: values.Get("password"),
		ImageURL: field(values, "image_url"),
	}
}

func (f SignupForm) Validate() Errors {
	return check(f)
}

func (f SignupForm) Params() domain.RegisterParams {
	return domain.RegisterParams{
		Username:    f.Username,
		Email:       f.Email,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Description: f.Description,
		Password:    f.Password,
		ImageURL:    f.ImageURL,
	}
}

// LoginForm — вход
type LoginForm struct {
	Username string `form:"username" validate:"required,max=20"`
	Password string `form:"password" validate:"required,min=6,maxbytes=72"`
}

func LoginFormFromValues(values url.Values) LoginForm {
	return LoginForm{
		Username: field(values, "username"),
		Password: values.Get("password"),
	}
}

func (f LoginForm) Validate() Errors {
	return check(f)
}

// ProfileForm — редактирование профиля; username и пароль здесь не меняются
type ProfileForm struct {
	FirstName   string `form:"first_name" validate:"required,max=20"`
	LastName    string `form:"last_name" validate:"required,max=20"`
	Description string `form:"description"`
	Email       string `form:"email" validate:"required,email,max=50"`
	ImageURL    string `form:"image_url" validate:"omitempty,url"`
}

func ProfileFormFromValues(values url.Values) ProfileForm {
	return ProfileForm{
		FirstName:   field(values, "first_name"),
		LastName:    field(values, "last_name"),
		Description: field(values, "description"),
		Email:       field(values, "email"),
		ImageURL:    field(values, "image_url"),
	}
}

// ProfileFormFromUser заполняет форму текущими данными пользователя.
func ProfileFormFromUser(u domain.User) ProfileForm {
	image := u.ImageURL
	if image == domain.DefaultUserImageURL {
		image = ""
	}
	return ProfileForm{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Description: u.Description,
		Email:       u.Email,
		ImageURL:    image,
	}
}

func (f ProfileForm) Validate() Errors {
	return check(f)
}

func (f ProfileForm) Input() domain.ProfileInput {
	return domain.ProfileInput{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Description: f.Description,
		Email:       f.Email,
		ImageURL:    f.ImageURL,
	}
}
