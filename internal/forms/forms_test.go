package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoArmGo/CafeApp/internal/domain"
)

var testChoices = []domain.CityChoice{
	{Code: "sf", Name: "San Francisco"},
	{Code: "berk", Name: "Berkeley"},
}

func TestCafeForm_Validate(t *testing.T) {
	valid := url.Values{
		"name":        {"Reveille"},
		"description": {"Good coffee"},
		"url":         {"https://reveille.example.com"},
		"address":     {"200 Columbus Ave"},
		"city":        {"sf"},
		"image_url":   {""},
	}

	tests := []struct {
		name     string
		modify   func(v url.Values)
		wantErrs map[string]string
	}{
		{
			name:     "Valid Submission",
			modify:   func(v url.Values) {},
			wantErrs: map[string]string{},
		},
		{
			name:     "Missing Name",
			modify:   func(v url.Values) { v.Set("name", "   ") },
			wantErrs: map[string]string{"name": "This field is required."},
		},
		{
			name:     "Missing Address",
			modify:   func(v url.Values) { v.Del("address") },
			wantErrs: map[string]string{"address": "This field is required."},
		},
		{
			name:     "Optional URL Left Blank",
			modify:   func(v url.Values) { v.Set("url", "") },
			wantErrs: map[string]string{},
		},
		{
			name:     "Malformed URL",
			modify:   func(v url.Values) { v.Set("url", "not a url") },
			wantErrs: map[string]string{"url": "Invalid URL."},
		},
		{
			name:     "Malformed Image URL",
			modify:   func(v url.Values) { v.Set("image_url", "/static/images/default-cafe.jpg") },
			wantErrs: map[string]string{"image_url": "Invalid URL."},
		},
		{
			name:     "Unknown City",
			modify:   func(v url.Values) { v.Set("city", "nyc") },
			wantErrs: map[string]string{"city": "Not a valid choice."},
		},
		{
			name:     "Missing City",
			modify:   func(v url.Values) { v.Set("city", "") },
			wantErrs: map[string]string{"city": "This field is required."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for k, v := range valid {
				values[k] = append([]string(nil), v...)
			}
			tt.modify(values)

			errs := CafeFormFromValues(values).Validate(testChoices)
			assert.Equal(t, Errors(tt.wantErrs), errs)
		})
	}
}

func TestCafeForm_ValidateAgainstCurrentChoices(t *testing.T) {
	form := CafeForm{Name: "Cafe", Address: "1 Main St", City: "oak"}

	assert.True(t, form.Validate(testChoices).Has("city"))
	assert.True(t, form.Validate(append(testChoices, domain.CityChoice{Code: "oak", Name: "Oakland"})).Valid())
}

func TestCafeFormFromCafe_HidesDefaultImage(t *testing.T) {
	cafe := domain.Cafe{
		Name:     "Reveille",
		Address:  "200 Columbus Ave",
		CityCode: "sf",
		ImageURL: domain.DefaultCafeImageURL,
	}

	form := CafeFormFromCafe(cafe)
	assert.Empty(t, form.ImageURL)
	assert.Equal(t, "sf", form.City)
	assert.True(t, form.Validate(testChoices).Valid())

	cafe.ImageURL = "https://img.example.com/r.jpg"
	assert.Equal(t, "https://img.example.com/r.jpg", CafeFormFromCafe(cafe).ImageURL)
}

func TestSignupForm_Validate(t *testing.T) {
	base := SignupForm{
		Username:  "coffeefan",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
	}

	tests := []struct {
		name     string
		modify   func(f *SignupForm)
		wantErrs map[string]string
	}{
		{
			name:     "Valid Without Image",
			modify:   func(f *SignupForm) {},
			wantErrs: map[string]string{},
		},
		{
			name:     "Username Too Long",
			modify:   func(f *SignupForm) { f.Username = strings.Repeat("u", 21) },
			wantErrs: map[string]string{"username": "Field cannot be longer than 20 characters."},
		},
		{
			name:     "Username At Limit",
			modify:   func(f *SignupForm) { f.Username = strings.Repeat("u", 20) },
			wantErrs: map[string]string{},
		},
		{
			name:     "Short Password",
			modify:   func(f *SignupForm) { f.Password = "12345" },
			wantErrs: map[string]string{"password": "Field must be at least 6 characters long."},
		},
		{
			name:     "Password Over Bcrypt Limit",
			modify:   func(f *SignupForm) { f.Password = strings.Repeat("é", 37) },
			wantErrs: map[string]string{"password": "Field cannot be longer than 72 bytes."},
		},
		{
			name:     "Password At Bcrypt Limit",
			modify:   func(f *SignupForm) { f.Password = strings.Repeat("p", 72) },
			wantErrs: map[string]string{},
		},
		{
			name:     "Email Too Long",
			modify:   func(f *SignupForm) { f.Email = strings.Repeat("a", 39) + "@example.com" },
			wantErrs: map[string]string{"email": "Field cannot be longer than 50 characters."},
		},
		{
			name:     "Bad Email",
			modify:   func(f *SignupForm) { f.Email = "ada-at-example" },
			wantErrs: map[string]string{"email": "Invalid email address."},
		},
		{
			name:     "Bad Image URL",
			modify:   func(f *SignupForm) { f.ImageURL = "picture" },
			wantErrs: map[string]string{"image_url": "Invalid URL."},
		},
		{
			name: "Missing Names",
			modify: func(f *SignupForm) {
				f.FirstName = ""
				f.LastName = ""
			},
			wantErrs: map[string]string{
				"first_name": "This field is required.",
				"last_name":  "This field is required.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := base
			tt.modify(&form)
			assert.Equal(t, Errors(tt.wantErrs), form.Validate())
		})
	}
}

func TestLoginForm_Validate(t *testing.T) {
	assert.True(t, LoginForm{Username: "ada", Password: "secret1"}.Validate().Valid())

	errs := LoginForm{}.Validate()
	assert.Equal(t, "This field is required.", errs.Get("username"))
	assert.Equal(t, "This field is required.", errs.Get("password"))

	errs = LoginForm{Username: "ada", Password: "123"}.Validate()
	assert.True(t, errs.Has("password"))
	assert.False(t, errs.Has("username"))

	errs = LoginForm{Username: "ada", Password: strings.Repeat("p", 73)}.Validate()
	assert.Equal(t, "Field cannot be longer than 72 bytes.", errs.Get("password"))
}

func TestLoginFormFromValues_KeepsPasswordWhitespace(t *testing.T) {
	form := LoginFormFromValues(url.Values{"username": {" ada "}, "password": {" pass word "}})
	assert.Equal(t, "ada", form.Username)
	assert.Equal(t, " pass word ", form.Password)
}

func TestProfileForm(t *testing.T) {
	user := domain.User{
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		ImageURL:  domain.DefaultUserImageURL,
	}

	form := ProfileFormFromUser(user)
	assert.Empty(t, form.ImageURL)
	assert.True(t, form.Validate().Valid())

	form.Email = ""
	assert.Equal(t, "This field is required.", form.Validate().Get("email"))

	form.Email = strings.Repeat("a", 39) + "@example.com"
	assert.Equal(t, "Field cannot be longer than 50 characters.", form.Validate().Get("email"))

	in := ProfileFormFromValues(url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Byron"},
		"email":      {"ada@example.com"},
	}).Input()
	assert.Equal(t, "Byron", in.LastName)
	assert.Empty(t, in.ImageURL)
}
