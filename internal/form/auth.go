package form

import "github.com/alexanderramin/tradieone/internal/domain"

// SignIn is the login form. Remember keeps the email for the next sign-in.
type SignIn struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"-"`
}

var signInMessages = map[string]string{
	"email":    msgInvalidEmail,
	"password": "Password is required",
}

func (f *SignIn) messages() map[string]string { return signInMessages }

func (f *SignIn) Validate() FieldErrors {
	trimAll(&f.Email)
	return check(f, signInMessages)
}

func (f *SignIn) Payload(string) any {
	return map[string]string{"username": f.Email, "password": f.Password}
}

type Register struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

var registerMessages = map[string]string{
	"email":           msgInvalidEmail,
	"password":        "Password is required",
	"confirmPassword": "Passwords do not match",
}

func (f *Register) messages() map[string]string { return registerMessages }

func (f *Register) Validate() FieldErrors {
	trimAll(&f.Email)
	return check(f, registerMessages)
}

func (f *Register) Payload(string) any {
	return map[string]string{"username": f.Email, "password": f.Password}
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

var forgotMessages = map[string]string{"email": msgInvalidEmail}

func (f *ForgotPassword) messages() map[string]string { return forgotMessages }

func (f *ForgotPassword) Validate() FieldErrors {
	trimAll(&f.Email)
	return check(f, forgotMessages)
}

func (f *ForgotPassword) Payload(string) any {
	return map[string]string{"username": f.Email}
}

// Profile edits the signed-in user's details.
type Profile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,min=6,max=20"`
	Company   string `json:"company"`
}

var profileMessages = map[string]string{
	"email":     msgInvalidEmail,
	"phone.min": msgPhoneMin,
	"phone.max": msgPhoneMax,
}

func ProfileFromRecord(r domain.Record) *Profile {
	return &Profile{
		FirstName: r.String("firstName"),
		LastName:  r.String("lastName"),
		Email:     r.String("email"),
		Phone:     r.String("phone"),
		Company:   domain.CoalesceField(r, "company", "companyName"),
	}
}

func (f *Profile) messages() map[string]string { return profileMessages }

func (f *Profile) Validate() FieldErrors {
	trimAll(&f.Email, &f.Phone)
	return check(f, profileMessages)
}

func (f *Profile) Payload(id string) any {
	return domain.UserProfile{
		ID:        domain.ID(id),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Company:   f.Company,
	}
}
