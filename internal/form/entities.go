package form

import (
	"time"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/normalize"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

var (
	msgInvalidEmail = "Invalid email address"
	msgPhoneMin     = "Phone must be at least 6 characters"
	msgPhoneMax     = "Phone too long"
)

type Client struct {
	ClientName    string `json:"clientName" validate:"notblank"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	AddressLine1  string `json:"addressLine1"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country"`
}

var clientMessages = map[string]string{
	"clientName": "Client name is required",
	"email":      msgInvalidEmail,
}

// ClientFromRecord prefills the edit form.
func ClientFromRecord(r domain.Record) *Client {
	n := normalize.Record(r)
	return &Client{
		ClientName:    n.String("clientName"),
		ContactPerson: n.String("contactPerson"),
		Email:         n.String("email"),
		Phone:         n.String("phone"),
		AddressLine1:  n.String("addressLine1"),
		AddressLine2:  n.String("addressLine2"),
		City:          n.String("city"),
		State:         n.String("state"),
		Postcode:      n.String("postcode"),
		Country:       n.String("country"),
	}
}

func (f *Client) messages() map[string]string { return clientMessages }

func (f *Client) Validate() FieldErrors {
	trimAll(&f.ClientName, &f.Email)
	return check(f, clientMessages)
}

func (f *Client) Payload(id string) any {
	return domain.Client{
		ID:            domain.ID(id),
		ClientName:    f.ClientName,
		ContactPerson: f.ContactPerson,
		Email:         f.Email,
		Phone:         f.Phone,
		Address1:      f.AddressLine1,
		Address2:      f.AddressLine2,
		City:          f.City,
		State:         normalize.State(f.State),
		Postcode:      f.Postcode,
		Country:       f.Country,
	}
}

type Employee struct {
	FirstName    string `json:"firstName" validate:"notblank"`
	LastName     string `json:"lastName" validate:"notblank"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"min=6,max=20"`
	Role         string `json:"role" validate:"notblank"`
	Status       string `json:"status" validate:"notblank"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Postcode     string `json:"postcode"`
}

var employeeMessages = map[string]string{
	"firstName": "First name is required",
	"lastName":  "Last name is required",
	"email":     msgInvalidEmail,
	"phone.min": msgPhoneMin,
	"phone.max": msgPhoneMax,
	"role":      "Role is required",
	"status":    "Status is required",
}

// NewEmployee returns a blank employee form with the default status.
func NewEmployee() *Employee {
	return &Employee{Status: string(domain.StatusActive)}
}

func EmployeeFromRecord(r domain.Record) *Employee {
	n := normalize.Record(r)
	return &Employee{
		FirstName:    n.String("firstName"),
		LastName:     n.String("lastName"),
		Email:        n.String("email"),
		Phone:        n.String("phone"),
		Role:         n.String("role"),
		Status:       domain.CoalesceStr(n.String("status"), string(domain.StatusActive)),
		AddressLine1: n.String("addressLine1"),
		AddressLine2: n.String("addressLine2"),
		City:         n.String("city"),
		State:        n.String("state"),
		Postcode:     n.String("postcode"),
	}
}

func (f *Employee) messages() map[string]string { return employeeMessages }

func (f *Employee) Validate() FieldErrors {
	trimAll(&f.Email, &f.Phone)
	return check(f, employeeMessages)
}

func (f *Employee) Payload(id string) any {
	return domain.Employee{
		ID:        domain.ID(id),
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Role:      f.Role,
		Status:    f.Status,
		Address1:  f.AddressLine1,
		Address2:  f.AddressLine2,
		City:      f.City,
		State:     normalize.State(f.State),
		Postcode:  f.Postcode,
	}
}

type Contractor struct {
	ContractorName string `json:"contractorName" validate:"notblank"`
	ContactPerson  string `json:"contactPerson"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,min=6,max=20"`
	Trade          string `json:"trade"`
	Status         string `json:"status"`
	AddressLine1   string `json:"addressLine1"`
	AddressLine2   string `json:"addressLine2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Postcode       string `json:"postcode"`
}

var contractorMessages = map[string]string{
	"contractorName": "Contractor name is required",
	"email":          msgInvalidEmail,
	"phone.min":      msgPhoneMin,
	"phone.max":      msgPhoneMax,
}

func NewContractor() *Contractor {
	return &Contractor{Status: string(domain.StatusActive)}
}

func ContractorFromRecord(r domain.Record) *Contractor {
	n := normalize.Record(r)
	return &Contractor{
		ContractorName: domain.CoalesceField(n, "contractorName", "name"),
		ContactPerson:  n.String("contactPerson"),
		Email:          n.String("email"),
		Phone:          n.String("phone"),
		Trade:          n.String("trade"),
		Status:         domain.CoalesceStr(n.String("status"), string(domain.StatusActive)),
		AddressLine1:   n.String("addressLine1"),
		AddressLine2:   n.String("addressLine2"),
		City:           n.String("city"),
		State:          n.String("state"),
		Postcode:       n.String("postcode"),
	}
}

func (f *Contractor) messages() map[string]string { return contractorMessages }

func (f *Contractor) Validate() FieldErrors {
	trimAll(&f.Email, &f.Phone)
	return check(f, contractorMessages)
}

func (f *Contractor) Payload(id string) any {
	return domain.Contractor{
		ID:             domain.ID(id),
		ContractorName: f.ContractorName,
		ContactPerson:  f.ContactPerson,
		Email:          f.Email,
		Phone:          f.Phone,
		Trade:          f.Trade,
		Status:         f.Status,
		Address1:       f.AddressLine1,
		Address2:       f.AddressLine2,
		City:           f.City,
		State:          normalize.State(f.State),
		Postcode:       f.Postcode,
	}
}

type Project struct {
	Name        string `json:"name" validate:"notblank"`
	Description string `json:"description"`
	ClientID    string `json:"clientId"`
	StartDate   string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status"`
}

var projectMessages = map[string]string{
	"name":      "Project name is required",
	"startDate": "Start date must be YYYY-MM-DD",
	"endDate":   "End date must be YYYY-MM-DD",
}

func ProjectFromRecord(r domain.Record) *Project {
	return &Project{
		Name:        domain.CoalesceField(r, "name", "projectName"),
		Description: r.String("description"),
		ClientID:    r.String("clientId"),
		StartDate:   dateOnly(r.String("startDate")),
		EndDate:     dateOnly(r.String("endDate")),
		Status:      r.String("status"),
	}
}

func (f *Project) messages() map[string]string { return projectMessages }

func (f *Project) Validate() FieldErrors {
	trimAll(&f.StartDate, &f.EndDate, &f.ClientID)
	return check(f, projectMessages)
}

func (f *Project) Payload(id string) any {
	return domain.Project{
		ID:          domain.ID(id),
		Name:        f.Name,
		ClientID:    domain.ID(f.ClientID),
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Status:      f.Status,
	}
}

// dateOnly trims an ISO timestamp to its date so it fits a date input.
func dateOnly(s string) string {
	if len(s) > len(dateLayout) && s[len(dateLayout)] == 'T' {
		if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return s[:len(dateLayout)]
		}
	}
	return s
}
