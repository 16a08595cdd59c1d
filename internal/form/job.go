package form

import (
	"strings"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/normalize"
)

// Job is the job editor. Fields beyond the visible inputs are carried from
// the record being edited so an update does not clear them.
type Job struct {
	Title                 string   `json:"title" validate:"notblank"`
	LocationName          string   `json:"locationName" validate:"notblank"`
	ClientID              string   `json:"clientId" validate:"notblank"`
	ProjectID             string   `json:"projectId"`
	AddressLine1          string   `json:"addressLine1" validate:"notblank"`
	AddressLine2          string   `json:"addressLine2"`
	Description           string   `json:"description"`
	State                 string   `json:"state" validate:"notblank"`
	City                  string   `json:"city" validate:"notblank"`
	CityOther             string   `json:"cityOther" validate:"required_if=City Other"`
	Postcode              string   `json:"postcode" validate:"min=3"`
	Country               string   `json:"country"`
	StartDate             string   `json:"startDate" validate:"notblank,datetime=2006-01-02"`
	EndDate               string   `json:"endDate" validate:"notblank,datetime=2006-01-02"`
	StartTime             string   `json:"startTime" validate:"notblank,datetime=15:04"`
	FinishTime            string   `json:"finishTime" validate:"notblank,datetime=15:04"`
	Priority              string   `json:"priority" validate:"notblank"`
	Status                string   `json:"status"`
	AssignedEmployeeIDs   []string `json:"assignedEmployeeIds"`
	AssignedContractorIDs []string `json:"assignedContractorIds"`

	CompanyID    string `json:"-"`
	CreatedBy    string `json:"-"`
	CreatedOnUtc string `json:"-"`
}

var jobMessages = map[string]string{
	"title":               "Job title is required",
	"locationName":        "Location is required",
	"clientId":            "Client is required",
	"addressLine1":        "Address 1 is required",
	"state":               "State is required",
	"city":                "City is required",
	"cityOther":           "City is required",
	"postcode":            "Postcode is required",
	"startDate":           "Start date is required",
	"startDate.datetime":  "Start date must be YYYY-MM-DD",
	"endDate":             "End date is required",
	"endDate.datetime":    "End date must be YYYY-MM-DD",
	"startTime":           "Start hour is required",
	"startTime.datetime":  "Start hour must be HH:MM",
	"finishTime":          "End hour is required",
	"finishTime.datetime": "End hour must be HH:MM",
	"priority":            "Priority is required",
}

// NewJob returns a blank job form with the default country, priority and
// status.
func NewJob() *Job {
	return &Job{
		Country:  domain.DefaultCountry,
		Priority: string(domain.PriorityNormal),
		Status:   domain.JobStatusOpen,
	}
}

// JobFromRecord prefills the edit form. A city outside the state's option
// list is kept as free text under Other.
func JobFromRecord(r domain.Record) *Job {
	n := normalize.Record(r)
	f := &Job{
		Title:                 n.String("title"),
		LocationName:          n.String("locationName"),
		ClientID:              n.String("clientId"),
		ProjectID:             n.String("projectId"),
		AddressLine1:          n.String("addressLine1"),
		AddressLine2:          n.String("addressLine2"),
		Description:           n.String("description"),
		State:                 n.String("state"),
		City:                  n.String("city"),
		Postcode:              n.String("postcode"),
		Country:               domain.CoalesceStr(n.String("country"), domain.DefaultCountry),
		StartDate:             dateOnly(n.String("startDate")),
		EndDate:               dateOnly(n.String("endDate")),
		StartTime:             hourMinute(n.String("startTime")),
		FinishTime:            hourMinute(n.String("finishTime")),
		Priority:              domain.CoalesceStr(n.String("priority"), string(domain.PriorityNormal)),
		Status:                domain.CoalesceStr(n.String("status"), domain.JobStatusOpen),
		AssignedEmployeeIDs:   stringList(n["assignedEmployeeIds"]),
		AssignedContractorIDs: stringList(n["assignedContractorIds"]),
		CompanyID:             n.String("companyId"),
		CreatedBy:             n.String("createdBy"),
		CreatedOnUtc:          n.String("createdOnUtc"),
	}
	if f.ClientID == "0" {
		f.ClientID = ""
	}
	if f.ProjectID == "0" {
		f.ProjectID = ""
	}
	if f.City != "" && f.City != normalize.OtherCity && !normalize.KnownCity(f.State, f.City) {
		f.CityOther = f.City
		f.City = normalize.OtherCity
	}
	return f
}

func (f *Job) messages() map[string]string { return jobMessages }

func (f *Job) Validate() FieldErrors {
	trimAll(&f.ClientID, &f.ProjectID, &f.Postcode, &f.CityOther,
		&f.StartDate, &f.EndDate, &f.StartTime, &f.FinishTime)
	return check(f, jobMessages)
}

// FinalCity is the city sent to the API.
func (f *Job) FinalCity() string {
	if f.City == normalize.OtherCity {
		return strings.TrimSpace(f.CityOther)
	}
	return f.City
}

func (f *Job) Payload(id string) any {
	stamp := now().UTC().Format("2006-01-02T15:04:05.000Z")
	created := f.CreatedOnUtc
	if created == "" {
		created = stamp
	}
	return domain.Job{
		ID:                    toIntOr0(id),
		CompanyID:             toIntOr0(f.CompanyID),
		ProjectID:             toIntOr0(f.ProjectID),
		ClientID:              toIntOr0(f.ClientID),
		Title:                 f.Title,
		Description:           f.Description,
		Status:                domain.CoalesceStr(f.Status, domain.JobStatusOpen),
		Priority:              f.Priority,
		StartDate:             f.StartDate,
		EndDate:               f.EndDate,
		StartTime:             f.StartTime,
		FinishTime:            f.FinishTime,
		LocationName:          f.LocationName,
		AddressLine1:          f.AddressLine1,
		AddressLine2:          f.AddressLine2,
		City:                  f.FinalCity(),
		State:                 normalize.State(f.State),
		Postcode:              f.Postcode,
		Country:               domain.CoalesceStr(f.Country, domain.DefaultCountry),
		CreatedBy:             toIntOr0(f.CreatedBy),
		CreatedOnUtc:          created,
		LastUpdatedUtc:        stamp,
		AssignedEmployeeIDs:   domain.IDs(f.AssignedEmployeeIDs),
		AssignedContractorIDs: domain.IDs(f.AssignedContractorIDs),
	}
}

// ProjectMatchesClient reports whether a project may be picked for a job of
// clientID: unassigned projects fit every client.
func ProjectMatchesClient(project domain.Record, clientID string) bool {
	pc := project.String("clientId")
	return clientID == "" || pc == "" || pc == "0" || pc == clientID
}

// hourMinute trims "HH:MM:SS" to "HH:MM".
func hourMinute(s string) string {
	if len(s) == len("15:04:05") && s[2] == ':' && s[5] == ':' {
		return s[:5]
	}
	return s
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := domain.ScalarString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
