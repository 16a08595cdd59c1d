package cli

import (
	"strings"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/normalize"
)

type fieldType int

const (
	fieldText fieldType = iota
	fieldLong
	fieldChoice // fixed options
	fieldState
	fieldCity // options depend on the state field
	fieldRef  // id of another kind
	fieldRefs // list of ids of another kind
)

// fieldSpec describes one editable field. CLI flags and TUI inputs are both
// generated from it.
type fieldSpec struct {
	name    string // JSON name, as used by form.Rule
	flag    string
	title   string
	typ     fieldType
	options []string
	ref     domain.Kind
	group   string

	str  func(form.Form) *string
	list func(form.Form) *[]string
	// hidden hides the input while it does not apply.
	hidden func(form.Form) bool
}

// entitySpec ties a kind to its form and fields.
type entitySpec struct {
	kind       domain.Kind
	blank      func() form.Form
	fromRecord func(domain.Record) form.Form
	fields     []fieldSpec
}

func (s entitySpec) field(name string) (fieldSpec, bool) {
	for _, f := range s.fields {
		if f.name == name {
			return f, true
		}
	}
	return fieldSpec{}, false
}

// refKinds lists the kinds whose lookups the form needs.
func (s entitySpec) refKinds() []domain.Kind {
	seen := make(map[domain.Kind]bool)
	var out []domain.Kind
	for _, f := range s.fields {
		if (f.typ == fieldRef || f.typ == fieldRefs) && !seen[f.ref] {
			seen[f.ref] = true
			out = append(out, f.ref)
		}
	}
	return out
}

func text[F any](name, title, group string, get func(*F) *string) fieldSpec {
	return fieldSpec{
		name:  name,
		flag:  flagName(name),
		title: title,
		typ:   fieldText,
		group: group,
		str:   func(f form.Form) *string { return get(any(f).(*F)) },
	}
}

func long[F any](name, title, group string, get func(*F) *string) fieldSpec {
	s := text(name, title, group, get)
	s.typ = fieldLong
	return s
}

func choice[F any](name, title, group string, options []string, get func(*F) *string) fieldSpec {
	s := text(name, title, group, get)
	s.typ = fieldChoice
	s.options = options
	return s
}

func state[F any](group string, get func(*F) *string) fieldSpec {
	s := text("state", "State", group, get)
	s.typ = fieldState
	s.options = normalize.States()
	return s
}

func ref[F any](name, title, group string, kind domain.Kind, get func(*F) *string) fieldSpec {
	s := text(name, title, group, get)
	s.typ = fieldRef
	s.ref = kind
	s.flag = flagName(strings.TrimSuffix(name, "Id"))
	return s
}

func refs[F any](name, title, group string, kind domain.Kind, get func(*F) *[]string) fieldSpec {
	return fieldSpec{
		name:  name,
		flag:  string(kind),
		title: title,
		typ:   fieldRefs,
		ref:   kind,
		group: group,
		list:  func(f form.Form) *[]string { return get(any(f).(*F)) },
	}
}

// flagName turns a JSON name into a flag: addressLine1 -> address-line1.
func flagName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func addressFields[F any](group string, line1, line2, city, st, postcode func(*F) *string) []fieldSpec {
	return []fieldSpec{
		text("addressLine1", "Address 1", group, line1),
		text("addressLine2", "Address 2", group, line2),
		text("city", "City", group, city),
		state(group, st),
		text("postcode", "Postcode", group, postcode),
	}
}

var entitySpecs = map[domain.Kind]entitySpec{
	domain.KindClients: {
		kind:       domain.KindClients,
		blank:      func() form.Form { return &form.Client{} },
		fromRecord: func(r domain.Record) form.Form { return form.ClientFromRecord(r) },
		fields: append(append([]fieldSpec{
			text("clientName", "Client name", "Client", func(f *form.Client) *string { return &f.ClientName }),
			text("contactPerson", "Contact person", "Client", func(f *form.Client) *string { return &f.ContactPerson }),
			text("email", "Email", "Client", func(f *form.Client) *string { return &f.Email }),
			text("phone", "Phone", "Client", func(f *form.Client) *string { return &f.Phone }),
		}, addressFields("Address",
			func(f *form.Client) *string { return &f.AddressLine1 },
			func(f *form.Client) *string { return &f.AddressLine2 },
			func(f *form.Client) *string { return &f.City },
			func(f *form.Client) *string { return &f.State },
			func(f *form.Client) *string { return &f.Postcode },
		)...), text("country", "Country", "Address", func(f *form.Client) *string { return &f.Country })),
	},
	domain.KindEmployees: {
		kind:       domain.KindEmployees,
		blank:      func() form.Form { return form.NewEmployee() },
		fromRecord: func(r domain.Record) form.Form { return form.EmployeeFromRecord(r) },
		fields: append([]fieldSpec{
			text("firstName", "First name", "Employee", func(f *form.Employee) *string { return &f.FirstName }),
			text("lastName", "Last name", "Employee", func(f *form.Employee) *string { return &f.LastName }),
			text("email", "Email", "Employee", func(f *form.Employee) *string { return &f.Email }),
			text("phone", "Phone", "Employee", func(f *form.Employee) *string { return &f.Phone }),
			text("role", "Role", "Employee", func(f *form.Employee) *string { return &f.Role }),
			choice("status", "Status", "Employee", domain.ValidWorkerStatuses, func(f *form.Employee) *string { return &f.Status }),
		}, addressFields("Address",
			func(f *form.Employee) *string { return &f.AddressLine1 },
			func(f *form.Employee) *string { return &f.AddressLine2 },
			func(f *form.Employee) *string { return &f.City },
			func(f *form.Employee) *string { return &f.State },
			func(f *form.Employee) *string { return &f.Postcode },
		)...),
	},
	domain.KindContractors: {
		kind:       domain.KindContractors,
		blank:      func() form.Form { return form.NewContractor() },
		fromRecord: func(r domain.Record) form.Form { return form.ContractorFromRecord(r) },
		fields: append([]fieldSpec{
			text("contractorName", "Contractor name", "Contractor", func(f *form.Contractor) *string { return &f.ContractorName }),
			text("contactPerson", "Contact person", "Contractor", func(f *form.Contractor) *string { return &f.ContactPerson }),
			text("email", "Email", "Contractor", func(f *form.Contractor) *string { return &f.Email }),
			text("phone", "Phone", "Contractor", func(f *form.Contractor) *string { return &f.Phone }),
			text("trade", "Trade", "Contractor", func(f *form.Contractor) *string { return &f.Trade }),
			choice("status", "Status", "Contractor", domain.ValidWorkerStatuses, func(f *form.Contractor) *string { return &f.Status }),
		}, addressFields("Address",
			func(f *form.Contractor) *string { return &f.AddressLine1 },
			func(f *form.Contractor) *string { return &f.AddressLine2 },
			func(f *form.Contractor) *string { return &f.City },
			func(f *form.Contractor) *string { return &f.State },
			func(f *form.Contractor) *string { return &f.Postcode },
		)...),
	},
	domain.KindProjects: {
		kind:       domain.KindProjects,
		blank:      func() form.Form { return &form.Project{} },
		fromRecord: func(r domain.Record) form.Form { return form.ProjectFromRecord(r) },
		fields: []fieldSpec{
			text("name", "Project name", "Project", func(f *form.Project) *string { return &f.Name }),
			long("description", "Description", "Project", func(f *form.Project) *string { return &f.Description }),
			ref("clientId", "Client", "Project", domain.KindClients, func(f *form.Project) *string { return &f.ClientID }),
			choice("status", "Status", "Project", domain.ValidProjectStatuses, func(f *form.Project) *string { return &f.Status }),
			text("startDate", "Start date (YYYY-MM-DD)", "Project", func(f *form.Project) *string { return &f.StartDate }),
			text("endDate", "End date (YYYY-MM-DD)", "Project", func(f *form.Project) *string { return &f.EndDate }),
		},
	},
	domain.KindJobs: {
		kind:       domain.KindJobs,
		blank:      func() form.Form { return form.NewJob() },
		fromRecord: func(r domain.Record) form.Form { return form.JobFromRecord(r) },
		fields:     jobFields(),
	},
}

func jobFields() []fieldSpec {
	city := text("city", "City", "Location", func(f *form.Job) *string { return &f.City })
	city.typ = fieldCity

	cityOther := text("cityOther", "City name", "Other city", func(f *form.Job) *string { return &f.CityOther })
	cityOther.hidden = func(f form.Form) bool { return f.(*form.Job).City != normalize.OtherCity }

	return []fieldSpec{
		text("title", "Job title", "Job", func(f *form.Job) *string { return &f.Title }),
		long("description", "Description", "Job", func(f *form.Job) *string { return &f.Description }),
		ref("clientId", "Client", "Job", domain.KindClients, func(f *form.Job) *string { return &f.ClientID }),
		ref("projectId", "Project", "Job", domain.KindProjects, func(f *form.Job) *string { return &f.ProjectID }),
		choice("priority", "Priority", "Job", domain.ValidPriorities, func(f *form.Job) *string { return &f.Priority }),
		choice("status", "Status", "Job", domain.ValidJobStatuses, func(f *form.Job) *string { return &f.Status }),

		text("locationName", "Location name", "Location", func(f *form.Job) *string { return &f.LocationName }),
		text("addressLine1", "Address 1", "Location", func(f *form.Job) *string { return &f.AddressLine1 }),
		text("addressLine2", "Address 2", "Location", func(f *form.Job) *string { return &f.AddressLine2 }),
		state("Location", func(f *form.Job) *string { return &f.State }),
		city,
		cityOther,
		text("postcode", "Postcode", "Location", func(f *form.Job) *string { return &f.Postcode }),
		text("country", "Country", "Location", func(f *form.Job) *string { return &f.Country }),

		text("startDate", "Start date (YYYY-MM-DD)", "Schedule", func(f *form.Job) *string { return &f.StartDate }),
		text("endDate", "End date (YYYY-MM-DD)", "Schedule", func(f *form.Job) *string { return &f.EndDate }),
		text("startTime", "Start hour (HH:MM)", "Schedule", func(f *form.Job) *string { return &f.StartTime }),
		text("finishTime", "End hour (HH:MM)", "Schedule", func(f *form.Job) *string { return &f.FinishTime }),

		refs("assignedEmployeeIds", "Employees", "Workers", domain.KindEmployees, func(f *form.Job) *[]string { return &f.AssignedEmployeeIDs }),
		refs("assignedContractorIds", "Contractors", "Workers", domain.KindContractors, func(f *form.Job) *[]string { return &f.AssignedContractorIDs }),
	}
}
