package domain

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindClients     Kind = "clients"
	KindJobs        Kind = "jobs"
	KindEmployees   Kind = "employees"
	KindContractors Kind = "contractors"
	KindProjects    Kind = "projects"
)

// Kinds lists the managed entity kinds in menu order.
func Kinds() []Kind {
	return []Kind{KindClients, KindJobs, KindEmployees, KindContractors, KindProjects}
}

// ParseKind accepts a plural or singular kind name in any casing.
func ParseKind(s string) (Kind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if v == string(k) || v == k.Singular() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// Label is the capitalised plural used for page titles.
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Singular returns the lower-case singular noun ("client").
func (k Kind) Singular() string {
	return strings.TrimSuffix(string(k), "s")
}

type WorkerStatus string

const (
	StatusActive   WorkerStatus = "Active"
	StatusInactive WorkerStatus = "Inactive"
)

// ValidWorkerStatuses is the set accepted by employee and contractor forms.
var ValidWorkerStatuses = []string{string(StatusActive), string(StatusInactive)}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Low"
)

// ValidPriorities lists job priorities in display order.
var ValidPriorities = []string{string(PriorityHigh), string(PriorityNormal), string(PriorityLow)}

// JobStatusOpen is the status a new job gets when none is chosen.
const JobStatusOpen = "Open"

// ValidJobStatuses is offered by the job form; the backend may return others.
var ValidJobStatuses = []string{"Open", "Scheduled", "In Progress", "On Hold", "Completed", "Cancelled"}

// ValidProjectStatuses is offered by the project form.
var ValidProjectStatuses = []string{"Planned", "Active", "In-Progress", "On Hold", "Completed"}

// DefaultCountry is used when a job has no country.
const DefaultCountry = "Australia"
