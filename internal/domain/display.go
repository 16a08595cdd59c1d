package domain

import "strings"

// DisplayName is the human label of a record of kind, falling back to its
// id when no name field is set.
func DisplayName(kind Kind, r Record) string {
	var name string
	switch kind {
	case KindClients:
		name = CoalesceField(r, "clientName", "name")
	case KindEmployees:
		name = strings.TrimSpace(r.String("firstName") + " " + r.String("lastName"))
		if name == "" {
			name = r.String("name")
		}
	case KindContractors:
		name = CoalesceField(r, "contractorName", "name")
	case KindJobs:
		name = CoalesceField(r, "title", "name")
	case KindProjects:
		name = CoalesceField(r, "name", "projectName")
	}
	if name == "" {
		return "#" + r.ID()
	}
	return name
}
