package api

import (
	"fmt"
	"net/url"

	"github.com/alexanderramin/tradieone/internal/domain"
)

// Resource describes the endpoints of one entity kind. The backend is not
// uniform: some kinds take the id in the update body rather than the path,
// and clients are deleted through an "id=" path segment.
type Resource struct {
	Kind         domain.Kind
	Base         string
	UpdateInBody bool
	DeletePrefix string
}

var resources = map[domain.Kind]Resource{
	domain.KindClients:     {Kind: domain.KindClients, Base: "/api/Clients", DeletePrefix: "id="},
	domain.KindEmployees:   {Kind: domain.KindEmployees, Base: "/api/Employees", UpdateInBody: true},
	domain.KindContractors: {Kind: domain.KindContractors, Base: "/api/Contractors", UpdateInBody: true},
	domain.KindJobs:        {Kind: domain.KindJobs, Base: "/api/Jobs", UpdateInBody: true},
	domain.KindProjects:    {Kind: domain.KindProjects, Base: "/api/Projects"},
}

// ResourceFor returns the endpoint layout for kind.
func ResourceFor(kind domain.Kind) (Resource, error) {
	r, ok := resources[kind]
	if !ok {
		return Resource{}, fmt.Errorf("no API resource for %q", kind)
	}
	return r, nil
}

func (r Resource) ListPath() string { return r.Base + "/GetList" }

func (r Resource) ItemPath(id string) string { return r.Base + "/" + url.PathEscape(id) }

func (r Resource) CreatePath() string { return r.Base }

func (r Resource) UpdatePath(id string) string {
	if r.UpdateInBody {
		return r.Base
	}
	return r.ItemPath(id)
}

func (r Resource) DeletePath(id string) string {
	return r.Base + "/" + r.DeletePrefix + url.PathEscape(id)
}

const profilePath = "/api/UserProfile"
