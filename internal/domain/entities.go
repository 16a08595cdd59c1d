package domain

// Client is the create/update payload for /api/Clients.
type Client struct {
	ID            ID     `json:"id,omitempty"`
	ClientName    string `json:"clientName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address1      string `json:"address1"`
	Address2      string `json:"address2"`
	City          string `json:"city"`
	State         string `json:"state"`
	Postcode      string `json:"postcode"`
	Country       string `json:"country,omitempty"`
}

type Employee struct {
	ID        ID     `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
}

type Contractor struct {
	ID             ID     `json:"id,omitempty"`
	ContractorName string `json:"contractorName"`
	ContactPerson  string `json:"contactPerson"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Trade          string `json:"trade"`
	Status         string `json:"status"`
	Address1       string `json:"address1"`
	Address2       string `json:"address2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Postcode       string `json:"postcode"`
}

// Job mirrors the backend job contract. Numeric ids are sent as 0 when
// unset, as the API expects.
type Job struct {
	ID                    int    `json:"id"`
	CompanyID             int    `json:"companyId"`
	ProjectID             int    `json:"projectId"`
	ClientID              int    `json:"clientId"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Status                string `json:"status"`
	Priority              string `json:"priority"`
	StartDate             string `json:"startDate"`
	EndDate               string `json:"endDate"`
	StartTime             string `json:"startTime"`
	FinishTime            string `json:"finishTime"`
	LocationName          string `json:"locationName"`
	AddressLine1          string `json:"addressLine1"`
	AddressLine2          string `json:"addressLine2"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	Postcode              string `json:"postcode"`
	Country               string `json:"country"`
	CreatedBy             int    `json:"createdBy"`
	CreatedOnUtc          string `json:"createdOnUtc"`
	LastUpdatedUtc        string `json:"lastUpdatedUtc"`
	AssignedEmployeeIDs   []ID   `json:"assignedEmployeeIds"`
	AssignedContractorIDs []ID   `json:"assignedContractorIds"`
}

type Project struct {
	ID          ID     `json:"id,omitempty"`
	Name        string `json:"name"`
	ClientID    ID     `json:"clientId,omitempty"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Status      string `json:"status"`
}

type UserProfile struct {
	ID        ID     `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
}
