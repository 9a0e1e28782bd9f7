package core

import "time"

type Employee struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Trade     string    `json:"trade"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type Customer struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName,omitempty"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Street      string    `json:"street"`
	PostalCode  string    `json:"postalCode"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Project struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	CustomerID string     `json:"customerId"`
	Status     string     `json:"status"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)

const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)
