package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("record not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, first_name, last_name, email, COALESCE(phone, ''), COALESCE(trade, ''), status, created_at
    FROM employees
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone, &emp.Trade, &emp.Status, &emp.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	var emp Employee
	err := s.DB.QueryRow(ctx, `
    SELECT id, first_name, last_name, email, COALESCE(phone, ''), COALESCE(trade, ''), status, created_at
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone, &emp.Trade, &emp.Status, &emp.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return emp, err
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (first_name, last_name, email, phone, trade, status)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Trade, emp.Status).Scan(&id)
	return id, err
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, emp Employee) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, email = $4, phone = $5, trade = $6, status = $7, updated_at = now()
    WHERE id = $1
  `, id, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.Trade, emp.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]Customer, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(company_name, ''), first_name, last_name, email,
           COALESCE(phone, ''), COALESCE(street, ''), COALESCE(postal_code, ''), COALESCE(city, ''), created_at
    FROM customers
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Street, &c.PostalCode, &c.City, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) CreateCustomer(ctx context.Context, c Customer) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO customers (company_name, first_name, last_name, email, phone, street, postal_code, city)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id
  `, c.CompanyName, c.FirstName, c.LastName, c.Email, c.Phone, c.Street, c.PostalCode, c.City).Scan(&id)
	return id, err
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, c Customer) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE customers
    SET company_name = $2, first_name = $3, last_name = $4, email = $5,
        phone = $6, street = $7, postal_code = $8, city = $9, updated_at = now()
    WHERE id = $1
  `, id, c.CompanyName, c.FirstName, c.LastName, c.Email, c.Phone, c.Street, c.PostalCode, c.City)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, COALESCE(customer_id::text, ''), status, start_date, end_date, created_at
    FROM projects
    ORDER BY created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.CustomerID, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	var p Project
	err := s.DB.QueryRow(ctx, `
    SELECT id, title, COALESCE(customer_id::text, ''), status, start_date, end_date, created_at
    FROM projects
    WHERE id = $1
  `, id).Scan(&p.ID, &p.Title, &p.CustomerID, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

func (s *Store) CreateProject(ctx context.Context, p Project) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO projects (title, customer_id, status, start_date, end_date)
    VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5)
    RETURNING id
  `, p.Title, p.CustomerID, p.Status, p.StartDate, p.EndDate).Scan(&id)
	return id, err
}

func (s *Store) UpdateProject(ctx context.Context, id string, p Project) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE projects
    SET title = $2, customer_id = NULLIF($3, '')::uuid, status = $4, start_date = $5, end_date = $6, updated_at = now()
    WHERE id = $1
  `, id, p.Title, p.CustomerID, p.Status, p.StartDate, p.EndDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
