package company_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/golang-cafe/job-portal/internal/company"
	"github.com/golang-cafe/job-portal/internal/database"
	"github.com/golang-cafe/job-portal/internal/database/databasetest"
	"github.com/pkg/errors"
)

func acme() company.Company {
	return company.Company{
		Name:         "Acme",
		Industry:     "Tech",
		Size:         "Pequeña",
		Phone:        "+1",
		RegisteredAt: database.NewDate(2024, 1, 1),
		City:         "X",
		Address:      "Y",
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := company.NewRepository(databasetest.New(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, acme())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id < 1 {
		t.Fatalf("expected generated id, got %d", id)
	}
	got, err := repo.CompanyByID(ctx, id)
	if err != nil {
		t.Fatalf("CompanyByID: %v", err)
	}
	want := acme()
	want.ID = id
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCompanyByIDNotFound(t *testing.T) {
	repo := company.NewRepository(databasetest.New(t))
	_, err := repo.CompanyByID(context.Background(), 999999)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestCompaniesOrderedByID(t *testing.T) {
	repo := company.NewRepository(databasetest.New(t))
	ctx := context.Background()

	list, err := repo.Companies(ctx)
	if err != nil {
		t.Fatalf("Companies: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}
	for _, name := range []string{"Uno", "Dos", "Tres"} {
		c := acme()
		c.Name = name
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	list, err = repo.Companies(ctx)
	if err != nil {
		t.Fatalf("Companies: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Uno" || list[2].Name != "Tres" {
		t.Fatalf("unexpected listing %+v", list)
	}
	if list[0].ID >= list[1].ID {
		t.Fatalf("listing not ordered by id")
	}
}

func TestMissingFields(t *testing.T) {
	if m := acme().MissingFields(); len(m) != 0 {
		t.Fatalf("complete company reported missing %v", m)
	}
	c := acme()
	c.Phone = ""
	c.RegisteredAt = database.Date{}
	m := c.MissingFields()
	if len(m) != 2 || m[0] != "teléfono" || m[1] != "fecha_registro" {
		t.Fatalf("MissingFields = %v", m)
	}
}
