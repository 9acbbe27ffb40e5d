package company

import (
	"github.com/golang-cafe/job-portal/internal/database"
)

// Sizes offered by the registration form.
var Sizes = []string{"Pequeña", "Mediana", "Grande"}

// Cities suggested by the registration form.
var Cities = []string{"Madrid", "Barcelona", "Valencia", "Sevilla", "Bilbao", "Málaga", "Murcia", "Zaragoza"}

type Company struct {
	ID           int64         `json:"id_empresa"`
	Name         string        `json:"nombre"`
	Industry     string        `json:"giro"`
	Size         string        `json:"tamaño"`
	Phone        string        `json:"teléfono"`
	RegisteredAt database.Date `json:"fecha_registro"`
	City         string        `json:"ciudad"`
	Address      string        `json:"dirección"`
}

// MissingFields lists the json names of required fields that are empty.
func (c Company) MissingFields() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "nombre")
	}
	if c.Industry == "" {
		missing = append(missing, "giro")
	}
	if c.Size == "" {
		missing = append(missing, "tamaño")
	}
	if c.Phone == "" {
		missing = append(missing, "teléfono")
	}
	if c.RegisteredAt.IsZero() {
		missing = append(missing, "fecha_registro")
	}
	if c.City == "" {
		missing = append(missing, "ciudad")
	}
	if c.Address == "" {
		missing = append(missing, "dirección")
	}
	return missing
}
