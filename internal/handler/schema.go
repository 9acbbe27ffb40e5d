package handler

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/qri-io/jsonschema"
)

const datePattern = `^[0-9]{4}-[0-9]{2}-[0-9]{2}`

var empresaSchema = []byte(`{
	"type": "object",
	"required": ["nombre", "giro", "tamaño", "teléfono", "fecha_registro", "ciudad", "dirección"],
	"properties": {
		"nombre": {"type": "string", "minLength": 1},
		"giro": {"type": "string", "minLength": 1},
		"tamaño": {"type": "string", "minLength": 1},
		"teléfono": {"type": "string", "minLength": 1},
		"fecha_registro": {"type": "string", "pattern": "` + datePattern + `"},
		"ciudad": {"type": "string", "minLength": 1},
		"dirección": {"type": "string", "minLength": 1}
	}
}`)

var vacanteSchema = []byte(`{
	"type": "object",
	"required": ["id_empresa", "puesto", "descripción", "salario", "modalidad", "especialidad", "fecha_publicación", "estatus"],
	"properties": {
		"id_empresa": {"type": "integer", "minimum": 1},
		"puesto": {"type": "string", "minLength": 1},
		"descripción": {"type": "string", "minLength": 1},
		"salario": {"type": "number", "minimum": 0.01},
		"modalidad": {"type": "string", "minLength": 1},
		"especialidad": {"type": "string", "minLength": 1},
		"fecha_publicación": {"type": "string", "pattern": "` + datePattern + `"},
		"estatus": {"type": "string", "minLength": 1}
	}
}`)

var postulacionSchema = []byte(`{
	"type": "object",
	"required": ["id_vacante", "nombre_postulante", "correo", "teléfono", "cv_url", "fecha_postulación", "estatus"],
	"properties": {
		"id_vacante": {"type": "integer", "minimum": 1},
		"nombre_postulante": {"type": "string", "minLength": 1},
		"correo": {"type": "string", "minLength": 1},
		"teléfono": {"type": "string", "minLength": 1},
		"cv_url": {"type": "string", "minLength": 1},
		"fecha_postulación": {"type": "string", "pattern": "` + datePattern + `"},
		"estatus": {"type": "string", "minLength": 1}
	}
}`)

// payloadValidator checks POST bodies against a compiled schema.
type payloadValidator struct {
	mu     sync.Mutex
	schema *jsonschema.Schema
}

func mustValidator(raw []byte) *payloadValidator {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		panic("invalid payload schema: " + err.Error())
	}
	return &payloadValidator{schema: rs}
}

var (
	empresaValidator     = mustValidator(empresaSchema)
	vacanteValidator     = mustValidator(vacanteSchema)
	postulacionValidator = mustValidator(postulacionSchema)
)

// Validate returns the schema violations of body. body must be valid JSON.
func (v *payloadValidator) Validate(ctx context.Context, body []byte) ([]jsonschema.KeyError, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.schema.ValidateBytes(ctx, body)
}
