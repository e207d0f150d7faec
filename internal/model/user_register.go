package model

import (
	"fmt"
	"strings"
	"time"
)

// UserRegister represents one survey submission as stored in the
// `user_registers` table. Emails are globally unique across all records.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – contact email, unique (stored lowercased and trimmed).
//	Cedula       – national identity document number.
//	Edad         – age in years, 1..120.
//	Genero       – one of the values in ValidGeneros.
//	SO           – mobile operating system of the respondent.
//	Movilidad    – primary means of transport.
//	TiempoDiario – daily commute time bracket.
//	Universidad  – university of the respondent.
//	Carrera      – degree program.
//	Telefono     – contact phone number.
//	CreatedAt    – creation timestamp.
//	UpdatedAt    – last update timestamp.
type UserRegister struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	Cedula       string    `json:"cedula"`
	Edad         int       `json:"edad"`
	Genero       string    `json:"genero"`
	SO           string    `json:"so"`
	Movilidad    string    `json:"movilidad"`
	TiempoDiario string    `json:"tiempoDiario"`
	Universidad  string    `json:"universidad"`
	Carrera      string    `json:"carrera"`
	Telefono     string    `json:"telefono"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidGeneros is the closed set of accepted values for the genero field.
var ValidGeneros = map[string]bool{
	"masculino":         true,
	"femenino":          true,
	"otro":              true,
	"prefiero-no-decir": true,
}

// Age bounds for the edad field.
const (
	MinEdad = 1
	MaxEdad = 120
)

// RegisterInput carries the request payload for creating a survey record.
// Bind it from JSON, then call Normalize and Validate before it reaches the
// repository.
type RegisterInput struct {
	Email        string `json:"email"`
	Cedula       string `json:"cedula"`
	Edad         int    `json:"edad"`
	Genero       string `json:"genero"`
	SO           string `json:"so"`
	Movilidad    string `json:"movilidad"`
	TiempoDiario string `json:"tiempoDiario"`
	Universidad  string `json:"universidad"`
	Carrera      string `json:"carrera"`
	Telefono     string `json:"telefono"`
}

// ValidationError aggregates every failed check on an input so the caller
// receives a single structured error instead of the first failure only.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Normalize lowercases and trims the email and trims the free-text fields,
// mirroring how values are stored and compared.
func (in *RegisterInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Cedula = strings.TrimSpace(in.Cedula)
	in.Genero = strings.TrimSpace(in.Genero)
	in.SO = strings.TrimSpace(in.SO)
	in.Movilidad = strings.TrimSpace(in.Movilidad)
	in.TiempoDiario = strings.TrimSpace(in.TiempoDiario)
	in.Universidad = strings.TrimSpace(in.Universidad)
	in.Carrera = strings.TrimSpace(in.Carrera)
	in.Telefono = strings.TrimSpace(in.Telefono)
}

// Validate checks that every declared field is present and in range. It
// returns a *ValidationError listing all problems, or nil when the input is
// acceptable. Callers should Normalize first.
func (in *RegisterInput) Validate() error {
	var problems []string

	required := []struct{ name, value string }{
		{"email", in.Email},
		{"cedula", in.Cedula},
		{"genero", in.Genero},
		{"so", in.SO},
		{"movilidad", in.Movilidad},
		{"tiempoDiario", in.TiempoDiario},
		{"universidad", in.Universidad},
		{"carrera", in.Carrera},
		{"telefono", in.Telefono},
	}
	for _, f := range required {
		if f.value == "" {
			problems = append(problems, fmt.Sprintf("%s es requerido", f.name))
		}
	}
	if in.Edad == 0 {
		problems = append(problems, "edad es requerido")
	} else if in.Edad < MinEdad || in.Edad > MaxEdad {
		problems = append(problems, fmt.Sprintf("edad debe estar entre %d y %d", MinEdad, MaxEdad))
	}
	if in.Genero != "" && !ValidGeneros[in.Genero] {
		problems = append(problems, "genero no es válido")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
