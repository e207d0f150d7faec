package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/arvelez/user-register-api/internal/model"
)

// ListQuery defines search, sort and pagination parameters for listing
// survey records.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// searchColumns are the text fields the search term is matched against,
// OR-combined and case-insensitive.
var searchColumns = []string{"email", "cedula", "universidad", "carrera"}

// sortColumns whitelists sortBy values against real columns. Interpolating
// a caller-supplied identifier into ORDER BY is not an option, so unknown
// values fall back to created_at.
var sortColumns = map[string]string{
	"email":        "email",
	"cedula":       "cedula",
	"edad":         "edad",
	"genero":       "genero",
	"so":           "so",
	"movilidad":    "movilidad",
	"tiempoDiario": "tiempo_diario",
	"universidad":  "universidad",
	"carrera":      "carrera",
	"telefono":     "telefono",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// orderClause resolves the sortBy/sortOrder pair into a safe ORDER BY
// fragment. Default is created_at DESC, matching the listing contract.
func orderClause(sortBy, sortOrder string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

// searchCondition builds the WHERE fragment and arguments for a search
// term. An empty term matches everything.
func searchCondition(search string) (string, []any) {
	if search == "" {
		return "1=1", nil
	}
	pattern := "%" + strings.ToLower(search) + "%"
	conds := make([]string, 0, len(searchColumns))
	args := make([]any, 0, len(searchColumns))
	for _, col := range searchColumns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

const registerColumns = "id,email,cedula,edad,genero,so,movilidad,tiempo_diario,universidad,carrera,telefono,created_at,updated_at"

// RegisterRepo persists survey records in the 'user_registers' table.
type RegisterRepo struct{ DB *sql.DB }

func NewRegisterRepo(db *sql.DB) *RegisterRepo { return &RegisterRepo{DB: db} }

// Create inserts a record built from a normalized, validated input and
// returns it with the assigned ID. The unique email index resolves races:
// the second of two concurrent inserts with the same email fails and is
// mapped to ErrEmailExists.
func (r *RegisterRepo) Create(ctx context.Context, in model.RegisterInput) (model.UserRegister, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO user_registers
			(email,cedula,edad,genero,so,movilidad,tiempo_diario,universidad,carrera,telefono)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		in.Email, in.Cedula, in.Edad, in.Genero, in.SO,
		in.Movilidad, in.TiempoDiario, in.Universidad, in.Carrera, in.Telefono)
	if err != nil {
		if isDuplicateKey(err) {
			return model.UserRegister{}, ErrEmailExists
		}
		return model.UserRegister{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.UserRegister{}, err
	}
	return r.getByID(ctx, uint64(id))
}

func (r *RegisterRepo) getByID(ctx context.Context, id uint64) (model.UserRegister, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+registerColumns+" FROM user_registers WHERE id=? LIMIT 1", id)
	return scanRegister(row)
}

// List returns one page of records matching the query plus the total match
// count before pagination.
func (r *RegisterRepo) List(ctx context.Context, q ListQuery) ([]model.UserRegister, int64, error) {
	cond, args := searchCondition(q.Search)

	var total int64
	countSQL := "SELECT COUNT(*) FROM user_registers WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	offset := (q.Page - 1) * q.Limit

	dataSQL := "SELECT " + registerColumns + " FROM user_registers WHERE " + cond +
		" ORDER BY " + orderClause(q.SortBy, q.SortOrder) +
		" LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.UserRegister, 0, limit)
	for rows.Next() {
		rec, err := scanRegister(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// EmailExists reports whether any record holds the given email. The check
// is global, not scoped to the caller.
func (r *RegisterRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_registers WHERE email=? LIMIT 1", email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanRegister(s scanner) (model.UserRegister, error) {
	var rec model.UserRegister
	err := s.Scan(
		&rec.ID, &rec.Email, &rec.Cedula, &rec.Edad, &rec.Genero, &rec.SO,
		&rec.Movilidad, &rec.TiempoDiario, &rec.Universidad, &rec.Carrera,
		&rec.Telefono, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}
