package repository

import "testing"

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sortBy, sortOrder, want string
	}{
		{"", "", "created_at DESC"},
		{"createdAt", "desc", "created_at DESC"},
		{"universidad", "asc", "universidad ASC"},
		{"tiempoDiario", "ASC", "tiempo_diario ASC"},
		{"edad", "", "edad DESC"},
		// unknown column and junk order fall back to safe defaults
		{"'; DROP TABLE user_registers;--", "asc", "created_at ASC"},
		{"email", "sideways", "email DESC"},
	}
	for _, tc := range cases {
		if got := orderClause(tc.sortBy, tc.sortOrder); got != tc.want {
			t.Errorf("orderClause(%q, %q) = %q, want %q", tc.sortBy, tc.sortOrder, got, tc.want)
		}
	}
}

func TestSearchCondition(t *testing.T) {
	cond, args := searchCondition("")
	if cond != "1=1" || len(args) != 0 {
		t.Errorf("empty search: got %q with %d args", cond, len(args))
	}

	cond, args = searchCondition("EPN")
	want := "(LOWER(email) LIKE ? OR LOWER(cedula) LIKE ? OR LOWER(universidad) LIKE ? OR LOWER(carrera) LIKE ?)"
	if cond != want {
		t.Errorf("cond = %q, want %q", cond, want)
	}
	if len(args) != len(searchColumns) {
		t.Fatalf("got %d args, want %d", len(args), len(searchColumns))
	}
	for _, a := range args {
		if a != "%epn%" {
			t.Errorf("arg = %v, want %%epn%% (lowercased, wrapped)", a)
		}
	}
}
