package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// Deleting a role must not cascade into users or dangle: the FK nulls the
// user's id_rol and the account keeps existing without a role.
func TestUsuarioRolConstraintSetsNull(t *testing.T) {
	s, err := schema.Parse(&Usuario{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	rel, ok := s.Relationships.Relations["Rol"]
	if !ok {
		t.Fatal("usuario declares no Rol relation")
	}
	c := rel.ParseConstraint()
	if c == nil {
		t.Fatal("Rol relation declares no constraint")
	}
	if c.OnDelete != "SET NULL" {
		t.Fatalf("OnDelete = %q, want SET NULL", c.OnDelete)
	}

	f, ok := s.FieldsByName["IDRol"]
	if !ok {
		t.Fatal("usuario has no IDRol field")
	}
	if f.NotNull {
		t.Fatal("id_rol must be nullable for SET NULL to apply")
	}
}

// Deleting a tenant takes its users with it.
func TestUsuarioEmpresaConstraintCascades(t *testing.T) {
	s, err := schema.Parse(&Usuario{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse: %v", err)
	}
	rel, ok := s.Relationships.Relations["Empresa"]
	if !ok {
		t.Fatal("usuario declares no Empresa relation")
	}
	c := rel.ParseConstraint()
	if c == nil {
		t.Fatal("Empresa relation declares no constraint")
	}
	if c.OnDelete != "CASCADE" {
		t.Fatalf("OnDelete = %q, want CASCADE", c.OnDelete)
	}
}
