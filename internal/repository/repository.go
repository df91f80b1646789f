// Package repository provides interface-fronted data access over GORM.
package repository

import "errors"

// Sentinel errors for toggle-relation outcomes. Handlers map these onto the
// conflict branch of the error taxonomy.
var (
	// ErrDuplicateRelation is returned when a toggle create finds the
	// relation already active.
	ErrDuplicateRelation = errors.New("relation already exists")
	// ErrRelationNotFound is returned when a toggle remove finds no active
	// relation.
	ErrRelationNotFound = errors.New("relation does not exist")
)
