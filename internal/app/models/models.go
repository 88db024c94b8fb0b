package models

import "fmt"

// TermRef addresses a term either by id or by its season and year
type TermRef interface {
	isTermRef()
}

// TermID addresses a term by its surrogate id
type TermID int64

// TermName addresses a term by the name it was created with ("Fall 2024")
type TermName struct {
	Season string
	Year   int
}

func (TermID) isTermRef()   {}
func (TermName) isTermRef() {}

// String returns the stored term name
func (n TermName) String() string {
	return fmt.Sprintf("%s %d", n.Season, n.Year)
}

// PlanRef addresses a student term plan either by id or by its natural key
type PlanRef interface {
	isPlanRef()
}

// PlanID addresses a plan by its surrogate id
type PlanID int64

// PlanKey addresses the single plan a student has for a term
type PlanKey struct {
	StudentID string
	TermID    int64
}

func (PlanID) isPlanRef()  {}
func (PlanKey) isPlanRef() {}
