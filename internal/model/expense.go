package model

import (
	"math"
	"time"
)

// FieldReimbursed - имя флага возмещения расхода
const FieldReimbursed = "reimbursed"

// MaxExpenseAmount ограничивает сумму одного расхода
const MaxExpenseAmount = 90000.0

// Expense представляет расход
type Expense struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Reimbursed   bool      `json:"reimbursed"`
	CreatedAt    time.Time `json:"created_at"`
}

func (e Expense) Identity() string { return e.ID }

func (e Expense) Label() string { return e.Description }

// Validate проверяет сумму и категорию
func (e Expense) Validate() error {
	if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) || e.Amount <= 0 {
		return &FieldError{Field: "amount", Reason: "must be a positive number"}
	}
	if e.Amount > MaxExpenseAmount {
		return &FieldError{Field: "amount", Reason: "exceeds the maximum allowed amount"}
	}
	if _, ok := LookupCategory(e.CategoryID); !ok {
		return &FieldError{Field: "category_id", Reason: "unknown category"}
	}
	return nil
}

func (e *Expense) Stamp(id string, createdAt time.Time) {
	e.ID = id
	e.CreatedAt = createdAt
}

func (e *Expense) Toggle(field string) bool {
	if field != FieldReimbursed {
		return false
	}
	e.Reimbursed = !e.Reimbursed
	return true
}
