package service

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money форматирует суммы с учетом локали и валюты
type Money struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewMoney создает форматтер, например NewMoney("pt-BR", "BRL")
func NewMoney(locale, code string) (*Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	return &Money{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Format возвращает сумму с двумя знаками и кодом валюты
func (m *Money) Format(amount float64) string {
	return m.printer.Sprintf("%.2f %s", amount, m.unit.String())
}

// Currency возвращает ISO-код валюты
func (m *Money) Currency() string {
	return m.unit.String()
}
