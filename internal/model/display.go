// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var solesPrinter = message.NewPrinter(language.MustParse("es-PE"))

// StatusText maps a record status code to its label.
func StatusText(status string) string {
	switch status {
	case StatusActive:
		return "Activo"
	case StatusInactive:
		return "Inactivo"
	case StatusAll:
		return "Todos"
	default:
		return status
	}
}

// OrderNumber renders an order id as PED-00042.
func OrderNumber(id int) string {
	return fmt.Sprintf("PED-%05d", id)
}

// FormatSoles renders an amount as soles without fraction digits,
// grouped the Peruvian way, e.g. "S/ 1,250".
func FormatSoles(amount decimal.Decimal) string {
	return "S/ " + solesPrinter.Sprintf("%d", amount.Round(0).IntPart())
}

// FormatSolesString is FormatSoles for free-form input such as "S/ 12.50".
// Everything but digits and the decimal point is discarded; empty or
// unreadable input reads as zero.
func FormatSolesString(s string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return "S/ 0"
	}
	return FormatSoles(Money(digits))
}

// GenderText maps a gender code to its label.
func GenderText(gender string) string {
	switch gender {
	case "M":
		return "Masculino"
	case "F":
		return "Femenino"
	case "O":
		return "Otro"
	case "":
		return UnspecifiedText
	default:
		return gender
	}
}

// DocumentTypeText maps a document type code to its label.
func DocumentTypeText(documentType string) string {
	if documentType == "" {
		return UnspecifiedNumber
	}
	switch DocumentTypeKey(documentType) {
	case "DNI":
		return "DNI"
	case "CEDULA":
		return "Cédula"
	case "PASAPORTE":
		return "Pasaporte"
	default:
		return documentType
	}
}

// DocumentTypeKey folds a document type for comparison. The backend holds
// both "CÉDULA" and "CEDULA".
func DocumentTypeKey(documentType string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(documentType)), "É", "E")
}

// DeliveryTypeText maps a delivery type to the label shown at the counter.
func DeliveryTypeText(deliveryType string) string {
	switch deliveryType {
	case DeliveryLocal:
		return "Recojo"
	case DeliveryHome:
		return "Para Llevar"
	default:
		return deliveryType
	}
}

// PaymentStatusText maps a payment status code to its label.
func PaymentStatusText(status string) string {
	if status == PaymentPending {
		return "Pendiente"
	}
	return "Pagado"
}

// DisplayDate renders a backend date as dd/mm/yyyy.
func DisplayDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "No especificada"
	}
	return t.Format("02/01/2006")
}

// Initials returns the upper-cased first letters of both names.
func Initials(firstName, lastName string) string {
	first := func(s string) string {
		r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
		if r == utf8.RuneError {
			return ""
		}
		return string(r)
	}
	return strings.ToUpper(first(firstName) + first(lastName))
}
