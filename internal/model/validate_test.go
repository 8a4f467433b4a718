package model

import (
	"errors"
	"testing"

	"github.com/toeirei/panaderia/internal/i18n"
)

func TestValidate_LoginRules(t *testing.T) {
	i18n.Init("es")

	if err := Validate(LoginRequest{Username: "ana", Password: "123456"}); err != nil {
		t.Fatalf("valid login rejected: %v", err)
	}

	err := Validate(LoginRequest{Username: "an", Password: "123"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected two failed fields, got %+v", verr.Fields)
	}
	if verr.Fields[0].Field != "username" || verr.Fields[0].Tag != "min" || verr.Fields[0].Param != "3" {
		t.Fatalf("unexpected first field error: %+v", verr.Fields[0])
	}
	if verr.Fields[1].Field != "password" || verr.Fields[1].Param != "6" {
		t.Fatalf("unexpected second field error: %+v", verr.Fields[1])
	}
}

func TestValidate_CustomerEmailAndDocument(t *testing.T) {
	i18n.Init("es")
	c := Customer{
		FirstName:      "Ana",
		LastName:       "Quispe",
		DocumentType:   "DNI",
		DocumentNumber: "45678912",
		Email:          "no-es-correo",
		Address:        Address{District: "Miraflores", AddrStreet: "Av. Larco"},
	}
	err := Validate(c)
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "email" {
		t.Fatalf("expected only the email to fail, got %v", err)
	}
	if verr.Error() == "" {
		t.Fatalf("validation error should carry a message")
	}
}

func TestValidate_CedulaWithAndWithoutAccent(t *testing.T) {
	i18n.Init("es")
	for _, doc := range []string{"CÉDULA", "CEDULA"} {
		c := Customer{
			FirstName:      "Lucía",
			LastName:       "Paredes",
			DocumentType:   doc,
			DocumentNumber: "001234567",
		}
		if err := Validate(c); err != nil {
			t.Fatalf("%s rejected: %v", doc, err)
		}
		if got := DocumentTypeText(doc); got != "Cédula" {
			t.Fatalf("DocumentTypeText(%q) = %q", doc, got)
		}
	}
	if err := Validate(Customer{FirstName: "Lucía", LastName: "Paredes", DocumentType: "RUC", DocumentNumber: "20123456789"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown document types are still rejected, got %v", err)
	}
}
