package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@test.com", NormalizeEmail("  ANA@Test.Com "))
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"plain", "ana@test.com", true},
		{"dots and dashes", "a.b-c_d@my-domain.co", true},
		{"case and spaces normalized", "  ANA@TEST.COM ", true},
		{"subdomain", "x@mail.example.org", true},
		{"missing at", "ana.test.com", false},
		{"missing tld", "ana@test", false},
		{"one letter tld", "ana@test.c", false},
		{"space inside", "an a@test.com", false},
		{"empty", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ok, Email(tc.in) == "", "Email(%q) = %q", tc.in, Email(tc.in))
		})
	}
}

func TestPassword_EachClassIndependently(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		ok      bool
		wantSub string
	}{
		{"valid", "Abcdef1!", true, ""},
		{"too short", "Ab1!", false, "8 caracteres"},
		{"no upper", "abcdef1!", false, "mayúscula"},
		{"no lower", "ABCDEF1!", false, "minúscula"},
		{"no digit", "Abcdefg!", false, "número"},
		{"no symbol", "Abcdefg1", false, "símbolo"},
		{"long but only letters", "Abcdefghij", false, "número"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Password(tc.in)
			if tc.ok {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tc.wantSub)
		})
	}
}

func TestFullName(t *testing.T) {
	assert.Empty(t, FullName("Ana Gomez"))
	assert.Empty(t, FullName("José Muñoz Ibáñez"))
	assert.NotEmpty(t, FullName("Al"))
	assert.NotEmpty(t, FullName("  A  "))
	assert.NotEmpty(t, FullName("Ana123"))
	assert.NotEmpty(t, FullName("Ana-Maria"))
}

func TestDocumentNumber(t *testing.T) {
	assert.Empty(t, DocumentNumber("CC", "123456"))
	assert.NotEmpty(t, DocumentNumber("CC", "12A456"))
	assert.NotEmpty(t, DocumentNumber("TI", ""))
	assert.Empty(t, DocumentNumber("PA", "AB12345"))
	assert.NotEmpty(t, DocumentNumber("PA", "AB-12345"))
}

func TestDocumentType(t *testing.T) {
	for _, v := range []string{"CC", "TI", "CE", "PA"} {
		assert.Empty(t, DocumentType(v))
	}
	assert.NotEmpty(t, DocumentType("DNI"))
	assert.NotEmpty(t, DocumentType(""))
}

func TestFiscalYear_CurrentYearBoundary(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, FiscalYear(2024, now), "current year is accepted")
	assert.NotEmpty(t, FiscalYear(2025, now), "next calendar year is rejected")
	assert.Empty(t, FiscalYear(2000, now))
	assert.NotEmpty(t, FiscalYear(1999, now))
}

func TestIncome(t *testing.T) {
	assert.NotEmpty(t, Income(-1))
	assert.NotEmpty(t, Income(500_000), "below taxable minimum")
	assert.Empty(t, Income(1_000_000))
	assert.Empty(t, Income(999_999_999_999))
	assert.NotEmpty(t, Income(1_000_000_000_000))
}

func TestDeductions(t *testing.T) {
	assert.Empty(t, Deductions(0), "exactly zero is allowed")
	assert.NotEmpty(t, Deductions(-0.5))
	assert.NotEmpty(t, Deductions(999), "nonzero below minimum")
	assert.Empty(t, Deductions(1_000))
	assert.NotEmpty(t, Deductions(1_000_000_000_000))
}

func TestDependents(t *testing.T) {
	assert.Empty(t, Dependents(0))
	assert.Empty(t, Dependents(5))
	assert.NotEmpty(t, Dependents(-1))
	assert.NotEmpty(t, Dependents(6))
}

func TestMaritalStatus(t *testing.T) {
	for _, v := range []string{"Soltero/a", "Casado/a", "Divorciado/a", "Viudo/a"} {
		assert.Empty(t, MaritalStatus(v))
	}
	assert.NotEmpty(t, MaritalStatus("Soltero"))
	assert.NotEmpty(t, MaritalStatus(""))
}

func TestNotes(t *testing.T) {
	assert.Empty(t, Notes(""))
	assert.Empty(t, Notes(strings.Repeat("a", 1000)))
	assert.NotEmpty(t, Notes(strings.Repeat("a", 1001)))
}

func TestAccountStatus(t *testing.T) {
	assert.Empty(t, AccountStatus("activo"))
	assert.Empty(t, AccountStatus("inactivo"))
	assert.NotEmpty(t, AccountStatus("suspendido"))
}

func TestErrors_AddKeepsFirstReason(t *testing.T) {
	e := Errors{}
	e.Add("password", "primera")
	e.Add("password", "segunda")
	e.Add("correo_electronico", "")

	assert.Equal(t, "primera", e["password"])
	assert.NotContains(t, e, "correo_electronico", "empty reasons are ignored")
	assert.True(t, e.Any())
	assert.False(t, Errors{}.Any())
}
