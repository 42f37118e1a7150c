package models

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	// Bilhete de identidade: 12 digitos seguidos de uma letra maiuscula.
	nrBIRegex = regexp.MustCompile(`^\d{12}[A-Z]$`)
	// Carta de conducao: 9 digitos.
	cartaRegex = regexp.MustCompile(`^\d{9}$`)
	// Matricula no formato ABC-123-XY.
	matriculaRegex = regexp.MustCompile(`^[A-Z]{3}-\d{3}-[A-Z]{2}$`)
	// Numero movel mocambicano, prefixo +258 opcional.
	telefoneRegex = regexp.MustCompile(`^(\+258)?8[234567]\d{7}$`)
)

// titleCase trims the string and capitalizes the first letter of each word,
// lowering the rest, matching the normalization applied on the admin side.
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// dateOnly drops the time-of-day component, keeping UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func hoje() time.Time {
	return dateOnly(time.Now())
}

// idadeEm returns full years elapsed between nascimento and ref: the raw
// year difference, minus one when ref's (month, day) precedes nascimento's.
func idadeEm(nascimento, ref time.Time) int {
	anos := ref.Year() - nascimento.Year()
	if ref.Month() < nascimento.Month() ||
		(ref.Month() == nascimento.Month() && ref.Day() < nascimento.Day()) {
		anos--
	}
	return anos
}
