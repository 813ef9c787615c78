package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	yearRegex  = regexp.MustCompile(`^\d{4}$`)
)

// Label and text limits.
const (
	MaxQualities       = 6
	MaxQualityLength   = 24
	MaxFormationLength = 1000
)

// ValidateEmail checks an address against the loose user@host.tld shape.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("e-mail requis")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("format d'e-mail invalide")
	}
	return nil
}

// NormalizePhone strips whitespace and rewrites a French national number
// (leading trunk 0) to its +33 international form.
func NormalizePhone(phone string) string {
	p := strings.Join(strings.Fields(phone), "")
	if len(p) == 10 && p[0] == '0' && p[1] >= '1' && p[1] <= '9' {
		return "+33" + p[1:]
	}
	return p
}

// ValidatePhone checks an E.164-like number once whitespace is stripped.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("téléphone requis")
	}
	if !phoneRegex.MatchString(NormalizePhone(phone)) {
		return fmt.Errorf("format de téléphone invalide")
	}
	return nil
}

// ValidateColor checks a #RGB or #RRGGBB colour.
func ValidateColor(color string) error {
	if !colorRegex.MatchString(color) {
		return fmt.Errorf("couleur invalide : %s", color)
	}
	return nil
}

// ValidateAbsoluteURL checks that raw parses as an absolute URL with a host.
func ValidateAbsoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("URL invalide : %s", raw)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD calendar date.
func ValidateDate(raw string) error {
	if _, err := time.Parse(time.DateOnly, raw); err != nil {
		return fmt.Errorf("date invalide (AAAA-MM-JJ attendu) : %s", raw)
	}
	return nil
}

// ValidateYear checks a 4-digit year string.
func ValidateYear(raw string) error {
	if !yearRegex.MatchString(raw) {
		return fmt.Errorf("année invalide : %s", raw)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func runeLen(s string) int { return utf8.RuneCountInString(s) }
