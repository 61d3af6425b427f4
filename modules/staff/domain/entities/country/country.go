package country

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

// Country is one ISO-3166 alpha-2 entry with its dialing rules. MinDigits and
// MaxDigits bound the national significant number, not the full E.164 string.
type Country struct {
	Code      string   `yaml:"code"`
	Name      string   `yaml:"name"`
	DialCode  string   `yaml:"dialCode"`
	MinDigits int      `yaml:"minDigits"`
	MaxDigits int      `yaml:"maxDigits"`
	Aliases   []string `yaml:"aliases,omitempty"`
}

// Table resolves country codes and suggests codes for common misentries, e.g.
// a full country name typed where a two-letter code was expected.
type Table struct {
	byCode  map[string]Country
	aliases map[string]string
}

var load = sync.OnceValues(func() (*Table, error) {
	var entries []Country
	if err := yaml.Unmarshal(countriesYAML, &entries); err != nil {
		return nil, fmt.Errorf("parsing embedded country table: %w", err)
	}
	t := &Table{
		byCode:  make(map[string]Country, len(entries)),
		aliases: make(map[string]string),
	}
	for _, c := range entries {
		code := strings.ToUpper(c.Code)
		t.byCode[code] = c
		t.aliases[aliasKey(c.Name)] = code
		for _, a := range c.Aliases {
			t.aliases[aliasKey(a)] = code
		}
	}
	return t, nil
})

// Load parses the embedded table once and returns the shared instance.
func Load() (*Table, error) {
	return load()
}

func aliasKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ByCode looks up a country by its ISO alpha-2 code, case-insensitively.
func (t *Table) ByCode(code string) (Country, bool) {
	c, ok := t.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// Suggest maps a misentered value (full name, local spelling, informal name)
// to the country it most likely meant.
func (t *Table) Suggest(input string) (Country, bool) {
	code, ok := t.aliases[aliasKey(input)]
	if !ok {
		return Country{}, false
	}
	return t.byCode[code], true
}

// ValidNationalNumber checks a digit string against the country's length rules.
func (c Country) ValidNationalNumber(digits string) bool {
	n := len(digits)
	return n >= c.MinDigits && n <= c.MaxDigits
}

// NationalDigits strips formatting from phone text and removes the country's
// dial prefix and trunk zero if present. The second return is false when the
// text contains non-phone characters or a dial prefix of another country.
func (c Country) NationalDigits(phone string) (string, bool) {
	s := strings.TrimSpace(phone)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9' || r == '+':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting characters are ignored
		default:
			return "", false
		}
	}
	digits := b.String()
	switch {
	case strings.HasPrefix(digits, "+"):
		if !strings.HasPrefix(digits, "+"+c.DialCode) {
			return "", false
		}
		digits = strings.TrimPrefix(digits, "+"+c.DialCode)
	case strings.HasPrefix(digits, "00"):
		if !strings.HasPrefix(digits, "00"+c.DialCode) {
			return "", false
		}
		digits = strings.TrimPrefix(digits, "00"+c.DialCode)
	case strings.HasPrefix(digits, "0"):
		// trunk prefix
		digits = digits[1:]
	}
	if strings.Contains(digits, "+") {
		return "", false
	}
	return digits, true
}
