// Package fieldcheck implements the kind-level checks applied when a value is
// written into a request. Each check normalises the incoming value into the
// canonical representation the document builder renders.
package fieldcheck

import (
	"errors"
	"fmt"
	"html"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-paygate/pkg/schema"
)

// Normalized is the canonical form of an accepted value. Numeric kinds use Int;
// every other kind uses Text.
type Normalized struct {
	Int  int64
	Text string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate

	plainOnce   sync.Once
	plainPolicy *bluemonday.Policy
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

func plainTextPolicy() *bluemonday.Policy {
	plainOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return plainPolicy
}

// Check validates value against the field declaration. The returned error is
// the human readable reason; callers wrap it with field context.
func Check(field schema.Field, value any) (Normalized, error) {
	if value == nil {
		return Normalized{}, errors.New("value is required")
	}

	switch field.Kind {
	case schema.KindInteger:
		n, err := toInt64(value)
		if err != nil {
			return Normalized{}, err
		}
		return Normalized{Int: n}, nil
	case schema.KindAmount:
		n, err := toAmount(value)
		if err != nil {
			return Normalized{}, err
		}
		return Normalized{Int: n}, nil
	case schema.KindString:
		text, err := checkString(field, value)
		if err != nil {
			return Normalized{}, err
		}
		return Normalized{Text: text}, nil
	case schema.KindEnum:
		text, err := toText(value)
		if err != nil {
			return Normalized{}, err
		}
		canonical, ok := field.HasValue(strings.TrimSpace(text))
		if !ok {
			return Normalized{}, fmt.Errorf("must be one of %s", strings.Join(field.Values, ", "))
		}
		return Normalized{Text: canonical}, nil
	case schema.KindURL:
		text, err := checkTagged(field, value, "url", "must be a valid URL")
		if err != nil {
			return Normalized{}, err
		}
		parsed, err := url.Parse(text)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return Normalized{}, errors.New("must be an http or https URL")
		}
		return Normalized{Text: text}, nil
	case schema.KindEmail:
		text, err := checkTagged(field, value, "email", "must be a valid email address")
		if err != nil {
			return Normalized{}, err
		}
		return Normalized{Text: text}, nil
	case schema.KindIP:
		text, err := checkTagged(field, value, "ip", "must be a valid IPv4 or IPv6 address")
		if err != nil {
			return Normalized{}, err
		}
		return Normalized{Text: text}, nil
	case schema.KindCurrency:
		text, err := toText(value)
		if err != nil {
			return Normalized{}, err
		}
		if !isCurrencyShape(text) {
			return Normalized{}, errors.New("must be 3 uppercase letters")
		}
		if err := validatorInstance().Var(text, "iso4217"); err != nil {
			return Normalized{}, fmt.Errorf("unknown ISO-4217 currency %q", text)
		}
		return Normalized{Text: text}, nil
	default:
		return Normalized{}, fmt.Errorf("unsupported kind %q", field.Kind)
	}
}

func checkString(field schema.Field, value any) (string, error) {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case fmt.Stringer:
		text = v.String()
	default:
		n, err := toInt64(value)
		if err != nil {
			return "", fmt.Errorf("must be a string, got %T", value)
		}
		text = strconv.FormatInt(n, 10)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("must not be empty")
	}
	if !utf8.ValidString(text) {
		return "", errors.New("must be valid UTF-8")
	}
	if err := checkXMLChars(text); err != nil {
		return "", err
	}
	if field.MaxLength > 0 && utf8.RuneCountInString(text) > field.MaxLength {
		return "", fmt.Errorf("must be at most %d characters", field.MaxLength)
	}
	if containsMarkup(text) {
		return "", errors.New("must not contain markup")
	}
	return text, nil
}

// containsMarkup reports whether the strict policy would alter text. Ampersands
// are escaped first so literal entities such as "&amp;" count as plain text.
func containsMarkup(text string) bool {
	escaped := strings.ReplaceAll(text, "&", "&amp;")
	return html.UnescapeString(plainTextPolicy().Sanitize(escaped)) != text
}

// checkXMLChars rejects runes outside the XML 1.0 Char production; encoders
// would otherwise replace them on the wire.
func checkXMLChars(text string) error {
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return fmt.Errorf("must not contain control character %U", r)
		}
	}
	return nil
}

func checkTagged(field schema.Field, value any, tag, reason string) (string, error) {
	text, err := toText(value)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("must not be empty")
	}
	if err := checkXMLChars(text); err != nil {
		return "", err
	}
	if field.MaxLength > 0 && utf8.RuneCountInString(text) > field.MaxLength {
		return "", fmt.Errorf("must be at most %d characters", field.MaxLength)
	}
	if err := validatorInstance().Var(text, tag); err != nil {
		return "", errors.New(reason)
	}
	return text, nil
}

func toText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case fmt.Stringer:
		return strings.TrimSpace(v.String()), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("must be a string, got %T", value)
	}
}

func isCurrencyShape(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func toAmount(value any) (int64, error) {
	if d, ok := value.(decimal.Decimal); ok {
		if !d.IsInteger() {
			return 0, errors.New("must be expressed in minor units without a fraction")
		}
		if d.IsNegative() {
			return 0, errors.New("must not be negative")
		}
		if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
			return 0, errors.New("exceeds the supported numeric range")
		}
		return d.IntPart(), nil
	}
	n, err := toInt64(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return fromUint(v)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errors.New("must not be empty")
		}
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
				return 0, errors.New("exceeds the supported numeric range")
			}
			return 0, fmt.Errorf("must be a base-10 integer, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("must be an integer, got %T", value)
	}
}

func fromUint(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, errors.New("exceeds the supported numeric range")
	}
	return int64(v), nil
}
