package wizard

import (
	"strings"
	"time"

	"github.com/sefazor/maeum-backend/internal/models"
)

// text binds a plain string field.
func text[D models.EventData](label string, ptr func(D) *string) Field[D] {
	return Field[D]{
		Label: label,
		Get:   func(d D) string { return *ptr(d) },
		Set: func(d D, v string) error {
			*ptr(d) = strings.TrimSpace(v)
			return nil
		},
	}
}

// multiline stores "\n" escapes typed on one line as real newlines.
func multiline[D models.EventData](label string, ptr func(D) *string) Field[D] {
	return Field[D]{
		Label: label,
		Get:   func(d D) string { return strings.ReplaceAll(*ptr(d), "\n", `\n`) },
		Set: func(d D, v string) error {
			*ptr(d) = strings.ReplaceAll(strings.TrimSpace(v), `\n`, "\n")
			return nil
		},
	}
}

func date[D models.EventData](label string, get func(D) string, set func(D, string)) Field[D] {
	return Field[D]{
		Label: label + " (YYYY-MM-DD)",
		Get:   get,
		Set: func(d D, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := time.Parse(models.DateLayout, v); err != nil {
					return models.ValidationError("%s must look like 2025-05-01", label)
				}
			}
			set(d, v)
			return nil
		},
	}
}

func clock[D models.EventData](label string, ptr func(D) *string) Field[D] {
	return Field[D]{
		Label: label + " (HH:MM)",
		Get:   func(d D) string { return *ptr(d) },
		Set: func(d D, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := time.Parse("15:04", v); err != nil {
					return models.ValidationError("%s must look like 12:30", label)
				}
			}
			*ptr(d) = v
			return nil
		},
	}
}

func choice[D models.EventData](label string, options []string, ptr func(D) *string) Field[D] {
	return Field[D]{
		Label: label + " (" + strings.Join(options, "/") + ")",
		Get:   func(d D) string { return *ptr(d) },
		Set: func(d D, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			for _, o := range options {
				if v == o {
					*ptr(d) = v
					return nil
				}
			}
			return models.ValidationError("%s must be one of %s", label, strings.Join(options, ", "))
		},
	}
}

func flag[D models.EventData](label string, ptr func(D) *bool) Field[D] {
	return Field[D]{
		Label: label + " (y/n)",
		Get: func(d D) string {
			if *ptr(d) {
				return "y"
			}
			return "n"
		},
		Set: func(d D, v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "y", "yes", "true", "1", "예":
				*ptr(d) = true
			case "n", "no", "false", "0", "아니오":
				*ptr(d) = false
			default:
				return models.ValidationError("%s expects y or n", label)
			}
			return nil
		},
	}
}

// list binds a comma separated list.
func list[D models.EventData](label string, ptr func(D) *[]string) Field[D] {
	return Field[D]{
		Label: label + " (쉼표로 구분)",
		Get:   func(d D) string { return strings.Join(*ptr(d), ", ") },
		Set: func(d D, v string) error {
			*ptr(d) = splitList(v)
			return nil
		},
	}
}

// records binds a list of "a:b:c" tuples separated by commas.
func records[D models.EventData](label, shape string, get func(D) [][]string, set func(D, [][]string)) Field[D] {
	width := strings.Count(shape, ":") + 1
	return Field[D]{
		Label: label + " (" + shape + ", ...)",
		Get: func(d D) string {
			rows := get(d)
			parts := make([]string, len(rows))
			for i, r := range rows {
				parts[i] = strings.Join(r, ":")
			}
			return strings.Join(parts, ", ")
		},
		Set: func(d D, v string) error {
			items := splitList(v)
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				cols := strings.Split(item, ":")
				if len(cols) != width {
					return models.ValidationError("%s entries look like %s", label, shape)
				}
				for i := range cols {
					cols[i] = strings.TrimSpace(cols[i])
				}
				rows = append(rows, cols)
			}
			set(d, rows)
			return nil
		},
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
