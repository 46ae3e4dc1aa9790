package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/drawlabs/luckyadmin/internal/models"
)

// prompter collects form answers for the create and edit flows.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// field asks for one form value. When a current value is shown, an empty
// answer keeps it.
func (p *prompter) field(f models.Field, current string) (string, error) {
	label := f.Label
	switch f.Kind {
	case models.Bool:
		label += " (yes/no)"
	case models.Date:
		label += " (YYYY-MM-DD)"
	}
	if current != "" {
		label += " [" + current + "]"
	}
	if f.Kind == models.Multiline {
		return getMultiline(p.reader, label, p.out)
	}
	return getSimpleText(p.reader, label, p.out)
}

func (p *prompter) confirm(question string) (bool, error) {
	answer, err := getSimpleText(p.reader, question+" (y/N)", p.out)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// convertField turns a raw answer into the JSON value the backend expects
// for the field's kind.
func convertField(f models.Field, raw string) (any, error) {
	switch f.Kind {
	case models.Number:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number", f.Label)
		}
		return n, nil
	case models.Bool:
		switch strings.ToLower(raw) {
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		return nil, fmt.Errorf("%s must be yes or no", f.Label)
	case models.Date:
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be in YYYY-MM-DD form", f.Label)
		}
		return day.UTC().Format(time.RFC3339), nil
	}
	return raw, nil
}
