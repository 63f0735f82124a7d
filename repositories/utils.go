package repositories

import (
	"strings"
)

func columnList(fields []string) string {
	return strings.Join(fields, ", ")
}
