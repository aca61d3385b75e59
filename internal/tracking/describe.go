package tracking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devtrack/engine/internal/models"
)

func DescribeCreate(kind models.EntityKind, label string) string {
	return fmt.Sprintf("%s '%s' created", kind.Title(), label)
}

// DescribeUpdate lists one clause per change. With no changes the
// description ends in "updated with".
func DescribeUpdate(kind models.EntityKind, label string, changes []Change) string {
	head := fmt.Sprintf("%s '%s' updated with", kind.Title(), label)
	if len(changes) == 0 {
		return head
	}
	clauses := make([]string, len(changes))
	for i, c := range changes {
		clauses[i] = fmt.Sprintf("Field '%s' changed from '%s' to '%s'", c.Field, FormatValue(c.Old), FormatValue(c.New))
	}
	return head + " " + strings.Join(clauses, ", ")
}

func DescribeStatus(kind models.EntityKind, label, status string) string {
	return fmt.Sprintf("%s '%s' status updated to '%s'", kind.Title(), label, status)
}

func DescribeDelete(kind models.EntityKind, label string) string {
	return fmt.Sprintf("%s '%s' deleted", kind.Title(), label)
}

// FormatValue renders a field value for a description clause.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case models.StringList:
		return x.String()
	case []string:
		return models.StringList(x).String()
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
