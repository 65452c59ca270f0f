package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// PIIFields are the attribute keys whose values never reach the log output.
var PIIFields = []string{"name", "email", "phone", "ssn", "password"}

// Redaction replaces redacted values.
const Redaction = "***"

var piiPattern = datumPattern(PIIFields, ";")

// FilterDatum replaces the value of every field=value pair in message whose
// field is listed, where pairs end at separator.
func FilterDatum(fields []string, redaction, message, separator string) string {
	if len(fields) == 0 || message == "" {
		return message
	}
	return filterWith(datumPattern(fields, separator), redaction, message)
}

func datumPattern(fields []string, separator string) *regexp.Regexp {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	value := `.*`
	if separator != "" {
		value = `[^` + regexp.QuoteMeta(separator) + `]*`
	}
	return regexp.MustCompile(`(` + strings.Join(quoted, "|") + `)=` + value)
}

func filterWith(re *regexp.Regexp, redaction, message string) string {
	return re.ReplaceAllString(message, "${1}="+strings.ReplaceAll(redaction, "$", "$$"))
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	for _, f := range PIIFields {
		if strings.EqualFold(a.Key, f) {
			return slog.String(a.Key, Redaction)
		}
	}
	return a
}
