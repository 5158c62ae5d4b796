package api

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"syntaxsheet/pkg/logging"
)

// maxParamLen drops attributes too long for the status line (ids, paths).
const maxParamLen = 20

// key=value or key="value with spaces"
var logAttrRegex = regexp.MustCompile(`([a-zA-Z0-9_\-.]+)=(?:"([^"]*)"|([^ ]+))`)

// handleLatestLog returns the last captured log line, condensed for the status bar.
func handleLatestLog(w http.ResponseWriter, r *http.Request) {
	line := logging.GlobalLogCapture.GetLastLine()
	writeJSON(w, http.StatusOK, map[string]string{"log": formatLogLine(line)})
}

// formatLogLine turns a slog text line into "HH:MM:SS msg (k=v, ...)".
// Level is dropped, attributes are sorted and long values are omitted.
func formatLogLine(raw string) string {
	matches := logAttrRegex.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return raw
	}

	var msg, clock string
	var params []string
	for _, m := range matches {
		key, val := m[1], m[2]
		if val == "" {
			val = m[3]
		}
		val = strings.TrimSpace(val)

		switch key {
		case "time":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				clock = t.Format("15:04:05")
			}
		case "level":
		case "msg":
			msg = val
		default:
			if len(val) <= maxParamLen {
				params = append(params, key+"="+val)
			}
		}
	}

	if msg == "" {
		return raw
	}
	sort.Strings(params)

	out := msg
	if clock != "" {
		out = fmt.Sprintf("%s %s", clock, msg)
	}
	if len(params) > 0 {
		out = fmt.Sprintf("%s (%s)", out, strings.Join(params, ", "))
	}
	return out
}
