package api

import (
	"testing"
)

func TestFormatLogLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "FullLine",
			input: `time=2026-10-15T09:12:01.074+02:00 level=INFO msg="Loader: catalog ready" dir=./languages languages=4 session=6f1c2a9e-7d0b-4d7b-9a61-0a4c5e2b9f11`,
			want:  "09:12:01 Loader: catalog ready (dir=./languages, languages=4)",
		},
		{
			name:  "NoAttributes",
			input: `time=2026-10-15T09:12:01Z level=WARN msg=Shutdown`,
			want:  "09:12:01 Shutdown",
		},
		{
			name:  "NotSlog",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatLogLine(tt.input); got != tt.want {
				t.Errorf("formatLogLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
