package tmpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	at := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		tmpl string
		data any
		want string
	}{
		{
			name: "plain substitution",
			tmpl: "Hello {{ .Name }}",
			data: map[string]any{"Name": "world"},
			want: "Hello world",
		},
		{
			name: "join",
			tmpl: `{{ join .Steps ", " }}`,
			data: map[string]any{"Steps": []string{"a", "b"}},
			want: "a, b",
		},
		{
			name: "add1 for 1-based numbering",
			tmpl: `{{ range $i, $s := .Steps }}{{ add1 $i }}:{{ $s }} {{ end }}`,
			data: map[string]any{"Steps": []string{"x", "y"}},
			want: "1:x 2:y ",
		},
		{
			name: "title from snake_case",
			tmpl: `{{ title .Action }}`,
			data: map[string]any{"Action": "email_send"},
			want: "Email Send",
		},
		{
			name: "stamp and day",
			tmpl: `{{ stamp .At }} / {{ day .At }}`,
			data: map[string]any{"At": at},
			want: "2026-01-15 09:30 / 2026-01-15",
		},
		{
			name: "yesno",
			tmpl: `{{ yesno .A }} {{ yesno .B }}`,
			data: map[string]any{"A": true, "B": false},
			want: "Yes No",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tmpl, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Errors(t *testing.T) {
	_, err := Render("{{ .Name", nil)
	assert.Error(t, err, "unterminated action must fail at parse")

	_, err = Render("{{ .Missing }}", map[string]any{"Name": "x"})
	assert.Error(t, err, "missing keys must fail, not render <no value>")
}
