package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"weathertracker.app/internal/core/alert"
)

// Dispatch triggers, used as log and metric labels
const (
	TriggerInterval = "interval"
	TriggerDaily    = "daily"
	TriggerManual   = "manual"
)

// DispatchResult reports how many alert emails a run sent and how many failed
type DispatchResult struct {
	RunID  string        `json:"run_id"`
	Sent   int           `json:"sent"`
	Failed int           `json:"failed"`
	Took   time.Duration `json:"took_ns"`
}

type triggerKey struct{}

// WithTrigger labels the dispatch run started with ctx
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

func triggerFrom(ctx context.Context) string {
	if v, ok := ctx.Value(triggerKey{}).(string); ok && v != "" {
		return v
	}
	return TriggerManual
}

var alertEmailTemplate = template.Must(template.New("alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Weather alert{{if .LocationName}} for {{.LocationName}}{{end}}</h2>
  <p>Hello {{.UserName}},</p>
  <p style="font-size: 16px;"><strong>{{.Message}}</strong></p>
  <table cellpadding="4">
    <tr><td>Severity</td><td>{{.Severity}}</td></tr>
    <tr><td>Condition</td><td>{{.Condition}}</td></tr>
    {{if .Reading}}<tr><td>Conditions</td><td>{{.Reading}}</td></tr>{{end}}
    <tr><td>Issued</td><td>{{.Issued}}</td></tr>
  </table>
  <p><a href="{{.DashboardURL}}">Open your dashboard</a> to review or dismiss this alert.</p>
</body>
</html>`))

type alertEmailData struct {
	UserName     string
	LocationName string
	Message      string
	Severity     string
	Condition    string
	Reading      string
	Issued       string
	DashboardURL string
}

func buildAlertEmail(v *alert.View, baseURL string) (subject, body string, err error) {
	data := alertEmailData{
		UserName:     v.UserName,
		Message:      v.Message,
		Severity:     strings.ToUpper(v.Severity.String()[:1]) + v.Severity.String()[1:],
		Condition:    strings.ReplaceAll(string(v.Condition), "_", " "),
		Issued:       v.StartTime.Format("Mon, 02 Jan 2006 15:04 MST"),
		DashboardURL: strings.TrimRight(baseURL, "/") + "/dashboard",
	}
	if data.UserName == "" {
		data.UserName = "there"
	}
	if v.Location != nil {
		data.LocationName = v.Location.Name
	}
	if v.Reading != nil {
		data.Reading = v.Reading.String()
	}

	var buf bytes.Buffer
	if err := alertEmailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render alert email: %w", err)
	}

	subject = v.Message
	if data.LocationName != "" {
		subject = fmt.Sprintf("%s (%s)", v.Message, data.LocationName)
	}
	return subject, buf.String(), nil
}
