package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/winposture/winposture/internal/report"
)

//go:embed report.html.tmpl
var htmlSource string

var htmlTmpl = template.Must(template.New("report").Parse(htmlSource))

// htmlView is the flattened data the page template consumes. All conditional
// presentation logic lives here so the template stays declarative.
type htmlView struct {
	Hostname     string
	OS           string
	Timestamp    string
	Score        int
	ScoreLabel   string
	ScoreClass   string
	Defender     string
	Firewall     string
	UpdatesCount int
	Uptime       string
	Findings     []htmlFinding
}

type htmlFinding struct {
	Severity string
	Label    string
	Title    string
	Detail   string
}

func newHTMLView(r *report.Report) htmlView {
	v := htmlView{
		Hostname:     r.System.Hostname,
		OS:           r.System.OS,
		Timestamp:    r.System.TimestampUTC,
		Score:        r.Score,
		ScoreLabel:   ScoreLabel(r.Score),
		ScoreClass:   scoreClass(r.Score),
		Defender:     availabilityWord(r.Defender.Available),
		Firewall:     availabilityWord(r.Firewall.Available),
		UpdatesCount: len(r.Updates.Updates),
		Uptime:       "N/A",
	}
	if r.UptimeSeconds != nil {
		v.Uptime = strconv.FormatInt(*r.UptimeSeconds, 10)
	}
	for _, f := range r.Findings {
		sev := strings.ToLower(string(f.Severity))
		v.Findings = append(v.Findings, htmlFinding{
			Severity: sev,
			Label:    strings.ToUpper(sev),
			Title:    f.Title,
			Detail:   f.Detail,
		})
	}
	return v
}

// HTML renders the report dashboard page. Evidence-derived strings pass
// through the template's contextual escaping, so hostile content in hotfix
// descriptions or error strings cannot inject markup.
func HTML(r *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, newHTMLView(r)); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
