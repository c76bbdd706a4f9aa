// Package report renders domain security reports and delivers them by email.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"domainvetter/internal/models"
)

// Message is one rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type componentView struct {
	Icon   string
	Title  string
	Status string
	Score  int
	Max    int
}

type reportView struct {
	Domain          string
	Generated       string
	Score           int
	Grade           string
	GradeColor      string
	Components      []componentView
	Issues          []string
	Recommendations []string
}

var gradeColors = map[string]string{
	"A+": "#28a745", "A": "#28a745", "A-": "#28a745",
	"B+": "#17a2b8", "B": "#17a2b8", "B-": "#17a2b8",
	"C+": "#ffc107", "C": "#ffc107", "C-": "#ffc107",
	"D": "#fd7e14",
	"F": "#dc3545",
}

func statusIcon(status models.RecordStatus) string {
	switch status {
	case models.StatusValid, models.StatusGood:
		return "✅"
	case models.StatusWarning, models.StatusBasic:
		return "⚠️"
	default:
		return "❌"
	}
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Domain Security Report - {{.Domain}}</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 20px; }
    .container { max-width: 600px; margin: 0 auto; background: #f9f9f9; }
    .header { background: #007bff; color: white; padding: 20px; text-align: center; }
    .content { padding: 30px; background: white; }
    .score-card { background: {{.GradeColor}}; color: white; padding: 20px; text-align: center; margin: 20px 0; border-radius: 8px; }
    .score-number { font-size: 48px; font-weight: bold; }
    .grade { font-size: 24px; margin-top: 10px; }
    .component { margin: 15px 0; padding: 15px; border-left: 4px solid #007bff; background: #f8f9fa; }
    .component-title { font-weight: bold; font-size: 16px; }
    .component-status { margin-top: 5px; }
    .issues { background: #fff3cd; border: 1px solid #ffeaa7; padding: 15px; margin: 20px 0; border-radius: 4px; }
    .recommendations { background: #d1ecf1; border: 1px solid #bee5eb; padding: 15px; margin: 20px 0; border-radius: 4px; }
    .footer { background: #6c757d; color: white; padding: 20px; text-align: center; font-size: 12px; }
    ul { padding-left: 20px; }
    li { margin: 8px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🛡️ Domain Security Report</h1>
      <h2>{{.Domain}}</h2>
      <p>Generated on {{.Generated}}</p>
    </div>
    <div class="content">
      <div class="score-card">
        <div class="score-number">{{.Score}}/100</div>
        <div class="grade">Grade: {{.Grade}}</div>
      </div>
      <h3>📊 Security Components Analysis</h3>
{{- range .Components}}
      <div class="component">
        <div class="component-title">{{.Icon}} {{.Title}}</div>
        <div class="component-status">Status: {{.Status}} | Score: {{.Score}}/{{.Max}}</div>
      </div>
{{- end}}
{{- if .Issues}}
      <div class="issues">
        <h4>⚠️ Issues Found</h4>
        <ul>
{{- range .Issues}}
          <li>{{.}}</li>
{{- end}}
        </ul>
      </div>
{{- end}}
{{- if .Recommendations}}
      <div class="recommendations">
        <h4>💡 Recommendations</h4>
        <ul>
{{- range .Recommendations}}
          <li>{{.}}</li>
{{- end}}
        </ul>
      </div>
{{- end}}
      <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #dee2e6;">
        <p><strong>Need help implementing these recommendations?</strong></p>
        <p>For technical support, reply to this email or visit our help center.</p>
      </div>
    </div>
    <div class="footer">
      <p>This report was generated by DomainVetter</p>
      <p>Protecting your domain security, one check at a time.</p>
    </div>
  </div>
</body>
</html>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Welcome to DomainVetter! 🎉</h2>
    <p>Thank you for checking the security of <strong>{{.Domain}}</strong>!</p>
    <p>You'll receive a detailed security report shortly with:</p>
    <ul>
      <li>📊 Complete DNS analysis</li>
      <li>🛡️ Security score and grade</li>
      <li>💡 Actionable recommendations</li>
    </ul>
    <p>Questions? Just reply to this email - we're here to help!</p>
    <p>Best regards,<br>The DomainVetter Team</p>
  </div>
</body>
</html>
`))

func buildView(a *models.DomainAnalysis, now time.Time) reportView {
	color, ok := gradeColors[a.Grade]
	if !ok {
		color = "#6c757d"
	}
	return reportView{
		Domain:     a.Domain,
		Generated:  now.Format("January 2, 2006 at 3:04 PM"),
		Score:      a.TotalScore,
		Grade:      a.Grade,
		GradeColor: color,
		Components: []componentView{
			{statusIcon(a.MX.Status), "MX Records (Mail Exchange)", title(a.MX.Status), a.MX.Score, 20},
			{statusIcon(a.SPF.Status), "SPF Record (Sender Policy Framework)", title(a.SPF.Status), a.SPF.Score, 25},
			{statusIcon(a.DKIM.Status), "DKIM Records (DomainKeys Identified Mail)", title(a.DKIM.Status), a.DKIM.Score, 25},
			{statusIcon(a.DMARC.Status), "DMARC Record (Domain-based Message Authentication)", title(a.DMARC.Status), a.DMARC.Score, 30},
		},
		Issues:          a.Issues,
		Recommendations: a.Recommendations,
	}
}

// Render builds the domain report email for one completed analysis.
func Render(to string, a *models.DomainAnalysis, now time.Time) (Message, error) {
	view := buildView(a, now)

	var html strings.Builder
	if err := reportTmpl.Execute(&html, view); err != nil {
		return Message{}, fmt.Errorf("render report html: %w", err)
	}

	return Message{
		To:      to,
		Subject: "Your Domain Security Report for " + a.Domain,
		HTML:    html.String(),
		Text:    renderText(view),
	}, nil
}

// RenderWelcome builds the one-time welcome email for first-time recipients.
func RenderWelcome(to, domain string) (Message, error) {
	var html strings.Builder
	if err := welcomeTmpl.Execute(&html, struct{ Domain string }{domain}); err != nil {
		return Message{}, fmt.Errorf("render welcome html: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Welcome to DomainVetter!",
		HTML:    html.String(),
	}, nil
}

// renderText is the plain-text alternative for clients that skip HTML.
func renderText(view reportView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Domain Security Report for %s\n", view.Domain)
	fmt.Fprintf(&b, "Generated on %s\n\n", view.Generated)
	fmt.Fprintf(&b, "OVERALL SECURITY SCORE: %d/100 (Grade: %s)\n\n", view.Score, view.Grade)

	b.WriteString("COMPONENT ANALYSIS:\n")
	for _, c := range view.Components {
		fmt.Fprintf(&b, "* %s: %s (%d/%d)\n", c.Title, c.Status, c.Score, c.Max)
	}

	if len(view.Issues) > 0 {
		b.WriteString("\nISSUES FOUND:\n")
		for _, issue := range view.Issues {
			fmt.Fprintf(&b, "* %s\n", issue)
		}
	}
	if len(view.Recommendations) > 0 {
		b.WriteString("\nRECOMMENDATIONS:\n")
		for _, rec := range view.Recommendations {
			fmt.Fprintf(&b, "* %s\n", rec)
		}
	}

	b.WriteString("\nNeed help? Reply to this email for technical support.\n")
	b.WriteString("\n---\nDomainVetter\nProtecting your domain security, one check at a time.\n")
	return b.String()
}

func title(status models.RecordStatus) string {
	s := string(status)
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
