package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/winposture/winposture/internal/evidence"
	"github.com/winposture/winposture/internal/report"
)

// Page geometry in points (Letter, 0.75in side margins).
const (
	pdfMarginSide = 54
	pdfMarginTop  = 57.6
	pdfContentW   = 504
)

const pdfUpdatesShown = 10

// PDF renders the two-page report: summary and findings on page one,
// evidence detail tables on page two. Output is deterministic for a given
// Report: the document dates are pinned to the report timestamp, so repeated
// renders produce identical bytes.
func PDF(r *report.Report) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetTitle("Security Posture Report - "+r.System.Hostname, true)
	doc.SetAuthor("winposture", true)
	pinDocumentDates(doc, r.System.TimestampUTC)
	doc.SetMargins(pdfMarginSide, pdfMarginTop, pdfMarginSide)
	doc.SetAutoPageBreak(true, pdfMarginSide)

	w := &pdfWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}
	doc.SetFooterFunc(func() {
		doc.SetY(-40)
		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(107, 114, 128)
		doc.CellFormat(pdfContentW/2, 10, w.tr("winposture - generated locally"), "", 0, "L", false, 0, "")
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d", doc.PageNo()), "", 0, "R", false, 0, "")
	})

	w.summaryPage(r)
	w.evidencePage(r)

	if doc.Err() {
		return nil, fmt.Errorf("pdf backend: %w", doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf backend: %w", err)
	}
	return buf.Bytes(), nil
}

// pinDocumentDates fixes the PDF metadata clock to the report timestamp.
func pinDocumentDates(doc *fpdf.Fpdf, timestamp string) {
	ts, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		ts = time.Unix(0, 0).UTC()
	}
	doc.SetCreationDate(ts)
	doc.SetModificationDate(ts)
}

type pdfWriter struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) summaryPage(r *report.Report) {
	doc := w.doc
	doc.AddPage()

	// Header band: dark title cell, score-colored bucket cell.
	accR, accG, accB := scoreAccent(r.Score)
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(255, 255, 255)
	doc.SetFillColor(17, 24, 39)
	doc.CellFormat(352.8, 32.4, w.tr("  Security Posture Report"), "", 0, "LM", true, 0, "")
	doc.SetFillColor(accR, accG, accB)
	doc.CellFormat(151.2, 32.4, fmt.Sprintf("%d/100   %s", r.Score, ScoreLabel(r.Score)), "", 1, "CM", true, 0, "")
	doc.Ln(10)

	w.mutedLine(fmt.Sprintf("Host: %s    OS: %s", r.System.Hostname, r.System.OS))
	w.mutedLine("Generated (UTC): " + r.System.TimestampUTC)
	doc.Ln(14)

	uptime := "N/A"
	if r.UptimeSeconds != nil {
		uptime = fmt.Sprintf("%d", *r.UptimeSeconds)
	}
	w.summaryCards([][2]string{
		{"Defender", availabilityWord(r.Defender.Available)},
		{"Firewall", availabilityWord(r.Firewall.Available)},
		{"Updates Found", fmt.Sprintf("%d", len(r.Updates.Updates))},
		{"Uptime (sec)", uptime},
		{"Outputs", "report.html / report.pdf / report.json"},
		{"Evidence", "raw_logs folder included"},
	})
	doc.Ln(12)

	w.h2("Findings")
	if len(r.Findings) == 0 {
		doc.SetFont("Helvetica", "", 9.5)
		doc.SetTextColor(17, 24, 39)
		doc.CellFormat(pdfContentW, 14, "No major findings detected.", "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{72, 180, 252}
	w.tableHeader(widths, []string{"Severity", "Finding", "Detail"})
	for _, f := range r.Findings {
		sevR, sevG, sevB := severityColor(f.Severity)
		doc.SetFont("Helvetica", "B", 9.5)
		doc.SetTextColor(sevR, sevG, sevB)
		doc.CellFormat(widths[0], 18, strings.ToUpper(string(f.Severity)), "1", 0, "LM", false, 0, "")
		doc.SetTextColor(17, 24, 39)
		doc.CellFormat(widths[1], 18, w.tr(f.Title), "1", 0, "LM", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.SetTextColor(75, 85, 99)
		doc.CellFormat(widths[2], 18, w.tr(truncate(f.Detail, 78)), "1", 1, "LM", false, 0, "")
	}
}

func (w *pdfWriter) evidencePage(r *report.Report) {
	doc := w.doc
	doc.AddPage()

	w.h2("Evidence Details")
	w.mutedLine("This section provides a structured snapshot of collected evidence. Raw artifacts are saved in the raw_logs folder.")
	doc.Ln(10)

	w.h2("Microsoft Defender")
	if r.Defender.Available {
		widths := []float64{187.2, 316.8}
		w.tableHeader(widths, []string{"Field", "Value"})
		w.tableRow(widths, []string{"AMServiceEnabled", boolWord(r.Defender.Data.AMServiceEnabled)})
		w.tableRow(widths, []string{"AntispywareEnabled", boolWord(r.Defender.Data.AntispywareEnabled)})
		w.tableRow(widths, []string{"AntivirusEnabled", boolWord(r.Defender.Data.AntivirusEnabled)})
		w.tableRow(widths, []string{"RealTimeProtectionEnabled", boolWord(r.Defender.Data.RealTimeProtectionEnabled)})
	} else {
		w.unavailable(r.Defender.Error)
	}
	doc.Ln(10)

	w.h2("Windows Firewall Profiles")
	if r.Firewall.Available {
		widths := []float64{331.2, 172.8}
		w.tableHeader(widths, []string{"Name", "Enabled"})
		for _, p := range r.Firewall.Profiles {
			w.tableRow(widths, []string{p.Name, boolWord(p.Enabled)})
		}
	} else {
		w.unavailable(r.Firewall.Error)
	}
	doc.Ln(10)

	w.h2(fmt.Sprintf("Recent Windows Updates (Top %d)", pdfUpdatesShown))
	if r.Updates.Available && len(r.Updates.Updates) > 0 {
		widths := []float64{100.8, 302.4, 100.8}
		w.tableHeader(widths, []string{"HotFixID", "Description", "InstalledOn"})
		updates := r.Updates.Updates
		if len(updates) > pdfUpdatesShown {
			updates = updates[:pdfUpdatesShown]
		}
		for _, u := range updates {
			w.tableRow(widths, []string{u.HotFixID, truncate(u.Description, 64), u.InstalledOn.String()})
		}
	} else {
		w.unavailable(r.Updates.Error)
	}
}

func (w *pdfWriter) summaryCards(cards [][2]string) {
	doc := w.doc
	const cardW, cardH = 168.0, 44.0
	top := doc.GetY()
	for i, card := range cards {
		x := pdfMarginSide + float64(i%3)*cardW
		y := top + float64(i/3)*cardH
		doc.SetFillColor(248, 250, 252)
		doc.SetDrawColor(229, 231, 235)
		doc.Rect(x, y, cardW, cardH, "FD")
		doc.SetXY(x+10, y+9)
		doc.SetFont("Helvetica", "B", 9.5)
		doc.SetTextColor(17, 24, 39)
		doc.CellFormat(cardW-20, 12, w.tr(card[0]), "", 2, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9.5)
		doc.SetTextColor(75, 85, 99)
		doc.CellFormat(cardW-20, 12, w.tr(card[1]), "", 0, "L", false, 0, "")
	}
	doc.SetXY(pdfMarginSide, top+2*cardH)
}

func (w *pdfWriter) h2(text string) {
	w.doc.SetFont("Helvetica", "B", 12.5)
	w.doc.SetTextColor(17, 24, 39)
	w.doc.CellFormat(pdfContentW, 16, w.tr(text), "", 1, "L", false, 0, "")
	w.doc.Ln(2)
}

func (w *pdfWriter) mutedLine(text string) {
	w.doc.SetFont("Helvetica", "", 9.5)
	w.doc.SetTextColor(107, 114, 128)
	w.doc.CellFormat(pdfContentW, 12, w.tr(text), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) tableHeader(widths []float64, labels []string) {
	doc := w.doc
	doc.SetFillColor(243, 244, 246)
	doc.SetDrawColor(229, 231, 235)
	doc.SetFont("Helvetica", "B", 9)
	doc.SetTextColor(75, 85, 99)
	for i, label := range labels {
		ln := 0
		if i == len(labels)-1 {
			ln = 1
		}
		doc.CellFormat(widths[i], 20, w.tr(label), "1", ln, "LM", true, 0, "")
	}
}

func (w *pdfWriter) tableRow(widths []float64, values []string) {
	doc := w.doc
	doc.SetFont("Helvetica", "", 9.5)
	doc.SetTextColor(17, 24, 39)
	doc.SetDrawColor(229, 231, 235)
	for i, v := range values {
		ln := 0
		if i == len(values)-1 {
			ln = 1
		}
		doc.CellFormat(widths[i], 18, w.tr(v), "1", ln, "LM", false, 0, "")
	}
}

func (w *pdfWriter) unavailable(reason string) {
	w.doc.SetFont("Helvetica", "", 9)
	w.doc.SetTextColor(75, 85, 99)
	w.doc.CellFormat(pdfContentW, 14, w.tr("Unavailable: "+reason), "", 1, "L", false, 0, "")
}

func boolWord(b evidence.Bool) string {
	switch {
	case b.True():
		return "true"
	case b.False():
		return "false"
	default:
		return ""
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
