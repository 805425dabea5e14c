package worksheet

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PDFConfig controls page layout.
type PDFConfig struct {
	PageSize   string // "A4" or "Letter"
	MarginsMM  float64
	FontFamily string // core font, e.g. "Helvetica"

	// FontFile is an optional UTF-8 TrueType font. Core fonts only cover
	// Latin text, so stories in other scripts need one.
	FontFile string
}

const (
	rowHeight   = 14.0
	storyHeight = 7.0
	customFont  = "worksheet"
)

// RenderPDF writes the question pages followed by an answer key page.
func RenderPDF(w io.Writer, s *Sheet, cfg PDFConfig) error {
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Helvetica"
	}

	pdf := fpdf.New("P", "mm", cfg.PageSize, "")
	pdf.SetMargins(cfg.MarginsMM, cfg.MarginsMM, cfg.MarginsMM)
	pdf.SetAutoPageBreak(true, cfg.MarginsMM+8)

	family := cfg.FontFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if cfg.FontFile != "" {
		pdf.AddUTF8Font(customFont, "", cfg.FontFile)
		pdf.AddUTF8Font(customFont, "B", cfg.FontFile)
		family = customFont
		tr = func(s string) string { return s }
	}

	title := titleCase(s.Title, s.Locale)
	pdf.SetTitle(title, true)
	pdf.SetCreator("mumskids", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-cfg.MarginsMM)
		pdf.SetFont(family, "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Questions.
	pdf.AddPage()
	header(pdf, family, tr, title, s)
	pdf.SetFont(family, "", 14)
	if s.HasStories() {
		for i, q := range s.Questions {
			pdf.MultiCell(0, storyHeight, tr(fmt.Sprintf("%d. %s", q.Index, s.Stories[i])), "", "L", false)
			pdf.CellFormat(0, rowHeight-storyHeight, tr("Answer: ________"), "", 1, "R", false, 0, "")
			pdf.Ln(2)
		}
	} else {
		grid(pdf, s.Columns, len(s.Questions), func(i int) string {
			q := s.Questions[i]
			return fmt.Sprintf("%d)  %s = ____", q.Index, q.Text())
		})
	}

	// Answer key.
	pdf.AddPage()
	pdf.SetFont(family, "B", 18)
	pdf.CellFormat(0, 12, tr(title+" · Answer key"), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont(family, "", 12)
	grid(pdf, max(s.Columns, 5), len(s.Questions), func(i int) string {
		q := s.Questions[i]
		return fmt.Sprintf("%d)  %d", q.Index, q.Answer)
	})

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render worksheet: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write worksheet pdf: %w", err)
	}
	return nil
}

func header(pdf *fpdf.Fpdf, family string, tr func(string) string, title string, s *Sheet) {
	pdf.SetFont(family, "B", 22)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")

	pdf.SetFont(family, "", 11)
	pdf.CellFormat(0, 7, tr(s.Subtitle), "", 1, "C", false, 0, "")

	name := "Name: ________________"
	if s.Name != "" {
		name = "Name: " + s.Name
	}
	pdf.CellFormat(0, 10, tr(name+"     Date: "+s.CreatedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// grid lays n cells out left to right, cols per row.
func grid(pdf *fpdf.Fpdf, cols, n int, cell func(i int) string) {
	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	colW := (pageW - left - right) / float64(cols)
	for i := range n {
		ln := 0
		if (i+1)%cols == 0 || i == n-1 {
			ln = 1
		}
		pdf.CellFormat(colW, rowHeight, cell(i), "", ln, "L", false, 0, "")
	}
}

// titleCase capitalises a title by the rules of locale. Titles that
// already contain capitals are left alone.
func titleCase(title, locale string) string {
	if title != strings.ToLower(title) {
		return title
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return cases.Title(tag).String(title)
}
