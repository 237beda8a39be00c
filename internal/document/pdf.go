// Package document renders payslips to downloadable formats. Rendering
// is pure layout over an already-loaded record; it never touches the
// database.
package document

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
)

const (
	pageMarginMM   = 10.0
	contentWidthMM = 190.0
	logoBoxMM      = 28.0
)

// PDFRenderer draws payslips with a fixed A4 layout. Logos referenced
// by URL are fetched with a bounded timeout; any load failure degrades
// to a text placeholder rather than failing the render.
type PDFRenderer struct {
	client *http.Client
	logger *slog.Logger
}

func NewPDFRenderer(logger *slog.Logger) *PDFRenderer {
	return &PDFRenderer{
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

// Render produces a single-page PDF for one payslip.
func (r *PDFRenderer) Render(p payslip.Payslip, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	r.renderPage(pdf, p, emp)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderAll produces one page per payslip, in the given order.
func (r *PDFRenderer) RenderAll(ps []payslip.Payslip, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	for _, p := range ps {
		r.renderPage(pdf, p, emp)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderPage(pdf *gofpdf.Fpdf, p payslip.Payslip, emp employee.Employee) {
	pdf.AddPage()

	y := pageMarginMM
	if p.CompanyInfo.Name != "" {
		y = r.drawHeader(pdf, p, y)
	}

	y = r.drawTitleBar(pdf, p, y)
	y = r.drawEmployeeTable(pdf, p, emp, y)
	y = r.drawEarningsTable(pdf, p, y)
	y = r.drawNetBanner(pdf, p, y)
	r.drawStatusLine(pdf, p, y)
}

// drawHeader renders the bordered company box: logo on the left,
// identity lines on the right. Returns the y below the box.
func (r *PDFRenderer) drawHeader(pdf *gofpdf.Fpdf, p payslip.Payslip, y float64) float64 {
	info := p.CompanyInfo
	boxH := 34.0

	pdf.SetDrawColor(120, 120, 120)
	pdf.Rect(pageMarginMM, y, contentWidthMM, boxH, "D")

	r.drawLogo(pdf, info.LogoURL, pageMarginMM+3, y+3)

	textX := pageMarginMM + logoBoxMM + 8
	lineY := y + 5

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(textX, lineY+3, info.Name)
	lineY += 7

	pdf.SetFont("Helvetica", "", 9)
	if info.RegistrationNo != "" {
		pdf.Text(textX, lineY+3, "Reg. No: "+info.RegistrationNo)
		lineY += 5
	}
	if info.Address != "" {
		pdf.Text(textX, lineY+3, info.Address)
		lineY += 5
	}

	var contact []string
	if info.Phone != "" {
		contact = append(contact, "Tel: "+info.Phone)
	}
	if info.Email != "" {
		contact = append(contact, info.Email)
	}
	if len(contact) > 0 {
		pdf.Text(textX, lineY+3, strings.Join(contact, "  |  "))
		lineY += 5
	}
	if info.TaxID != "" {
		pdf.Text(textX, lineY+3, "Tax ID: "+info.TaxID)
	}

	return y + boxH + 4
}

// drawLogo places the company logo inside the header box. Remote URLs
// are fetched, local paths read from disk. Any failure falls back to a
// literal "LOGO" placeholder.
func (r *PDFRenderer) drawLogo(pdf *gofpdf.Fpdf, logoURL string, x, y float64) {
	img, imgType, err := r.loadLogo(logoURL)
	if err != nil {
		if logoURL != "" {
			r.logger.Warn("payslip logo unavailable, using placeholder", "logo_url", logoURL, "error", err)
		}
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(170, 170, 170)
		pdf.Text(x+4, y+16, "LOGO")
		pdf.SetTextColor(0, 0, 0)
		return
	}

	name := "logo-" + strconv.Itoa(pdf.PageNo())
	opts := gofpdf.ImageOptions{ImageType: imgType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
	if pdf.Err() {
		pdf.ClearError()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetTextColor(170, 170, 170)
		pdf.Text(x+4, y+16, "LOGO")
		pdf.SetTextColor(0, 0, 0)
		return
	}
	pdf.ImageOptions(name, x, y, logoBoxMM, logoBoxMM, false, opts, 0, "")
}

func (r *PDFRenderer) loadLogo(logoURL string) ([]byte, string, error) {
	if logoURL == "" {
		return nil, "", fmt.Errorf("no logo url")
	}

	var data []byte
	if strings.HasPrefix(logoURL, "http://") || strings.HasPrefix(logoURL, "https://") {
		resp, err := r.client.Get(logoURL)
		if err != nil {
			return nil, "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("logo fetch returned %d", resp.StatusCode)
		}
		data, err = io.ReadAll(io.LimitReader(resp.Body, 5<<20))
		if err != nil {
			return nil, "", err
		}
	} else {
		var err error
		data, err = os.ReadFile(logoURL)
		if err != nil {
			return nil, "", err
		}
	}

	imgType := imageTypeFor(logoURL, data)
	if imgType == "" {
		return nil, "", fmt.Errorf("unsupported logo format")
	}
	return data, imgType, nil
}

func imageTypeFor(name string, data []byte) string {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".png"):
		return "PNG"
	case strings.HasSuffix(strings.ToLower(name), ".jpg"),
		strings.HasSuffix(strings.ToLower(name), ".jpeg"):
		return "JPG"
	}
	if len(data) >= 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		return "PNG"
	}
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "JPG"
	}
	return ""
}

func (r *PDFRenderer) drawTitleBar(pdf *gofpdf.Fpdf, p payslip.Payslip, y float64) float64 {
	red, green, blue := parseHexColor(p.CompanyInfo.PrimaryColor, 41, 98, 155)

	pdf.SetFillColor(red, green, blue)
	pdf.Rect(pageMarginMM, y, contentWidthMM, 10, "F")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(pageMarginMM+4, y+7, "Salary Slip")

	pdf.SetFont("Helvetica", "", 10)
	monthYear := p.PeriodStart.Format("January 2006")
	pdf.Text(pageMarginMM+contentWidthMM-4-pdf.GetStringWidth(monthYear), y+7, monthYear)
	pdf.SetTextColor(0, 0, 0)

	return y + 14
}

func (r *PDFRenderer) drawEmployeeTable(pdf *gofpdf.Fpdf, p payslip.Payslip, emp employee.Employee, y float64) float64 {
	designation := ""
	if emp.Designation != nil {
		designation = *emp.Designation
	}
	taxID := ""
	if emp.TaxID != nil {
		taxID = *emp.TaxID
	}

	rows := [][2]string{
		{"Employee Name", emp.Name},
		{"Employee Code", emp.Code},
		{"Designation", designation},
		{"PAN / Tax ID", taxID},
	}

	rowH := 7.0
	labelW := 55.0
	pdf.SetDrawColor(180, 180, 180)
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.Rect(pageMarginMM, y, labelW, rowH, "D")
		pdf.Text(pageMarginMM+2, y+5, row[0])

		pdf.SetFont("Helvetica", "", 9)
		pdf.Rect(pageMarginMM+labelW, y, contentWidthMM-labelW, rowH, "D")
		pdf.Text(pageMarginMM+labelW+2, y+5, row[1])
		y += rowH
	}

	return y + 4
}

// drawEarningsTable renders the two-column income/deductions grid with
// at least three data rows. An empty income list falls back to a single
// "Gross Pay" row; an empty deduction list to a "Deductions" row built
// from the scalar field.
func (r *PDFRenderer) drawEarningsTable(pdf *gofpdf.Fpdf, p payslip.Payslip, y float64) float64 {
	incomes := p.Incomes
	if len(incomes) == 0 {
		incomes = []payslip.LineItem{{Type: "Gross Pay", Amount: p.GrossPay}}
	}
	deductions := p.DeductionItems
	if len(deductions) == 0 {
		deductions = []payslip.LineItem{{Type: "Deductions", Amount: p.Deductions}}
	}

	rowCount := len(incomes)
	if len(deductions) > rowCount {
		rowCount = len(deductions)
	}
	if rowCount < 3 {
		rowCount = 3
	}

	colW := contentWidthMM / 2
	amountW := 32.0
	rowH := 7.0

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetFillColor(235, 235, 235)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Rect(pageMarginMM, y, colW, rowH, "FD")
	pdf.Text(pageMarginMM+2, y+5, "Income")
	pdf.Rect(pageMarginMM+colW, y, colW, rowH, "FD")
	pdf.Text(pageMarginMM+colW+2, y+5, "Deductions")
	y += rowH

	pdf.SetFont("Helvetica", "B", 9)
	pdf.Rect(pageMarginMM, y, colW-amountW, rowH, "D")
	pdf.Text(pageMarginMM+2, y+5, "Particulars")
	pdf.Rect(pageMarginMM+colW-amountW, y, amountW, rowH, "D")
	pdf.Text(pageMarginMM+colW-amountW+2, y+5, "Amount")
	pdf.Rect(pageMarginMM+colW, y, colW-amountW, rowH, "D")
	pdf.Text(pageMarginMM+colW+2, y+5, "Particulars")
	pdf.Rect(pageMarginMM+2*colW-amountW, y, amountW, rowH, "D")
	pdf.Text(pageMarginMM+2*colW-amountW+2, y+5, "Amount")
	y += rowH

	pdf.SetFont("Helvetica", "", 9)
	for i := 0; i < rowCount; i++ {
		var inType, inAmount, dedType, dedAmount string
		if i < len(incomes) {
			inType = incomes[i].Type
			inAmount = formatAmount(incomes[i].Amount)
		}
		if i < len(deductions) {
			dedType = deductions[i].Type
			dedAmount = formatAmount(deductions[i].Amount)
		}

		pdf.Rect(pageMarginMM, y, colW-amountW, rowH, "D")
		pdf.Text(pageMarginMM+2, y+5, inType)
		pdf.Rect(pageMarginMM+colW-amountW, y, amountW, rowH, "D")
		if inAmount != "" {
			pdf.Text(pageMarginMM+colW-2-pdf.GetStringWidth(inAmount), y+5, inAmount)
		}
		pdf.Rect(pageMarginMM+colW, y, colW-amountW, rowH, "D")
		pdf.Text(pageMarginMM+colW+2, y+5, dedType)
		pdf.Rect(pageMarginMM+2*colW-amountW, y, amountW, rowH, "D")
		if dedAmount != "" {
			pdf.Text(pageMarginMM+2*colW-2-pdf.GetStringWidth(dedAmount), y+5, dedAmount)
		}
		y += rowH
	}

	// Totals come from the scalar fields, not the itemized sums.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(245, 245, 245)
	gross := formatAmount(p.GrossPay)
	ded := formatAmount(p.Deductions)
	pdf.Rect(pageMarginMM, y, colW-amountW, rowH, "FD")
	pdf.Text(pageMarginMM+2, y+5, "Total Income")
	pdf.Rect(pageMarginMM+colW-amountW, y, amountW, rowH, "FD")
	pdf.Text(pageMarginMM+colW-2-pdf.GetStringWidth(gross), y+5, gross)
	pdf.Rect(pageMarginMM+colW, y, colW-amountW, rowH, "FD")
	pdf.Text(pageMarginMM+colW+2, y+5, "Total Deductions")
	pdf.Rect(pageMarginMM+2*colW-amountW, y, amountW, rowH, "FD")
	pdf.Text(pageMarginMM+2*colW-2-pdf.GetStringWidth(ded), y+5, ded)
	y += rowH

	return y + 4
}

func (r *PDFRenderer) drawNetBanner(pdf *gofpdf.Fpdf, p payslip.Payslip, y float64) float64 {
	red, green, blue := parseHexColor(p.CompanyInfo.PrimaryColor, 41, 98, 155)

	pdf.SetFillColor(red, green, blue)
	pdf.Rect(pageMarginMM, y, contentWidthMM, 10, "F")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(255, 255, 255)
	pdf.Text(pageMarginMM+4, y+7, "Net Salary")
	net := formatAmount(p.NetPay)
	pdf.Text(pageMarginMM+contentWidthMM-4-pdf.GetStringWidth(net), y+7, net)
	pdf.SetTextColor(0, 0, 0)

	return y + 14
}

func (r *PDFRenderer) drawStatusLine(pdf *gofpdf.Fpdf, p payslip.Payslip, y float64) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(pageMarginMM, y+4, "Status: "+strings.ReplaceAll(string(p.Status), "_", " "))
	y += 6

	if p.Status == payslip.StatusNeedsReview && p.EmployeeComment != nil && *p.EmployeeComment != "" {
		pdf.SetTextColor(200, 60, 40)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Text(pageMarginMM, y+4, "Employee comment: "+*p.EmployeeComment)
		pdf.SetTextColor(0, 0, 0)
	}
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseHexColor converts "#rrggbb" to RGB components, returning the
// given defaults on malformed input.
func parseHexColor(hex string, defR, defG, defB int) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return defR, defG, defB
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return defR, defG, defB
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
