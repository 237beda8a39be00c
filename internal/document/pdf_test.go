package document

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
)

func testRenderer() *PDFRenderer {
	return NewPDFRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := testRenderer().Render(testPayslip(), testEmployee())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderEmptyItemLists(t *testing.T) {
	p := testPayslip()
	p.Incomes = nil
	p.DeductionItems = nil

	out, err := testRenderer().Render(p, testEmployee())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderMissingLogoDoesNotFail(t *testing.T) {
	p := testPayslip()
	p.CompanyInfo.LogoURL = "/nonexistent/logo.png"

	out, err := testRenderer().Render(p, testEmployee())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderNeedsReviewComment(t *testing.T) {
	p := testPayslip()
	p.Status = payslip.StatusNeedsReview
	comment := "Overtime hours look wrong"
	p.EmployeeComment = &comment

	out, err := testRenderer().Render(p, testEmployee())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderAllOnePagePerPayslip(t *testing.T) {
	p1 := testPayslip()
	p2 := testPayslip()
	p2.ID = "pay-2"
	p2.GrossPay = decimal.NewFromInt(5200)

	single, err := testRenderer().Render(p1, testEmployee())
	require.NoError(t, err)

	out, err := testRenderer().RenderAll([]payslip.Payslip{p1, p2}, testEmployee())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Greater(t, len(out), len(single))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		r, g, b int
	}{
		{"valid with hash", "#1a2b3c", 0x1a, 0x2b, 0x3c},
		{"valid without hash", "ff0000", 255, 0, 0},
		{"empty falls back", "", 1, 2, 3},
		{"malformed falls back", "#zzz", 1, 2, 3},
		{"short falls back", "#fff", 1, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := parseHexColor(tt.in, 1, 2, 3)
			assert.Equal(t, tt.r, r)
			assert.Equal(t, tt.g, g)
			assert.Equal(t, tt.b, b)
		})
	}
}

func TestImageTypeFor(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 8)...)
	jpg := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	assert.Equal(t, "PNG", imageTypeFor("logo.png", nil))
	assert.Equal(t, "JPG", imageTypeFor("logo.jpeg", nil))
	assert.Equal(t, "PNG", imageTypeFor("logo", png))
	assert.Equal(t, "JPG", imageTypeFor("logo", jpg))
	assert.Equal(t, "", imageTypeFor("logo.gif", []byte("GIF89a")))
}
