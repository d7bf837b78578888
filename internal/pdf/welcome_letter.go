// Package pdf renders member documents with fpdf.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"membermgr_backend/internal/models"

	"github.com/go-pdf/fpdf"
)

// WelcomeLetterRenderer writes welcome letter PDFs into OutputDir. The file
// name is derived from the member's reference number, so regenerating a
// letter overwrites the previous one.
type WelcomeLetterRenderer struct {
	OutputDir string
}

// NewWelcomeLetterRenderer creates a renderer targeting the given directory.
func NewWelcomeLetterRenderer(outputDir string) *WelcomeLetterRenderer {
	return &WelcomeLetterRenderer{OutputDir: outputDir}
}

// Render produces the PDF and returns its path.
func (r *WelcomeLetterRenderer) Render(member *models.Member, membership *models.Membership) (string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create letter output directory: %w", err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Welcome Letter", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, time.Now().Format("2 January 2006"), "", 1, "R", false, 0, "")
	doc.Ln(8)

	doc.Cell(0, 6, member.FullName)
	doc.Ln(6)
	if member.StreetAddress != nil {
		doc.Cell(0, 6, *member.StreetAddress)
		doc.Ln(6)
	}
	addressLine := member.City
	if member.PostalCode != nil {
		addressLine = *member.PostalCode + " " + member.City
	}
	doc.Cell(0, 6, addressLine)
	doc.Ln(14)

	doc.SetFont("Helvetica", "B", 14)
	doc.Cell(0, 8, "Welcome to the association!")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, fmt.Sprintf(
		"Dear %s,\n\n"+
			"We are delighted to welcome you as a member for the year %d. "+
			"Your membership fee for the year is still open. When paying, please use "+
			"the reference number below so the payment can be matched to you.",
		member.FirstName, membership.Year), "", "L", false)
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(60, 6, "Reference number:")
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, fmt.Sprintf("%d", member.ReferenceNumber))
	doc.Ln(10)

	doc.MultiCell(0, 6, "With kind regards,\n\nThe Membership Team", "", "L", false)

	outputPath := filepath.Join(r.OutputDir, fmt.Sprintf("welcome_letter_%d.pdf", member.ReferenceNumber))
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("failed to write welcome letter PDF: %w", err)
	}
	return outputPath, nil
}
