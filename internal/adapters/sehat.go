package adapters

import (
	"strings"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractSehat reads a sehat.com doctor page.
func ExtractSehat(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "#page-content-wrapper h1"))

	clinic := text(root, "#practiceinfo h2 a")
	if i := strings.Index(clinic, ","); i >= 0 {
		clinic = clinic[:i]
	}
	rec.Set("clinic_name", clinic)

	rec.Set("address", text(root, "#practiceinfo p span"))
	rec.Set("education", text(root, "#page-content-wrapper p:nth-of-type(2)"))
	rec.Set("experience", text(root, "#page-content-wrapper ul li span"))
	rec.Set("speciality", text(root, "#overview ul li p"))

	// Degree/year pairs appear as comma-separated lines in the overview list.
	var years []string
	for _, line := range strings.Split(root.Find("#overview ul").First().Text(), "\n") {
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}
		left, right := clean(parts[0]), clean(parts[1])
		if left != "" && right != "" {
			years = append(years, left+" - "+right)
		}
	}
	rec.Set("passing_year", strings.Join(years, ", "))

	return rec, nil
}
