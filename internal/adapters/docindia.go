package adapters

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractDocindia reads a docindia.org doctor profile. Rendered client side,
// so the domain is on the browser strategy.
func ExtractDocindia(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "#docName"))
	rec.Set("speciality", text(root, "#docSpeciality"))
	rec.Set("education", text(root, "#docTitle"))
	rec.Set("clinic_name", text(root, ".clinic-name"))
	rec.Set("address", text(root, ".clinic-direction"))
	rec.SetList("services", texts(root, "#ServicesOffered ul li"))
	rec.SetList("full_education", texts(root, "#Education_list li"))
	rec.SetList("specializations", texts(root, "#Specializations_list li"))
	rec.SetList("awards", texts(root, "#Award_list li"))

	root.Find(".location-list").Each(func(i int, clinic *goquery.Selection) {
		index := i + 1
		rec.Set(fmt.Sprintf("clinic__name%d", index), clean(clinic.Find(".clinic-name").First().Text()))
		rec.Set(fmt.Sprintf("address%d", index), clean(clinic.Find(".clinic-direction").First().Text()))
	})

	return rec, nil
}
