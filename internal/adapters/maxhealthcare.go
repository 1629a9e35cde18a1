package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractMaxhealthcare reads a maxhealthcare.in doctor profile.
func ExtractMaxhealthcare(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := scoped(doc, "#content")

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "div.d-lg-flex.pl-lg-70 > div.d-lg-flex.flex-column > h1.f-lg-36.f-17"))
	rec.Set("clinic_name", "Max Healthcare")
	rec.Set("education", "")
	rec.Set("experience", text(root, "div.d-lg-flex.pl-lg-70 > div.d-lg-flex.flex-column > p.color-white.l-h-12:nth-of-type(2)"))
	rec.Set("speciality", text(root, "div.d-lg-flex.pl-lg-70 > div.d-lg-flex.flex-column > p.color-white.l-h-12:nth-of-type(1)"))
	rec.Set("timing", text(root, "div.site-content.f-15 > ul > li:nth-of-type(1)"))
	rec.Set("awards", awardsCard(doc, "#doctor-detail-accordion > div.bg-transparent.card:nth-of-type(2)"))

	spec, _ := rec.Get("speciality")
	rec.Set("specializations", spec)
	exp, _ := rec.Get("experience")
	rec.Set("full_experience", exp)

	name, _ := rec.Get("clinic_name")
	timing, _ := rec.Get("timing")
	rec.Set("clinic__name1", name)
	rec.Set("address1", "")
	rec.Set("timing1", timing)
	rec.Set("fee1", "")

	return rec, nil
}

// awardsCard joins the list items and paragraphs of an accordion card,
// falling back to the card's whole text.
func awardsCard(doc *goquery.Document, selector string) string {
	card := doc.Find(selector).First()
	if card.Length() == 0 {
		return ""
	}
	var items []string
	card.Find("li, p").Each(func(_ int, s *goquery.Selection) {
		if t := clean(s.Text()); t != "" {
			items = append(items, t)
		}
	})
	if len(items) == 0 {
		return clean(card.Text())
	}
	return strings.Join(items, ", ")
}
