package adapters

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractDrlogy reads a drlogy.com doctor profile. Section values live in
// labeled blocks whose order varies, so they are matched by heading text.
func ExtractDrlogy(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, ".hph1"))

	headline := root.Find(".hph2")
	rec.Set("education", clean(headline.Eq(0).Text()))
	rec.Set("speciality", clean(headline.Eq(1).Text()))

	rec.Set("experience", text(root, ".hpd-v"))
	rec.Set("Services Provided", text(root, ".hpd-v1"))

	// Labeled detail sections: h4 headings paired positionally with lists.
	sections := root.Find(".dtls-pra h4")
	blocks := root.Find(".dtls-pra ul")
	sections.Each(func(i int, s *goquery.Selection) {
		value := harvester.NA
		if i < blocks.Length() {
			value = clean(blocks.Eq(i).Text())
		}
		setLabeled(rec, clean(s.Text()), value)
	})

	// Fallback layout: heading plus list items inside one wrapper.
	root.Find(".hph-2.view-all-par").Each(func(_ int, sec *goquery.Selection) {
		label := clean(sec.Find("h2").First().Text())
		if label == "" {
			return
		}
		var items []string
		sec.Find("ul li").Each(func(_ int, li *goquery.Selection) {
			if t := clean(li.Text()); t != "" {
				items = append(items, t)
			}
		})
		value := harvester.NA
		if len(items) > 0 {
			value = strings.Join(items, ", ")
		}
		setLabeled(rec, label, value)
	})

	rec.Set("clinic_name", text(root, ".dr-hp .hp-h-2"))
	rec.Set("address", text(root, ".dr-hp .pc-docs-adress"))
	rec.SetList("timing", texts(root, ".dr-hp .dr-fee p"))
	rec.SetList("fees", texts(root, ".dr-hp .dr-tim p"))
	return rec, nil
}

func setLabeled(rec *harvester.Record, label, value string) {
	switch label = strings.ToLower(label); {
	case strings.Contains(label, "registration"):
		rec.Set("mci", value)
	case strings.Contains(label, "education"):
		rec.Set("full_education", value)
	case strings.Contains(label, "language"):
		rec.Set("Languages spoken", value)
	case strings.Contains(label, "services"):
		rec.Set("services", value)
	case strings.Contains(label, "specialization"):
		rec.Set("specializations", value)
	}
}
