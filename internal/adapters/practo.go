package adapters

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractPracto reads a practo.com doctor profile, including the per-clinic
// fan-out: each distinct clinic on the page adds clinic__nameN, addressN,
// timingN and feeN fields.
func ExtractPracto(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "h1", "#container h1"))
	rec.Set("clinic_name", text(root, "div.c-profile__clinic__name h2 a", ".c-profile--clinic__name"))
	rec.Set("education", text(root, "#education p", "div.info-section p"))
	rec.Set("experience", text(root, "#experience h2", "div.info-section h2"))
	rec.Set("speciality", text(root,
		".u-d-inline-flex",
		"#container div span > h2",
		"#container div span",
		".c-profile--doctor__speciality"))
	rec.Set("address", text(root,
		"div.c-profile--clinic__address",
		"div p.address",
		".c-profile--clinic__address"))
	rec.Set("mci", text(root, "#registrations .pure-u-1", "#registrations div"))
	rec.Set("passing_year", text(root, "#education span span"))
	rec.SetList("memberships", texts(root, "#memberships .p-entity--list"))
	rec.Set("fees", text(root,
		"[data-qa-id='consultation_fee']",
		"#container div:nth-of-type(3) > div",
		".c-profile--clinic__fee"))
	rec.Set("timing", text(root, "[data-qa-id='timings_list']", "div.u-cushion--left"))
	rec.SetList("awards", texts(root, "#awards\\ and\\ recognitions .pure-u-1"))
	rec.SetList("specializations", texts(root, "#specializations .pure-u-1"))
	rec.SetList("full_education", texts(root, "#education .pure-u-1"))
	rec.SetList("full_experience", texts(root, "#experience .pure-u-1"))
	rec.SetList("registrations", texts(root, "#registrations .pure-u-1"))
	rec.SetList("services", texts(root, "#services .pure-u-1-3"))

	// One field group per distinct clinic, deduplicated by clinic name.
	seen := make(map[string]struct{})
	index := 1
	doc.Find(".c-profile--clinic--item").Each(func(_ int, clinic *goquery.Selection) {
		name := clean(clinic.Find(".c-profile--clinic__name").First().Text())
		if name == "" {
			name = harvester.NA
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}

		rec.Set(fmt.Sprintf("clinic__name%d", index), name)
		rec.Set(fmt.Sprintf("address%d", index), clean(clinic.Find(".c-profile--clinic__address").First().Text()))
		rec.Set(fmt.Sprintf("timing%d", index), clean(clinic.Find(".u-cushion--left").First().Text()))
		rec.Set(fmt.Sprintf("fee%d", index), clean(clinic.Find("[data-qa-id='consultation_fee']").First().Text()))
		index++
	})

	return rec, nil
}
