package adapters

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractLybrate reads a lybrate.com doctor profile. Most list data hangs off
// h3 headings followed by a sibling list block.
func ExtractLybrate(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, ".doctorCard_doctorName__profile__WWGCS"))
	rec.Set("clinic_name", text(root, "h3.css-13z06yo"))
	rec.Set("address", text(root, "div.css-0 > div:nth-of-type(1)"))
	rec.Set("clinic_Locationn", text(root, ".cliniclocation_locAddText__vN6U8"))
	rec.Set("experience", text(root, ".doctorCard_experience__AyNl1"))
	rec.Set("doctor_location", text(root, ".doctorCard_locality__profile__4Kjc7"))
	rec.Set("education", text(root, ".doctorCard_docDegree__eZgab.doctorCard_docDegree__profile__h6OPg"))

	rec.Set("memberships", headingList(root, "Professional Memberships"))
	rec.Set("full_experience", headingList(root, "Past Experience"))
	rec.Set("full_education", headingList(root, "Education"))
	rec.Set("speciality", headingList(root, "Speciality"))
	rec.Set("specializations", headingList(root, "Other treatment areas"))
	rec.Set("Languages spoken", headingList(root, "Languages spoken"))
	rec.Set("fees", text(root, ".doctorCard_cosmeticLogoWrapper__5t6em"))

	firstTiming := ""
	root.Find(".clinicCard_cardContainer__2Sekg").Each(func(i int, clinic *goquery.Selection) {
		index := i + 1
		timing := clean(clinic.Find(".clinicCard_timeContainer__LECv8").First().Text())
		if index == 1 {
			firstTiming = timing
		}
		rec.Set(fmt.Sprintf("clinic__name%d", index),
			clean(clinic.Find(".clinicCard_heading__A8cCn.clinicCard_heading__normal__11Zgs").First().Text()))
		rec.Set(fmt.Sprintf("address%d", index),
			clean(clinic.Find(".clinicCard_clinicAdd____rlg").First().Text()))
		rec.Set(fmt.Sprintf("fee%d", index),
			clean(clinic.Find(".clinicCard_text__HS137").First().Text()))
		rec.Set(fmt.Sprintf("timing%d", index), timing)
	})
	rec.Set("timing", firstTiming)

	return rec, nil
}

// headingList finds the h3 with the given text and joins the list items of
// its following sibling block.
func headingList(root *goquery.Selection, heading string) string {
	var items []string
	root.Find("h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if clean(h.Text()) != heading {
			return true
		}
		h.NextFiltered("div").Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := clean(li.Text()); t != "" {
				items = append(items, t)
			}
		})
		return false
	})
	return strings.Join(items, ", ")
}
