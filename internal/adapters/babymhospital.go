package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// Accordion sections on a babymhospital.org doctor page. Content stays out of
// the DOM until its section is expanded.
var babymSections = []string{
	"Qualification",
	"Work Experience",
	"Research",
	"Publications",
	"Awards",
}

const babymClickSettle = time.Second

// ExtractBabymhospital expands every accordion section on the live page,
// then reads the updated DOM. A section that fails to click is skipped; its
// fields come out NA.
func ExtractBabymhospital(ctx context.Context, page harvester.Page, url string) (*harvester.Record, error) {
	for _, section := range babymSections {
		target := fmt.Sprintf("//a[contains(., %q)]", section)
		if err := page.Click(ctx, target); err != nil {
			continue
		}
		if err := page.Sleep(ctx, babymClickSettle); err != nil {
			return nil, err
		}
	}

	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := scoped(doc, "div.container > div.tab_container")

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "#tab1 > div.tat-det > h5"))
	rec.Set("clinic_name", "Baby Memorial Hospital")
	rec.Set("education", sectionText(root, "Qualification"))
	rec.Set("experience", sectionText(root, "Work Experience"))
	rec.Set("speciality", text(root, "#tab1 > div.tat-det > p.dr-postion:nth-of-type(1)"))
	rec.Set("address", text(doc.Selection, "div.address-block p"))
	rec.Set("mci", "")
	rec.Set("passing_year", "")
	rec.Set("memberships", "")
	rec.Set("fees", "")
	rec.Set("timing", text(doc.Selection, "div.doc-img > div.opening-times > ul"))
	rec.Set("awards", sectionText(root, "Awards"))
	rec.Set("publications", sectionText(root, "Publications"))
	rec.Set("research", sectionText(root, "Research"))

	spec, _ := rec.Get("speciality")
	rec.Set("specializations", spec)
	edu, _ := rec.Get("education")
	rec.Set("full_education", edu)
	exp, _ := rec.Get("experience")
	rec.Set("full_experience", exp)
	rec.Set("registrations", "")
	rec.Set("services", "")

	name, _ := rec.Get("clinic_name")
	addr, _ := rec.Get("address")
	timing, _ := rec.Get("timing")
	rec.Set("clinic__name1", name)
	rec.Set("address1", addr)
	rec.Set("timing1", timing)
	rec.Set("fee1", "")

	return rec, nil
}

// sectionText finds the accordion item whose toggle link carries the section
// label and returns the text of its expanded inner block.
func sectionText(root *goquery.Selection, section string) string {
	var out string
	root.Find("div.item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		link := item.Find("a").First()
		if !containsFold(link.Text(), section) {
			return true
		}
		out = clean(item.Find("div.inner").First().Text())
		return false
	})
	return out
}
