package adapters

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/adpillai/hcp-harvester/internal/harvester"
)

// ExtractMappls reads a mappls.com place detail panel for a clinic listing.
func ExtractMappls(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	detail := "#mCSB_18_container > div.place-detail-sec p"

	rec := harvester.NewRecord(url)
	rec.Set("clinic_name", text(root, "div.col-md-7.col-xs-7 > div.p-d-i-item > h2"))
	rec.Set("address", text(root, detail))
	rec.Set("email_id", text(root, detail))
	rec.Set("phone_number", text(root, detail))
	rec.Set("timings", text(root, detail))
	rec.Set("specialisation", text(root, detail))

	seen := make(map[string]struct{})
	index := 1
	root.Find("div.col-md-7.col-xs-7 > div.p-d-i-item > h2").Each(func(_ int, h *goquery.Selection) {
		name := clean(h.Text())
		if name == "" {
			name = harvester.NA
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}

		rec.Set(fmt.Sprintf("clinic_name%d", index), name)
		rec.Set(fmt.Sprintf("address%d", index), clean(h.Parent().Find("p").First().Text()))
		index++
	})

	return rec, nil
}
