package adapters

import "github.com/adpillai/hcp-harvester/internal/harvester"

// ExtractQuickerala reads a quickerala.com listing profile.
func ExtractQuickerala(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "div.c-left h2"))
	rec.Set("education", text(root, "div.c-left div > span"))
	rec.Set("speciality", text(root, "div.c-left span"))
	rec.Set("clinic_name", text(root, "div.c-right h4"))
	rec.Set("address", text(root, "div.c-right p"))
	return rec, nil
}
