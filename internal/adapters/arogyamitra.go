package adapters

import "github.com/adpillai/hcp-harvester/internal/harvester"

// ExtractArogyamitra reads an arogyamitra.com doctor profile, scoped to the
// page's content wrapper when present.
func ExtractArogyamitra(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := scoped(doc, "div.main-wrapper > div.content")

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "div.doc-info-left > div.doc-info-cont > h4.doc-name"))
	rec.Set("clinic_name", text(root, "a.name"))
	rec.Set("education", text(root, "div.widget.education-widget > div.experience-box > ul.experience-list"))
	rec.Set("experience", "")
	rec.Set("speciality", text(root, "div.doc-info-left > div.doc-info-cont > p.doc-department"))
	rec.Set("address", text(root, "div.doc-info-cont > div.clinic-details > p.doc-location"))
	rec.Set("fees", text(root, "div.clini-infos > ul > li:nth-of-type(4)"))
	rec.Set("timing", "")
	spec, _ := rec.Get("speciality")
	rec.Set("specializations", spec)
	edu, _ := rec.Get("education")
	rec.Set("full_education", edu)
	rec.SetList("services", texts(root, "ul.clearfix"))

	name, _ := rec.Get("clinic_name")
	addr, _ := rec.Get("address")
	fee, _ := rec.Get("fees")
	rec.Set("clinic__name1", name)
	rec.Set("address1", addr)
	rec.Set("timing1", "")
	rec.Set("fee1", fee)

	return rec, nil
}
