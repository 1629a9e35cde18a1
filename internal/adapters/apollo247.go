package adapters

import "github.com/adpillai/hcp-harvester/internal/harvester"

// ExtractApollo247 reads an apollo247.com doctor profile. Class names carry
// CSS-module hash suffixes and change on redeploys.
func ExtractApollo247(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, ".DoctorProfileCard_doctorName__MIyRL"))
	rec.Set("speciality", text(root, ".DoctorProfileCard_specialty__NqwMO"))
	rec.Set("experience", text(root, ".DoctorProfileCard_experience__Sc9lA"))
	rec.Set("Languages spoken", text(root, ".DoctorProfileCard_languages__quMKs"))
	rec.Set("clinic_name", text(root, ".DoctorProfileCard_value__Dl2aa"))
	rec.Set("address", text(root, ".DoctorProfileCard_address__9LhAg"))
	rec.SetList("mci", texts(root, ".Sections_registration__efQuF p"))
	rec.SetList("full_education", texts(root, ".Sections_education__F_ZfH p"))
	rec.SetList("services", texts(root, ".Sections_conditions__WlGKt li"))
	rec.SetList("fee", texts(root, ".slots_heading__1iC9I p"))
	rec.Set("timing", text(root, ".slots_availabilityText__qX8fg"))
	return rec, nil
}
