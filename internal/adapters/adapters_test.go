package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adpillai/hcp-harvester/internal/harvester"
	"github.com/adpillai/hcp-harvester/internal/registry"
)

func get(t *testing.T, rec *harvester.Record, name string) string {
	t.Helper()
	v, ok := rec.Get(name)
	require.True(t, ok, "field %s missing", name)
	return v
}

func TestExtractQuickerala(t *testing.T) {
	t.Parallel()

	const fixture = `<html><body>
<div class="c-left"><h2>Dr. Ramesh Nair</h2><div><span>MBBS, DM</span></div></div>
<div class="c-right"><h4>Lakeshore Hospital</h4><p>NH Bypass, Maradu, Kochi</p></div>
</body></html>`

	rec, err := ExtractQuickerala(fixture, "https://www.quickerala.com/dr/ramesh-nair")
	require.NoError(t, err)

	require.Equal(t, "Dr. Ramesh Nair", get(t, rec, "name"))
	require.Equal(t, "MBBS, DM", get(t, rec, "education"))
	require.Equal(t, "Lakeshore Hospital", get(t, rec, "clinic_name"))
	require.Equal(t, "NH Bypass, Maradu, Kochi", get(t, rec, "address"))
}

func TestExtractApollo247(t *testing.T) {
	t.Parallel()

	const fixture = `<html><body>
<div class="DoctorProfileCard_doctorName__MIyRL">Dr. Kavitha Rao</div>
<div class="DoctorProfileCard_specialty__NqwMO">Gastroenterology</div>
<div class="DoctorProfileCard_experience__Sc9lA">15 years</div>
<div class="DoctorProfileCard_languages__quMKs">English, Kannada</div>
<div class="Sections_education__F_ZfH"><p>MBBS</p><p>DNB - Gastroenterology</p></div>
<div class="Sections_conditions__WlGKt"><ul><li>IBS</li><li>Hepatitis</li></ul></div>
</body></html>`

	rec, err := ExtractApollo247(fixture, "https://www.apollo247.com/doctors/dr-kavitha-rao")
	require.NoError(t, err)

	require.Equal(t, "Dr. Kavitha Rao", get(t, rec, "name"))
	require.Equal(t, "Gastroenterology", get(t, rec, "speciality"))
	require.Equal(t, "MBBS, DNB - Gastroenterology", get(t, rec, "full_education"))
	require.Equal(t, "IBS, Hepatitis", get(t, rec, "services"))
	require.Equal(t, harvester.NA, get(t, rec, "timing"))
}

func TestExtractDrlogyLabeledSections(t *testing.T) {
	t.Parallel()

	const fixture = `<html><body>
<div class="hph1">Dr. Vivek Shah</div>
<div class="hph2">MBBS, MS</div>
<div class="hph2">General Surgeon</div>
<div class="hpd-v">12 Years</div>
<div class="dtls-pra">
  <h4>Registration</h4><ul><li>G-44556 Gujarat Medical Council</li></ul>
  <h4>Education</h4><ul><li>MBBS - BJ Medical College</li></ul>
  <h4>Languages</h4><ul><li>Hindi, Gujarati</li></ul>
</div>
<div class="dr-hp">
  <div class="hp-h-2">Shah Surgical Clinic</div>
  <div class="pc-docs-adress">Navrangpura, Ahmedabad</div>
</div>
</body></html>`

	rec, err := ExtractDrlogy(fixture, "https://www.drlogy.com/doctor/vivek-shah")
	require.NoError(t, err)

	require.Equal(t, "Dr. Vivek Shah", get(t, rec, "name"))
	require.Equal(t, "MBBS, MS", get(t, rec, "education"))
	require.Equal(t, "General Surgeon", get(t, rec, "speciality"))
	require.Equal(t, "G-44556 Gujarat Medical Council", get(t, rec, "mci"))
	require.Equal(t, "MBBS - BJ Medical College", get(t, rec, "full_education"))
	require.Equal(t, "Hindi, Gujarati", get(t, rec, "Languages spoken"))
	require.Equal(t, "Shah Surgical Clinic", get(t, rec, "clinic_name"))
}

func TestExtractLybrateHeadingLists(t *testing.T) {
	t.Parallel()

	const fixture = `<html><body>
<div class="doctorCard_doctorName__profile__WWGCS">Dr. Neha Kulkarni</div>
<div class="doctorCard_experience__AyNl1">9 Years Experience</div>
<h3>Education</h3><div><ul><li>MBBS - Grant Medical College</li><li>MD - KEM</li></ul></div>
<h3>Languages spoken</h3><div><ul><li>English</li><li>Marathi</li></ul></div>
<div class="clinicCard_cardContainer__2Sekg">
  <div class="clinicCard_heading__A8cCn clinicCard_heading__normal__11Zgs">Kulkarni Clinic</div>
  <div class="clinicCard_clinicAdd____rlg">FC Road, Pune</div>
  <div class="clinicCard_text__HS137">Rs 500</div>
  <div class="clinicCard_timeContainer__LECv8">10AM - 2PM</div>
</div>
</body></html>`

	rec, err := ExtractLybrate(fixture, "https://www.lybrate.com/pune/doctor/neha-kulkarni")
	require.NoError(t, err)

	require.Equal(t, "Dr. Neha Kulkarni", get(t, rec, "name"))
	require.Equal(t, "MBBS - Grant Medical College, MD - KEM", get(t, rec, "full_education"))
	require.Equal(t, "English, Marathi", get(t, rec, "Languages spoken"))
	require.Equal(t, harvester.NA, get(t, rec, "memberships"))
	require.Equal(t, "Kulkarni Clinic", get(t, rec, "clinic__name1"))
	require.Equal(t, "10AM - 2PM", get(t, rec, "timing"))
}

func TestExtractSehatPassingYears(t *testing.T) {
	t.Parallel()

	const fixture = `<html><body>
<div id="page-content-wrapper"><h1>Dr. Arjun Reddy</h1></div>
<div id="practiceinfo"><h2><a>Reddy Clinic, Hyderabad</a></h2><p><span>Banjara Hills</span></p></div>
<div id="overview"><ul><li><p>Gastroenterology</p></li>
MBBS, 1995
MD, 2001
</ul></div>
</body></html>`

	rec, err := ExtractSehat(fixture, "https://www.sehat.com/dr-arjun-reddy")
	require.NoError(t, err)

	require.Equal(t, "Dr. Arjun Reddy", get(t, rec, "name"))
	require.Equal(t, "Reddy Clinic", get(t, rec, "clinic_name"))
	require.Equal(t, "Banjara Hills", get(t, rec, "address"))
	require.Contains(t, get(t, rec, "passing_year"), "MBBS - 1995")
	require.Contains(t, get(t, rec, "passing_year"), "MD - 2001")
}

func TestExtractDocindiaClinicList(t *testing.T) {
	t.Parallel()

	const fixture = `<html><body>
<span id="docName">Dr. Meera Pillai</span>
<span id="docSpeciality">Hepatology</span>
<span id="docTitle">MBBS, DM</span>
<div class="location-list">
  <div class="clinic-name">Pillai Liver Centre</div>
  <div class="clinic-direction">Vyttila, Kochi</div>
</div>
<div class="location-list">
  <div class="clinic-name">General Hospital</div>
  <div class="clinic-direction">Ernakulam</div>
</div>
</body></html>`

	rec, err := ExtractDocindia(fixture, "https://www.docindia.org/doctor/meera-pillai")
	require.NoError(t, err)

	require.Equal(t, "Dr. Meera Pillai", get(t, rec, "name"))
	require.Equal(t, "Hepatology", get(t, rec, "speciality"))
	require.Equal(t, "Pillai Liver Centre", get(t, rec, "clinic__name1"))
	require.Equal(t, "General Hospital", get(t, rec, "clinic__name2"))
	require.Equal(t, "Ernakulam", get(t, rec, "address2"))
}

func TestTableRegistersCleanly(t *testing.T) {
	t.Parallel()

	reg, err := registry.New(Table()...)
	require.NoError(t, err)
	require.Equal(t, len(Table()), reg.Len())

	static, ok := reg.Lookup("quickerala.com")
	require.True(t, ok)
	require.Equal(t, registry.StrategyStatic, static.Strategy)

	browser, ok := reg.Lookup("practo.com")
	require.True(t, ok)
	require.Equal(t, registry.StrategyBrowser, browser.Strategy)
	require.NotNil(t, browser.Extract)

	interactive, ok := reg.Lookup("babymhospital.org")
	require.True(t, ok)
	require.Equal(t, registry.StrategyBrowser, interactive.Strategy)
	require.NotNil(t, interactive.Interact)

	_, ok = reg.Lookup("unknown.example")
	require.False(t, ok)
}
