package adapters

import "github.com/adpillai/hcp-harvester/internal/harvester"

// ExtractPatakare reads a patakare.com doctor page.
func ExtractPatakare(html, url string) (*harvester.Record, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	root := doc.Selection

	rec := harvester.NewRecord(url)
	rec.Set("name", text(root, "div.container > div.row > div > div h1"))
	rec.Set("phone", text(root, "div.row > div > div > div > div > p:nth-of-type(2)"))
	rec.Set("speciality", text(root, "div.container > div.row > div > div p:nth-of-type(2)"))
	rec.Set("email", text(root, "div.row > div > div > div > div > p:nth-of-type(2) a"))
	rec.Set("address", text(root, "div.container > div.row > div > div p:nth-of-type(5)"))
	return rec, nil
}
