package adapters

import "github.com/adpillai/hcp-harvester/internal/registry"

// Table returns the production dispatch table. Domains rendered client side
// carry the browser strategy; the rest are fetched as plain HTML.
func Table() []registry.Adapter {
	return []registry.Adapter{
		{Domain: "practo.com", Strategy: registry.StrategyBrowser, Extract: ExtractPracto, Scroll: true},
		{Domain: "quickerala.com", Strategy: registry.StrategyStatic, Extract: ExtractQuickerala},
		{Domain: "patakare.com", Strategy: registry.StrategyStatic, Extract: ExtractPatakare},
		{Domain: "drlogy.com", Strategy: registry.StrategyStatic, Extract: ExtractDrlogy},
		{Domain: "apollo247.com", Strategy: registry.StrategyStatic, Extract: ExtractApollo247},
		{Domain: "lybrate.com", Strategy: registry.StrategyStatic, Extract: ExtractLybrate},
		{Domain: "sehat.com", Strategy: registry.StrategyStatic, Extract: ExtractSehat},
		{Domain: "docindia.org", Strategy: registry.StrategyBrowser, Extract: ExtractDocindia},
		{Domain: "arogyamitra.com", Strategy: registry.StrategyBrowser, Extract: ExtractArogyamitra},
		{Domain: "maxhealthcare.in", Strategy: registry.StrategyBrowser, Extract: ExtractMaxhealthcare},
		{Domain: "mappls.com", Strategy: registry.StrategyBrowser, Extract: ExtractMappls},
		{Domain: "babymhospital.org", Strategy: registry.StrategyBrowser, Interact: ExtractBabymhospital},
	}
}
