package docstore

import "strings"

// MaxTickersPerQuery bounds how much work a single request can fan out to.
const MaxTickersPerQuery = 40

// DefaultAliases maps known ticker typos to their canonical symbol.
var DefaultAliases = map[string]string{
	"bze": "brze",
}

// Normalizer resolves raw ticker input to canonical upper-case symbols.
// Normalization runs before any filename matching.
type Normalizer struct {
	aliases map[string]string
}

func NewNormalizer(aliases map[string]string) *Normalizer {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Normalizer{aliases: aliases}
}

// Normalize lower-cases the ticker, applies the alias table, and upper-cases
// the result.
func (n *Normalizer) Normalize(ticker string) string {
	k := strings.ToLower(strings.TrimSpace(ticker))
	if canonical, ok := n.aliases[k]; ok {
		k = canonical
	}
	return strings.ToUpper(k)
}

// NormalizeAll normalizes every ticker, capped at MaxTickersPerQuery.
func (n *Normalizer) NormalizeAll(tickers []string) []string {
	if len(tickers) > MaxTickersPerQuery {
		tickers = tickers[:MaxTickersPerQuery]
	}
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, n.Normalize(t))
	}
	return out
}
