package handler

type ChatRequest struct {
	Message string   `json:"message"`
	Tickers []string `json:"tickers"`
	TopK    int      `json:"topK"`
	Detail  string   `json:"detail"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type RagResponse struct {
	Answer   string      `json:"answer"`
	Metadata RagMetadata `json:"metadata"`
}

type RagMetadata struct {
	Sources  []string `json:"sources"`
	Matches  int      `json:"matches"`
	TopScore float64  `json:"topScore"`
}

type SuggestRequest struct {
	Tickers []string `json:"tickers"`
}

type SuggestResponse struct {
	Suggestions []string        `json:"suggestions"`
	Metadata    SuggestMetadata `json:"metadata"`
}

type SuggestMetadata struct {
	CompaniesAnalyzed int      `json:"companies_analyzed"`
	CategoriesFound   []string `json:"categories_found"`
	ContextChunks     int      `json:"context_chunks"`
}

type CompanyResponse struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

type CompanyGroupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Companies []CompanyResponse `json:"companies"`
}
