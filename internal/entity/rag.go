package entity

// RetrievalContext is the grounding text sent along with every retrieval query.
type RetrievalContext struct {
	JobDescription string
	ResumeText     string
}

// RetrievedPassage is one ranked hit returned by the retrieval provider.
type RetrievedPassage struct {
	Text  string
	Score float64
}

type CorpusKey struct {
	CustomerID string `json:"customer_id"`
	CorpusID   string `json:"corpus_id"`
}

type RAGQuery struct {
	Query            string      `json:"query"`
	NumResults       int         `json:"num_results"`
	CorpusKey        []CorpusKey `json:"corpus_key"`
	Context          string      `json:"context,omitempty"`
	ReRank           string      `json:"re_rank,omitempty"`
	MMRDiversityBias *float64    `json:"mmr_diversity_bias,omitempty"`
}

type RAGQueryRequest struct {
	Query []RAGQuery `json:"query"`
}

type RAGResponseItem struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type RAGResponseSet struct {
	Response []RAGResponseItem `json:"response"`
}

type RAGQueryResponse struct {
	ResponseSet []RAGResponseSet `json:"responseSet"`
}

type RAGSection struct {
	Text string `json:"text"`
}

type RAGDocument struct {
	DocumentID   string       `json:"document_id"`
	Title        string       `json:"title"`
	MetadataJSON string       `json:"metadata_json"`
	Section      []RAGSection `json:"section"`
}

type RAGIndexRequest struct {
	CustomerID string      `json:"customer_id"`
	CorpusID   string      `json:"corpus_id"`
	Document   RAGDocument `json:"document"`
}

type RAGIndexStatus struct {
	Code   string `json:"code"`
	Status string `json:"statusDetail"`
}

type RAGIndexResponse struct {
	Status RAGIndexStatus `json:"status"`
}
