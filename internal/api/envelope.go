package api

// Pagination is the metadata block every collection endpoint returns
// alongside its data page.
type Pagination struct {
	TotalEntities int `json:"totalEntities"`
	TotalPages    int `json:"totalPages"`
	CurrentPage   int `json:"currentPage"`
	Limit         int `json:"limit"`
}

// ListEnvelope is the wire shape of a collection response.
type ListEnvelope[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Download is the result of a binary fetch: the raw bytes plus the
// metadata needed to save them under a sensible name.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}
