package models

// Page is the envelope returned by paginated listing operations.
type Page struct {
	// Items is the slice of documents for the requested page.
	Items []Document `json:"items"`

	// TotalCount is the number of documents matching the filter across
	// all pages.
	TotalCount int `json:"totalCount"`

	// PageCount is the total number of pages at the requested page size.
	PageCount int `json:"pageCount"`

	// PageNumber is the 1-based number of the returned page.
	PageNumber int `json:"pageNumber"`
}
