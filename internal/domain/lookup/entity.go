package lookup

// Work 外部目录中的一部作品
type Work struct {
	Key              string   `json:"key"` // 如 /works/OL166894W
	Title            string   `json:"title"`
	AuthorNames      []string `json:"author_names"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	EditionCount     int      `json:"edition_count"`
	ISBNs            []string `json:"isbns,omitempty"`
}

// Result 一次检索的结果
type Result struct {
	NumFound int    `json:"num_found"`
	Works    []Work `json:"works"`
}
