package models

// PageResult is what a page parser reports for a single URL
type PageResult struct {
	URL        string         `json:"url"`
	WordCounts map[string]int `json:"word_counts"`
	Links      []string       `json:"links"`
}

// WordCount is one entry of a ranked word list
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}
