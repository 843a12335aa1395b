// Package models defines the data structures shared across markwatch
package models

import (
	"time"
)

// TocEntry is a single table-of-contents item extracted from a rendered document
type TocEntry struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// RenderedMarkdown is the output of the markdown renderer
type RenderedMarkdown struct {
	HTML               string     `json:"html"`
	Toc                []TocEntry `json:"toc"`
	WordCount          int        `json:"word_count"`
	ReadingTimeMinutes int        `json:"reading_time_minutes"`
}

// WordCountRules controls which document regions count toward the word count
type WordCountRules struct {
	IncludeLinks       bool `json:"include_links"`
	IncludeCode        bool `json:"include_code"`
	IncludeFrontMatter bool `json:"include_front_matter"`
}

// DefaultWordCountRules returns the standard counting rules: links count,
// code and front matter do not
func DefaultWordCountRules() WordCountRules {
	return WordCountRules{
		IncludeLinks:       true,
		IncludeCode:        false,
		IncludeFrontMatter: false,
	}
}

// RenderPreferences carries caller preferences into the renderer
type RenderPreferences struct {
	PerformanceMode bool           `json:"performance_mode"`
	WordCountRules  WordCountRules `json:"word_count_rules"`
}

// DefaultRenderPreferences returns the default render preferences
func DefaultRenderPreferences() RenderPreferences {
	return RenderPreferences{WordCountRules: DefaultWordCountRules()}
}

// Document is a fully loaded and rendered markdown document
type Document struct {
	Path               string     `json:"path"`
	Title              string     `json:"title"`
	Source             string     `json:"source"`
	HTML               string     `json:"html"`
	Toc                []TocEntry `json:"toc"`
	WordCount          int        `json:"word_count"`
	ReadingTimeMinutes int        `json:"reading_time_minutes"`
}

// RecentDocument is a history entry for a previously viewed document
type RecentDocument struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	WordCount int       `json:"word_count"`
	OpenedAt  time.Time `json:"opened_at"`
}
