package models

// DocumentationItem is one entry of the "Behind The Scenes" gallery.
type DocumentationItem struct {
	Title       string
	Description string
	Category    string
	Image       string
}

// ProcessPhase is one step of the creative process timeline.
type ProcessPhase struct {
	Step        int
	Name        string
	Description string
}
