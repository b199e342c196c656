// Package gallery holds the static "Behind The Scenes" content of the
// About page. Nothing here depends on the network.
package gallery

import "shortmovie-about/internal/domain/models"

const imageDir = "/assets/documentation/"

var documentation = [...]models.DocumentationItem{
	{
		Title:       "Pre-Production Planning",
		Description: "Storyboarding sessions and script development meetings",
		Category:    "Planning",
		Image:       imageDir + "planning.png",
	},
	{
		Title:       "Location Scouting",
		Description: "Finding the perfect locations that match our vision",
		Category:    "Preparation",
		Image:       imageDir + "loc_scouting.jpg",
	},
	{
		Title:       "Behind the Scenes",
		Description: "Capturing the magic as it happens during filming",
		Category:    "Production",
		Image:       imageDir + "behind_the_scene.png",
	},
	{
		Title:       "Post-Production",
		Description: "Editing, color grading, and sound design sessions",
		Category:    "Editing",
		Image:       imageDir + "post-production.png",
	},
	{
		Title:       "Release",
		Description: "Final touches and preparing for the premiere",
		Category:    "Distribution",
		Image:       imageDir + "release.png",
	},
}

var timeline = [...]models.ProcessPhase{
	{Step: 1, Name: "Concept", Description: "Ideation and script development"},
	{Step: 2, Name: "Production", Description: "Filming and directing"},
	{Step: 3, Name: "Post-Production", Description: "Editing and sound design"},
	{Step: 4, Name: "Release", Description: "Final delivery and distribution"},
}

// Documentation returns a fresh copy of the five gallery entries.
func Documentation() []models.DocumentationItem {
	out := make([]models.DocumentationItem, len(documentation))
	copy(out, documentation[:])
	return out
}

func Timeline() []models.ProcessPhase {
	out := make([]models.ProcessPhase, len(timeline))
	copy(out, timeline[:])
	return out
}
