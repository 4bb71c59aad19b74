package wikidata

// SampleCandidates returns built-in artworks used when the SPARQL endpoint
// is unreachable or offline operation is requested. Subjects are tagged so
// the scorer can still rank them.
func SampleCandidates(count int) []Candidate {
	samples := []Candidate{
		{
			ID:        "Q455354",
			Title:     "The Great Wave off Kanagawa",
			Artist:    "Katsushika Hokusai",
			Year:      1831,
			Subjects:  []string{"Q9430", "Q283", "Q8502", "Q11446"}, // ocean, water, mountain, ship
			Sitelinks: 15,
			ImageURL:  "https://upload.wikimedia.org/wikipedia/commons/0/0a/The_Great_Wave_off_Kanagawa.jpg",
			Medium:    "Polychrome woodblock print",
			Museum:    "Metropolitan Museum of Art, New York",
			Source:    "sample",
		},
		{
			ID:        "Q203880",
			Title:     "The Kiss",
			Artist:    "Gustav Klimt",
			Year:      1908,
			Subjects:  []string{"Q316", "Q736922"}, // love, kiss
			Genre:     "Q40446",
			Sitelinks: 18,
			ImageURL:  "https://upload.wikimedia.org/wikipedia/commons/4/40/The_Kiss_-_Gustav_Klimt_-_Google_Art_Project.jpg",
			Medium:    "Oil and gold leaf on canvas",
			Museum:    "Belvedere Palace, Vienna",
			Source:    "sample",
		},
		{
			ID:        "Q45585",
			Title:     "The Starry Night",
			Artist:    "Vincent van Gogh",
			Year:      1889,
			Subjects:  []string{"Q183", "Q523", "Q405", "Q3947"}, // night, star, moon, house
			Sitelinks: 19,
			ImageURL:  "https://upload.wikimedia.org/wikipedia/commons/e/ea/Van_Gogh_-_Starry_Night_-_Google_Art_Project.jpg",
			Medium:    "Oil on canvas",
			Museum:    "Museum of Modern Art, New York",
			Source:    "sample",
		},
		{
			ID:        "Q185372",
			Title:     "Girl with a Pearl Earring",
			Artist:    "Johannes Vermeer",
			Year:      1665,
			Subjects:  []string{"Q467"}, // woman
			Genre:     "Q134307",
			Sitelinks: 17,
			ImageURL:  "https://upload.wikimedia.org/wikipedia/commons/0/0f/1665_Girl_with_a_Pearl_Earring.jpg",
			Medium:    "Oil on canvas",
			Museum:    "Mauritshuis, The Hague",
			Source:    "sample",
		},
		{
			ID:        "Q26006",
			Title:     "Wanderer above the Sea of Fog",
			Artist:    "Caspar David Friedrich",
			Year:      1818,
			Subjects:  []string{"Q8502", "Q8074", "Q7860"}, // mountain, fog, nature
			Genre:     "Q191163",
			Sitelinks: 16,
			ImageURL:  "https://upload.wikimedia.org/wikipedia/commons/b/b9/Caspar_David_Friedrich_-_Wanderer_above_the_sea_of_fog.jpg",
			Medium:    "Oil on canvas",
			Museum:    "Kunsthalle Hamburg",
			Source:    "sample",
		},
	}

	if count <= 0 || count > len(samples) {
		count = len(samples)
	}
	return samples[:count]
}
