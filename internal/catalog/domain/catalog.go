package domain

// Musician is a catalogued composer or performer.
type Musician struct {
	ID       string
	FullName string
}

// Genre is a musical genre a score can belong to.
type Genre struct {
	ID   string
	Name string
}

// Score is a catalogued partition linking a title to a musician and a genre.
type Score struct {
	ID         string
	Title      string
	MusicianID string
	GenreID    string
}

// ScoreListing is the joined, display-ready view of a Score used by the
// management and print pages.
type ScoreListing struct {
	ID           string
	Title        string
	MusicianName string
	GenreName    string
}
