package model

// Genre is one entry of the fixed genre menu.
type Genre struct {
	MenuNumber int // -1 when the genre is loaded but not menu-visible
	Name       string
	Prefix     string
}

// Movie is one catalog entry from movies.csv.
type Movie struct {
	GenrePrefix string
	Id          string
	Title       string
	Price       float64
	Showtime    string
	Description string
}
