package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cinebook/model"
)

// menuGenres is the fixed main-menu genre ordering. Menu numbers must not
// shift with the CSV file order or content, so the mapping is hardcoded
// and the CSV only contributes names for validation and extra genres.
var menuGenres = []model.Genre{
	{MenuNumber: 1, Name: "Action", Prefix: "AC"},
	{MenuNumber: 2, Name: "Thriller", Prefix: "TR"},
	{MenuNumber: 3, Name: "Horror", Prefix: "HR"},
	{MenuNumber: 4, Name: "Funny", Prefix: "FU"},
	{MenuNumber: 5, Name: "Romantic", Prefix: "RO"},
}

const (
	defaultTicketPrice = 45.0
	defaultShowtime    = "7:00 PM"
)

// Catalog is the in-memory movie catalog loaded from genres.csv and
// movies.csv. It is read once at startup and never written by the booking
// flow.
type Catalog struct {
	genres   map[string]model.Genre
	movies   map[string]model.Movie
	byGenre  map[string][]model.Movie
	byTitle  map[string]model.Movie
	warnings []string
}

// LoadCatalog reads both catalog files. Both are CSV with a header row:
// genres.csv carries prefix,name; movies.csv carries prefix,id,title with
// optional trailing price and showtime columns.
func LoadCatalog(genresPath, moviesPath string) (*Catalog, error) {
	c := &Catalog{
		genres:  make(map[string]model.Genre),
		movies:  make(map[string]model.Movie),
		byGenre: make(map[string][]model.Movie),
		byTitle: make(map[string]model.Movie),
	}
	for _, genre := range menuGenres {
		c.genres[genre.Prefix] = genre
	}
	if err := c.loadGenres(genresPath); err != nil {
		return nil, err
	}
	if err := c.loadMovies(moviesPath); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) loadGenres(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return fmt.Errorf("load genres: %w", err)
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		prefix := strings.ToUpper(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		if existing, ok := c.genres[prefix]; ok {
			if existing.Name != name {
				c.warnings = append(c.warnings, fmt.Sprintf("genre %s: name %q in csv, menu shows %q", prefix, name, existing.Name))
			}
			continue
		}
		// Genres outside the fixed menu are loaded but never listed.
		c.genres[prefix] = model.Genre{MenuNumber: -1, Name: name, Prefix: prefix}
		c.warnings = append(c.warnings, fmt.Sprintf("genre %s (%s) not in main menu", prefix, name))
	}
	return nil
}

func (c *Catalog) loadMovies(path string) error {
	rows, err := readCSV(path)
	if err != nil {
		return fmt.Errorf("load movies: %w", err)
	}
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		movie := model.Movie{
			GenrePrefix: strings.ToUpper(strings.TrimSpace(row[0])),
			Id:          strings.TrimSpace(row[1]),
			Title:       strings.TrimSpace(row[2]),
			Price:       defaultTicketPrice,
			Showtime:    defaultShowtime,
		}
		if len(row) >= 4 {
			if price, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64); err == nil && price > 0 {
				movie.Price = price
			}
		}
		if len(row) >= 5 {
			if showtime := strings.TrimSpace(row[4]); showtime != "" {
				movie.Showtime = showtime
			}
		}
		if len(row) >= 6 {
			movie.Description = strings.TrimSpace(row[5])
		}
		c.movies[movie.Id] = movie
		c.byGenre[movie.GenrePrefix] = append(c.byGenre[movie.GenrePrefix], movie)
		c.byTitle[strings.ToLower(movie.Title)] = movie
	}
	for prefix := range c.byGenre {
		movies := c.byGenre[prefix]
		sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })
	}
	return nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}
	return rows, nil
}

// MenuGenres returns the fixed main-menu genres in menu order.
func (c *Catalog) MenuGenres() []model.Genre {
	return menuGenres
}

// MoviesByGenre returns the catalog movies for a genre prefix, sorted by
// title.
func (c *Catalog) MoviesByGenre(prefix string) []model.Movie {
	return c.byGenre[strings.ToUpper(prefix)]
}

// MovieById looks a movie up by catalog id.
func (c *Catalog) MovieById(id string) (model.Movie, bool) {
	movie, ok := c.movies[id]
	return movie, ok
}

// MovieExists reports whether the catalog id is known.
func (c *Catalog) MovieExists(id string) bool {
	_, ok := c.movies[id]
	return ok
}

// ResolveByTitle looks a movie up by title, case-insensitively. Legacy
// ledger records carry only a title; this is how they get a catalog id and
// genre back.
func (c *Catalog) ResolveByTitle(title string) (model.Movie, bool) {
	movie, ok := c.byTitle[strings.ToLower(strings.TrimSpace(title))]
	return movie, ok
}

// GenreByPrefix returns the genre for a prefix, menu-visible or not.
func (c *Catalog) GenreByPrefix(prefix string) (model.Genre, bool) {
	genre, ok := c.genres[strings.ToUpper(prefix)]
	return genre, ok
}

// Warnings reports catalog rows that loaded in a degraded way.
func (c *Catalog) Warnings() []string {
	return c.warnings
}

// EnsureDefaultCatalog writes a starter catalog into dir when neither file
// exists yet, so a fresh install boots with something to book.
func EnsureDefaultCatalog(genresPath, moviesPath string) error {
	if _, err := os.Stat(genresPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(genresPath), 0o755); err != nil {
		return err
	}

	genres := "prefix,name\nAC,Action\nTR,Thriller\nHR,Horror\nFU,Funny\nRO,Romantic\n"
	if err := os.WriteFile(genresPath, []byte(genres), 0o644); err != nil {
		return err
	}

	movies := strings.Join([]string{
		"prefix,id,title,price,showtime",
		"TR,TR001,Inception,50.00,1:00 PM",
		"AC,AC001,The Dark Knight,45.00,4:00 PM",
		"TR,TR002,Interstellar,55.00,7:00 PM",
		"AC,AC002,Tenet,40.00,9:00 PM",
		"AC,AC003,Dunkirk,35.00,11:00 PM",
	}, "\n") + "\n"
	if _, err := os.Stat(moviesPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(moviesPath, []byte(movies), 0o644)
}
