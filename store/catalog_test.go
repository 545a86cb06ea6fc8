package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFiles(t *testing.T, genres, movies string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	genresPath := filepath.Join(dir, "genres.csv")
	moviesPath := filepath.Join(dir, "movies.csv")
	if err := os.WriteFile(genresPath, []byte(genres), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(moviesPath, []byte(movies), 0o644); err != nil {
		t.Fatal(err)
	}
	return genresPath, moviesPath
}

func TestLoadCatalog(t *testing.T) {
	genresPath, moviesPath := writeCatalogFiles(t,
		"prefix,name\nAC,Action\nTR,Thriller\nSF,SciFi\n",
		"prefix,id,title,price,showtime\nAC,AC001,The Dark Knight,45.00,4:00 PM\nTR,TR001,Inception,50.00,1:00 PM\nSF,SF001,Arrival\n",
	)

	catalog, err := LoadCatalog(genresPath, moviesPath)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if got := catalog.MenuGenres(); len(got) != 5 || got[0].Prefix != "AC" || got[0].MenuNumber != 1 {
		t.Fatalf("expected fixed five-genre menu, got %+v", got)
	}

	movie, ok := catalog.MovieById("AC001")
	if !ok || movie.Price != 45.00 || movie.Showtime != "4:00 PM" {
		t.Fatalf("unexpected movie: ok=%v %+v", ok, movie)
	}

	// Rows without price/showtime columns take defaults.
	movie, ok = catalog.MovieById("SF001")
	if !ok || movie.Price != defaultTicketPrice || movie.Showtime != defaultShowtime {
		t.Fatalf("expected defaults for short row, got %+v", movie)
	}

	// SF is loaded but hidden from the menu.
	genre, ok := catalog.GenreByPrefix("SF")
	if !ok || genre.MenuNumber != -1 {
		t.Fatalf("expected hidden genre, got ok=%v %+v", ok, genre)
	}
	if len(catalog.Warnings()) == 0 {
		t.Fatal("expected a warning for the off-menu genre")
	}

	if got := catalog.MoviesByGenre("ac"); len(got) != 1 || got[0].Id != "AC001" {
		t.Fatalf("unexpected genre movies: %+v", got)
	}
}

func TestResolveByTitle_CaseInsensitive(t *testing.T) {
	genresPath, moviesPath := writeCatalogFiles(t,
		"prefix,name\nAC,Action\n",
		"prefix,id,title\nAC,AC003,Dunkirk\n",
	)
	catalog, err := LoadCatalog(genresPath, moviesPath)
	if err != nil {
		t.Fatal(err)
	}

	movie, ok := catalog.ResolveByTitle("  dunkirk ")
	if !ok || movie.Id != "AC003" {
		t.Fatalf("expected resolution, got ok=%v %+v", ok, movie)
	}
	if _, ok := catalog.ResolveByTitle("Oppenheimer"); ok {
		t.Fatal("expected no match for unknown title")
	}
	if !catalog.MovieExists("AC003") || catalog.MovieExists("XX000") {
		t.Fatal("MovieExists mismatch")
	}
}

func TestEnsureDefaultCatalog(t *testing.T) {
	dir := t.TempDir()
	genresPath := filepath.Join(dir, "genres.csv")
	moviesPath := filepath.Join(dir, "movies.csv")

	if err := EnsureDefaultCatalog(genresPath, moviesPath); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	catalog, err := LoadCatalog(genresPath, moviesPath)
	if err != nil {
		t.Fatalf("expected seeded catalog to load, got %v", err)
	}
	movie, ok := catalog.ResolveByTitle("Dunkirk")
	if !ok || movie.Price != 35.00 {
		t.Fatalf("expected seeded Dunkirk at 35.00, got ok=%v %+v", ok, movie)
	}

	// Re-running must not clobber existing files.
	if err := os.WriteFile(moviesPath, []byte("prefix,id,title\nAC,AC009,Custom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDefaultCatalog(genresPath, moviesPath); err != nil {
		t.Fatal(err)
	}
	catalog, err = LoadCatalog(genresPath, moviesPath)
	if err != nil {
		t.Fatal(err)
	}
	if !catalog.MovieExists("AC009") {
		t.Fatal("expected custom movies.csv to survive")
	}
}
