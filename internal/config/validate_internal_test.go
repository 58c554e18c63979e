package config

import "testing"

func TestMovieYearWindowFollowsCurrentYear(t *testing.T) {
	original := currentYear
	currentYear = func() int { return 2024 }
	t.Cleanup(func() { currentYear = original })

	cfg := Default()
	cfg.Movies = []Movie{{Title: "Upcoming", Year: 2025, InputFile: "/m.mkv"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("next year should be accepted: %v", err)
	}

	cfg.Movies[0].Year = 2026
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for year two ahead")
	}

	cfg.Movies[0].Year = minMovieYear
	if err := cfg.Validate(); err != nil {
		t.Fatalf("earliest year should be accepted: %v", err)
	}
}
