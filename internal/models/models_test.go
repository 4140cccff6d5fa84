package models

import (
	"errors"
	"testing"
)

func TestIsYouTubeLink(t *testing.T) {
	tc := []struct {
		link string
		want bool
	}{
		{link: "https://www.youtube.com/watch?v=chwyjJbcs1Y", want: true},
		{link: "http://www.youtube.com/watch?v=chwyjJbcs1Y", want: true},
		{link: "www.youtube.com/watch?v=chwyjJbcs1Y", want: true},
		{link: "https://youtu.be/chwyjJbcs1Y", want: true},
		{link: "youtube/watch?v=abc", want: true},
		{link: "youtube.com/watch?v=abc", want: false},
		{link: "https://www.youtube.com/", want: false},
		{link: "https://vimeo.com/12345", want: false},
		{link: "", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.link, func(t *testing.T) {
			if got := IsYouTubeLink(tt.link); got != tt.want {
				t.Errorf("IsYouTubeLink(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestRecommendationValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		rec := NewRecommendation("Falamansa - Xote dos Milagres", "https://www.youtube.com/watch?v=chwyjJbcs1Y")
		if err := rec.Validate(); err != nil {
			t.Errorf("expected valid recommendation, got %v", err)
		}
		if rec.Score != 0 {
			t.Errorf("new recommendation should start at score 0, got %d", rec.Score)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		rec := NewRecommendation("   ", "https://youtu.be/chwyjJbcs1Y")
		if err := rec.Validate(); !errors.Is(err, ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
	})

	t.Run("invalid link", func(t *testing.T) {
		rec := NewRecommendation("name", "https://example.com/video")
		if err := rec.Validate(); !errors.Is(err, ErrInvalidLink) {
			t.Errorf("expected ErrInvalidLink, got %v", err)
		}
	})
}
