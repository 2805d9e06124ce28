package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.bistro.test/menu/naan.png", want: "menu/naan.png"},
		{name: "api endpoint", url: "https://s3.bistro.test/media/videos/tandoor.mp4", want: "videos/tandoor.mp4"},
		{name: "foreign url", url: "https://elsewhere.test/menu/naan.png", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := objectKeyFromURL("https://cdn.bistro.test/", "https://s3.bistro.test", "media", tt.url)

			assert.Equal(t, tt.want, got)
		})
	}
}
