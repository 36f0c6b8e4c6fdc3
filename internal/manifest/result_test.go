package manifest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKeyOrder(t *testing.T) {
	size := int64(42)
	res := Result{
		Outcome: OK,
		BaseURL: "https://example.com/",
		Presence: Presence{
			{Name: "thumbnail", Exists: true},
			{Name: "original", Exists: false},
		},
		Photos: []ImageRecord{{
			Filename: "a&b.jpg",
			Variants: []Variant{
				{Folder: "thumbnail", Path: "thumbnail/a&b.jpg", URL: "https://example.com/thumbnail/a&b.jpg", Present: true},
				{Folder: "original"},
			},
			Size: &size,
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res))

	want := `{
    "success": true,
    "message": "found 1 images",
    "count": 1,
    "base_url": "https://example.com/",
    "photos": [
        {
            "thumbnail": "thumbnail/a&b.jpg",
            "thumbnail_url": "https://example.com/thumbnail/a&b.jpg",
            "original": null,
            "original_url": null,
            "filename": "a&b.jpg",
            "size": 42
        }
    ],
    "folders": {
        "thumbnail": true,
        "original": false
    }
}
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeFailureShape(t *testing.T) {
	res := Result{
		Outcome:  NoImages,
		BaseURL:  "http://localhost/",
		Presence: Presence{{Name: "thumbnail", Exists: true}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res))

	want := `{
    "success": false,
    "message": "no images were found in the folders",
    "photos": [],
    "base_url": "http://localhost/"
}
`
	assert.Equal(t, want, buf.String())
}

func TestRecordWithoutSize(t *testing.T) {
	b, err := ImageRecord{Filename: "x.png", Variants: []Variant{{Folder: "compress"}}}.MarshalJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "size")
	assert.Equal(t, `{"compress":null,"compress_url":null,"filename":"x.png"}`, string(b))
}

func TestMessages(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Result{Outcome: NoFolders, Presence: Presence{{Name: "a"}}}, "folders a were not found"},
		{Result{Outcome: NoFolders, Presence: Presence{{Name: "a"}, {Name: "b"}}}, "folders a or b were not found"},
		{Result{Outcome: OK}, "found 0 images"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.res.Message())
	}
}

func TestPresenceHelpers(t *testing.T) {
	p := Presence{{Name: "thumbnail"}, {Name: "original", Exists: true}, {Name: "compress", Exists: true}}
	assert.True(t, p.Any())
	assert.False(t, p.All())
	assert.True(t, p.Exists("compress"))
	assert.False(t, p.Exists("thumbnail"))

	ref, ok := ReferenceFolder(p)
	require.True(t, ok)
	assert.Equal(t, "original", ref)
	assert.Equal(t, []string{"original", "compress"}, p.Found())

	_, ok = ReferenceFolder(Presence{{Name: "thumbnail"}})
	assert.False(t, ok)
	assert.False(t, Presence{}.All())
}
