package cdn_test

import (
	"testing"

	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/stretchr/testify/require"
)

func newBuilder() cdn.Builder {
	return cdn.NewBuilder(cdn.BuilderConfig{CloudName: "demo"})
}

func TestBuildURLUnconfiguredReturnsReference(t *testing.T) {
	b := cdn.NewBuilder(cdn.BuilderConfig{})

	refs := []string{"IMG_8904", "/pics/Italy/IMG_8904.JPG", "trips/italy/IMG_1", ""}

	for _, ref := range refs {
		got := b.BuildURL(ref, cdn.Options{Width: 800, Crop: cdn.CropFill, Gravity: cdn.GravityAuto})
		require.Equal(t, ref, got)
	}

	require.False(t, b.Configured())
	require.Empty(t, b.SrcSet("IMG_1", nil, cdn.Options{}))
}

func TestBuildURL(t *testing.T) {
	b := newBuilder()

	tests := []struct {
		name    string
		ref     string
		options cdn.Options
		want    string
	}{
		{
			name: "defaults only",
			ref:  "IMG_1",
			want: "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto/IMG_1",
		},
		{
			name:    "all directives in order",
			ref:     "IMG_1",
			options: cdn.Options{Width: 800, Height: 600, Crop: cdn.CropFill, Gravity: cdn.GravityFace, Quality: "80", Format: "webp"},
			want:    "https://res.cloudinary.com/demo/image/upload/w_800,h_600,c_fill,g_face,q_80,f_webp/IMG_1",
		},
		{
			name:    "gravity dropped for fit",
			ref:     "IMG_1",
			options: cdn.Options{Width: 400, Crop: cdn.CropFit, Gravity: cdn.GravityAuto},
			want:    "https://res.cloudinary.com/demo/image/upload/w_400,c_fit,q_auto,f_auto/IMG_1",
		},
		{
			name:    "gravity dropped without crop",
			ref:     "IMG_1",
			options: cdn.Options{Width: 400, Gravity: cdn.GravityAuto},
			want:    "https://res.cloudinary.com/demo/image/upload/w_400,q_auto,f_auto/IMG_1",
		},
		{
			name:    "gravity kept for thumb",
			ref:     "IMG_1",
			options: cdn.Options{Width: 100, Crop: cdn.CropThumb, Gravity: cdn.GravityCenter},
			want:    "https://res.cloudinary.com/demo/image/upload/w_100,c_thumb,g_center,q_auto,f_auto/IMG_1",
		},
		{
			name: "legacy path",
			ref:  "/pics/Italy/IMG_8904.JPG",
			want: "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto/IMG_8904",
		},
		{
			name: "nested identifier",
			ref:  "trips/italy/IMG_8904",
			want: "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto/trips/italy/IMG_8904",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, b.BuildURL(tt.ref, tt.options))
		})
	}
}

func TestIdentifier(t *testing.T) {
	require.Equal(t, "IMG_0462", cdn.Identifier("/pics/NewYork/IMG_0462.jpeg"))
	require.Equal(t, "FullSizeRender", cdn.Identifier("FullSizeRender.webp"))
	require.Equal(t, "IMG_8226 2", cdn.Identifier("/pics/KyleBday/IMG_8226 2.JPG"))
	require.Equal(t, "notes.txt", cdn.Identifier("notes.txt"))
	require.Equal(t, "folder/name", cdn.Identifier("folder/name"))
}

func TestSrcSet(t *testing.T) {
	b := newBuilder()

	got := b.SrcSet("IMG_1", []int{250, 500}, cdn.Options{Crop: cdn.CropFill, Gravity: cdn.GravityAuto})
	want := "https://res.cloudinary.com/demo/image/upload/w_250,c_fill,g_auto,q_auto,f_auto/IMG_1 250w, " +
		"https://res.cloudinary.com/demo/image/upload/w_500,c_fill,g_auto,q_auto,f_auto/IMG_1 500w"

	require.Equal(t, want, got)

	defaults := b.SrcSet("IMG_1", nil, cdn.Options{})
	require.Contains(t, defaults, "w_400,q_auto,f_auto/IMG_1 400w")
	require.Contains(t, defaults, "w_1600,q_auto,f_auto/IMG_1 1600w")
}

func TestResponsiveWidths(t *testing.T) {
	require.Equal(t, []int{400, 800, 1200, 1600}, cdn.ResponsiveWidths(0))
	require.Equal(t, []int{250, 500, 750, 1000}, cdn.ResponsiveWidths(500))
	require.Equal(t, []int{2, 3, 5, 6}, cdn.ResponsiveWidths(3))
}

func TestHelperURLs(t *testing.T) {
	b := newBuilder()

	require.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_1200,q_auto,f_auto/IMG_1",
		b.PreloadURL("IMG_1", 0),
	)

	require.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_800,c_fill,g_auto,q_auto,f_auto/IMG_1",
		b.OptimizedURL("IMG_1", cdn.Options{}),
	)

	require.Equal(t,
		"https://res.cloudinary.com/demo/image/upload/w_20,c_fill,g_auto,q_auto:low,f_auto/IMG_1",
		b.PlaceholderURL("IMG_1", cdn.Options{Width: 800, Crop: cdn.CropFill, Gravity: cdn.GravityAuto}),
	)

	require.Equal(t, "https://res.cloudinary.com/demo/image/list/italy.json", b.ListURL("italy"))
}
