package home_test

import (
	"strings"
	"testing"

	"github.com/adampresley/yearinreview/cmd/website/internal/home"
	"github.com/adampresley/yearinreview/pkg/cdn"
	"github.com/adampresley/yearinreview/pkg/models"
	"github.com/stretchr/testify/require"
)

func albums() []models.ResolvedAlbum {
	result := []models.ResolvedAlbum{}

	for _, id := range []string{"italy", "oregon", "newyork", "kylebday", "reunion"} {
		result = append(result, models.ResolvedAlbum{
			AlbumDefinition: models.AlbumDefinition{ID: id, Title: id, Tag: id, FeatureImage: "IMG_" + id},
			Images:          []string{"IMG_" + id},
		})
	}

	result[0].Layout = "md:col-span-2 md:row-span-2"
	result[4].Images = []string{}
	result[4].FeatureImage = ""
	return result
}

func TestBuildTiles(t *testing.T) {
	builder := cdn.NewBuilder(cdn.BuilderConfig{CloudName: "demo"})
	tiles := home.BuildTiles(builder, albums())

	require.Len(t, tiles, 5)

	require.True(t, tiles[0].IsLarge)
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_800,c_fill,g_auto,q_auto,f_auto/IMG_italy", tiles[0].ImageURL)
	require.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_20,c_fill,g_auto,q_auto:low,f_auto/IMG_italy", tiles[0].PlaceholderURL)
	require.True(t, strings.HasSuffix(tiles[0].SrcSet, "/IMG_italy 1600w"))
	require.Equal(t, "/originals/italy/IMG_italy", tiles[0].OriginalURL)

	require.False(t, tiles[1].IsLarge)
	require.Contains(t, tiles[1].ImageURL, "/w_500,")
	require.True(t, strings.HasPrefix(tiles[1].SrcSet, "https://res.cloudinary.com/demo/image/upload/w_250,"))

	require.True(t, tiles[0].HighPriority)
	require.True(t, tiles[1].HighPriority)
	require.False(t, tiles[2].HighPriority)

	require.Equal(t, "eager", tiles[3].Loading)
	require.Equal(t, "lazy", tiles[4].Loading)

	require.True(t, tiles[3].Selectable)
	require.False(t, tiles[4].Selectable)
	require.Empty(t, tiles[4].ImageURL)
}

func TestBuildTilesWithoutCdn(t *testing.T) {
	tiles := home.BuildTiles(cdn.NewBuilder(cdn.BuilderConfig{}), albums())

	require.Equal(t, "/originals/italy/IMG_italy", tiles[0].ImageURL)
	require.Empty(t, tiles[0].SrcSet)
	require.Empty(t, tiles[0].PlaceholderURL)
}
