package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuskangsoftware/bubbly/internal/domain"
)

func testPoints() []domain.PointFeature {
	// Три фонтана в центре Мельбурна (в пределах 50px друг от друга на
	// zoom 2) и один в Сиднее.
	return []domain.PointFeature{
		{ID: 1, Name: "Fountain A", Lng: 144.9631, Lat: -37.8136},
		{ID: 2, Name: "Fountain B", Lng: 144.9700, Lat: -37.8150},
		{ID: 3, Name: "Fountain C", Lng: 144.9580, Lat: -37.8100},
		{ID: 4, Name: "Sydney Park Tap", Lng: 151.2093, Lat: -33.8688},
	}
}

func TestIndex_ClustersAtLowZoom(t *testing.T) {
	idx := New(testPoints(), Options{})

	features := idx.GetClusters(-180, -85, 180, 85, 2)

	var cluster *domain.ClusterFeature
	points := 0
	for _, f := range features {
		if f.IsCluster() {
			require.Nil(t, cluster, "expected a single cluster at zoom 2")
			cluster = f.Cluster
		} else {
			points++
		}
	}

	require.NotNil(t, cluster)
	assert.Equal(t, 3, cluster.PointCount)
	assert.Equal(t, "3", cluster.Abbreviated)
	assert.Equal(t, 1, points, "Sydney point stays unclustered")

	// Центроид кластера лежит между его точками.
	assert.InDelta(t, 144.96, cluster.Lng, 0.1)
	assert.InDelta(t, -37.81, cluster.Lat, 0.1)
}

func TestIndex_ExpansionZoom(t *testing.T) {
	idx := New(testPoints(), Options{})

	features := idx.GetClusters(-180, -85, 180, 85, 2)
	var cluster *domain.ClusterFeature
	for _, f := range features {
		if f.IsCluster() {
			cluster = f.Cluster
		}
	}
	require.NotNil(t, cluster)

	zoom, err := idx.GetClusterExpansionZoom(cluster.ClusterID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, zoom, 2, "expansion zoom is not below the current zoom")
	assert.LessOrEqual(t, zoom, 15)

	// На expansion zoom кластер действительно распадается.
	split := idx.GetClusters(144, -39, 146, -36, zoom)
	assert.Greater(t, len(split), 1)
}

func TestIndex_UnknownCluster(t *testing.T) {
	idx := New(testPoints(), Options{})

	_, err := idx.GetClusterExpansionZoom(999999 << 5)
	assert.Error(t, err)

	_, err = idx.GetChildren((1 << 5) + 3)
	assert.Error(t, err)
}

func TestIndex_HighZoomReturnsLeaves(t *testing.T) {
	idx := New(testPoints(), Options{})

	features := idx.GetClusters(-180, -85, 180, 85, 15)
	require.Len(t, features, 4)
	for _, f := range features {
		assert.False(t, f.IsCluster())
		assert.NotEmpty(t, f.Point.Name)
	}
}

func TestIndex_Deterministic(t *testing.T) {
	a := New(testPoints(), Options{})
	b := New(testPoints(), Options{})

	fa := a.GetClusters(-180, -85, 180, 85, 2)
	fb := b.GetClusters(-180, -85, 180, 85, 2)

	require.Equal(t, len(fa), len(fb))
	for i := range fa {
		assert.Equal(t, fa[i], fb[i])
	}
}

func TestIndex_GetChildren(t *testing.T) {
	idx := New(testPoints(), Options{})

	features := idx.GetClusters(144, -39, 146, -36, 2)
	require.Len(t, features, 1)
	require.True(t, features[0].IsCluster())

	children, err := idx.GetChildren(features[0].Cluster.ClusterID)
	require.NoError(t, err)

	total := 0
	for _, ch := range children {
		if ch.IsCluster() {
			total += ch.Cluster.PointCount
		} else {
			total++
		}
	}
	assert.Equal(t, 3, total)
}

func TestIndex_EmptyInput(t *testing.T) {
	idx := New(nil, Options{})
	assert.Empty(t, idx.GetClusters(-180, -85, 180, 85, 2))
}

func TestIndex_BBoxFilter(t *testing.T) {
	idx := New(testPoints(), Options{})

	// bbox только вокруг Сиднея
	features := idx.GetClusters(150, -35, 152, -33, 2)
	require.Len(t, features, 1)
	require.False(t, features[0].IsCluster())
	assert.Equal(t, int64(4), features[0].Point.ID)
}
