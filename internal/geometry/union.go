package geometry

import (
	"errors"
	"fmt"

	"github.com/engelsjk/polygol"
	"github.com/paulmach/orb"
)

// Union dissolves county geometries into a single district geometry.
// Overlapping or edge-adjacent polygons merge; disjoint ones stay as parts of
// one multipolygon. Non-polygonal inputs are rejected.
func Union(geoms []orb.Geometry) (orb.Geometry, error) {
	if len(geoms) == 0 {
		return nil, errors.New("nothing to union")
	}

	subject, err := toPolygol(geoms[0])
	if err != nil {
		return nil, err
	}

	rest := make([]polygol.Geom, 0, len(geoms)-1)
	for _, g := range geoms[1:] {
		pg, err := toPolygol(g)
		if err != nil {
			return nil, err
		}
		rest = append(rest, pg)
	}

	merged, err := polygol.Union(subject, rest...)
	if err != nil {
		return nil, fmt.Errorf("polygon union: %w", err)
	}
	return fromPolygol(merged), nil
}

func toPolygol(g orb.Geometry) (polygol.Geom, error) {
	switch geom := g.(type) {
	case orb.Polygon:
		return polygol.Geom{polyCoords(geom)}, nil
	case orb.MultiPolygon:
		out := make(polygol.Geom, 0, len(geom))
		for _, p := range geom {
			out = append(out, polyCoords(p))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot union %T", g)
	}
}

func polyCoords(p orb.Polygon) [][][]float64 {
	rings := make([][][]float64, 0, len(p))
	for _, ring := range p {
		coords := make([][]float64, 0, len(ring))
		for _, pt := range ring {
			coords = append(coords, []float64{pt.X(), pt.Y()})
		}
		rings = append(rings, coords)
	}
	return rings
}

func fromPolygol(g polygol.Geom) orb.Geometry {
	multi := make(orb.MultiPolygon, 0, len(g))
	for _, poly := range g {
		rings := make(orb.Polygon, 0, len(poly))
		for _, ring := range poly {
			r := make(orb.Ring, 0, len(ring))
			for _, pt := range ring {
				if len(pt) < 2 {
					continue
				}
				r = append(r, orb.Point{pt[0], pt[1]})
			}
			rings = append(rings, r)
		}
		multi = append(multi, rings)
	}
	if len(multi) == 1 {
		return multi[0]
	}
	return multi
}
