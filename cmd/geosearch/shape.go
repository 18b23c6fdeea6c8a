package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/geosearch/geometry"
)

// Sphere tessellation used by parsed "sphere:" shapes.
const (
	sphereRings    = 16
	sphereSegments = 32
)

var errInvalidShape = errors.New("invalid shape")

// parseShape builds a primitive from a string of the form
//
//	cube:<side>
//	box:<x>x<y>x<z>
//	sphere:<radius>
func parseShape(id, spec string) (*geometry.Model, error) {
	kind, args, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok {
		return nil, fmt.Errorf("%w %q: expected <kind>:<size>", errInvalidShape, spec)
	}

	dims, err := parseDims(args)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errInvalidShape, spec, err)
	}

	switch strings.ToLower(kind) {
	case "cube":
		if len(dims) != 1 {
			return nil, fmt.Errorf("%w %q: cube takes one size", errInvalidShape, spec)
		}
		return geometry.Cube(id, dims[0]), nil
	case "box":
		if len(dims) != 3 {
			return nil, fmt.Errorf("%w %q: box takes <x>x<y>x<z>", errInvalidShape, spec)
		}
		return geometry.Box(id, dims[0], dims[1], dims[2]), nil
	case "sphere":
		if len(dims) != 1 {
			return nil, fmt.Errorf("%w %q: sphere takes one radius", errInvalidShape, spec)
		}
		return geometry.UVSphere(id, dims[0], sphereRings, sphereSegments), nil
	default:
		return nil, fmt.Errorf("%w %q: unknown kind %q", errInvalidShape, spec, kind)
	}
}

func parseDims(s string) ([]float64, error) {
	parts := strings.Split(s, "x")
	dims := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		if v <= 0 {
			return nil, fmt.Errorf("size %v must be positive", v)
		}
		dims[i] = v
	}
	return dims, nil
}
