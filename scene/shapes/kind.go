// Package shapes generates the unit meshes the desk scene is built from.
// Every generator returns CPU-side data; GPU upload is left to the backend.
package shapes

import (
	"fmt"

	"desk-replica/core"
)

// Kind identifies one of the procedurally generated meshes.
type Kind int

const (
	Box Kind = iota
	Plane
	Cylinder
	Cone
	Prism
	Pyramid4
	Sphere
	TaperedCylinder
	Torus
	HalfTorus
)

// All lists every kind in load order.
var All = []Kind{Box, Plane, Cylinder, Cone, Prism, Pyramid4, Sphere, TaperedCylinder, Torus, HalfTorus}

var kindNames = map[Kind]string{
	Box:             "box",
	Plane:           "plane",
	Cylinder:        "cylinder",
	Cone:            "cone",
	Prism:           "prism",
	Pyramid4:        "pyramid4",
	Sphere:          "sphere",
	TaperedCylinder: "taperedCylinder",
	Torus:           "torus",
	HalfTorus:       "halfTorus",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Segment counts used for every curved shape.
const (
	radialSegments = 36
	sphereRings    = 18
	tubeSegments   = 18
)

// Generate builds the unit mesh for k.
func Generate(k Kind) (*core.MeshData, error) {
	switch k {
	case Box:
		return NewBox(), nil
	case Plane:
		return NewPlane(), nil
	case Cylinder:
		return NewTaperedCylinder("cylinder", 1, 1, radialSegments), nil
	case Cone:
		return NewTaperedCylinder("cone", 1, 0, radialSegments), nil
	case Prism:
		return NewPrism(), nil
	case Pyramid4:
		return NewPyramid4(), nil
	case Sphere:
		return NewSphere(radialSegments, sphereRings), nil
	case TaperedCylinder:
		return NewTaperedCylinder("taperedCylinder", 1, 0.5, radialSegments), nil
	case Torus:
		return NewTorus("torus", 1, 0.1, 1, radialSegments, tubeSegments), nil
	case HalfTorus:
		return NewTorus("halfTorus", 1, 0.1, 0.5, radialSegments/2, tubeSegments), nil
	}
	return nil, fmt.Errorf("generate %v: unknown shape", k)
}
