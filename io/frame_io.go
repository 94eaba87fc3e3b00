package io

import (
	"encoding/json"
	"fmt"
	"io"

	"desk-replica/core"
	"desk-replica/math"
	"desk-replica/scene"
)

// FrameFile is a JSON snapshot of one composed frame.
type FrameFile struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Camera  CameraData `json:"camera"`
	Parts   []PartData `json:"parts"`
}

// CameraData stores camera state
type CameraData struct {
	Position [3]float32 `json:"position"`
	Yaw      float32    `json:"yaw"`
	Pitch    float32    `json:"pitch"`
	FOV      float32    `json:"fov"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
	Mode     string     `json:"mode"` // "perspective" or "orthographic"
}

// PartData stores one resolved draw.
type PartData struct {
	Group    string      `json:"group"`
	Part     string      `json:"part"`
	Shape    string      `json:"shape"`
	Model    [16]float32 `json:"model"`
	Material string      `json:"material"`
	Texture  string      `json:"texture,omitempty"`
	Slot     int         `json:"slot"`
	UVScale  [2]float32  `json:"uv_scale"`
	Color    [4]float32  `json:"color"`
}

// NewFrameFile snapshots frame as seen from cam. cam may be nil.
func NewFrameFile(name string, cam *scene.Camera, frame []scene.DrawRecord) *FrameFile {
	f := &FrameFile{Version: "1.0", Name: name}
	if cam != nil {
		mode := "perspective"
		if cam.Orthographic {
			mode = "orthographic"
		}
		f.Camera = CameraData{
			Position: Vec3ToArray(cam.Position),
			Yaw:      cam.Yaw,
			Pitch:    cam.Pitch,
			FOV:      cam.FOV,
			Near:     cam.NearPlane,
			Far:      cam.FarPlane,
			Mode:     mode,
		}
	}

	for _, rec := range frame {
		p := PartData{
			Group:    rec.Group,
			Part:     rec.Part,
			Shape:    rec.Shape.String(),
			Model:    rec.Model.Flatten(),
			Material: rec.Material.Tag,
			Slot:     rec.Slot,
		}
		if rec.Surface.IsTextured() {
			p.Texture = rec.Surface.TextureTag
			p.UVScale = [2]float32{rec.Surface.UVScale.X, rec.Surface.UVScale.Y}
		} else {
			p.Color = ColorToArray(rec.Surface.Color)
		}
		f.Parts = append(f.Parts, p)
	}
	return f
}

// SaveFrame writes f as indented JSON.
func SaveFrame(w io.Writer, f *FrameFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to marshal frame: %w", err)
	}
	return nil
}

// LoadFrame reads a frame snapshot.
func LoadFrame(r io.Reader) (*FrameFile, error) {
	f := &FrameFile{}
	if err := json.NewDecoder(r).Decode(f); err != nil {
		return nil, fmt.Errorf("failed to parse frame file: %w", err)
	}
	return f, nil
}

// --- Helper conversions ---

func Vec3ToArray(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func ColorToArray(c core.Color) [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
