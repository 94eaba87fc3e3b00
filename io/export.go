// Package io writes composed frames to interchange formats.
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"desk-replica/core"
	"desk-replica/scene"
	"desk-replica/scene/shapes"
)

// FrameMeshes generates the unit mesh for every shape kind the frame uses.
func FrameMeshes(frame []scene.DrawRecord) (map[shapes.Kind]*core.MeshData, error) {
	meshes := make(map[shapes.Kind]*core.MeshData)
	for _, rec := range frame {
		if _, ok := meshes[rec.Shape]; ok {
			continue
		}
		data, err := shapes.Generate(rec.Shape)
		if err != nil {
			return nil, err
		}
		meshes[rec.Shape] = data
	}
	return meshes, nil
}

// Export writes frame to path in the format its extension names: .glb, .obj
// (with a sibling .mtl) or .json.
func Export(path string, frame []scene.DrawRecord, cam *scene.Camera) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".glb", ".obj", ".json":
	default:
		return fmt.Errorf("export %s: unsupported format %q", path, ext)
	}

	meshes, err := FrameMeshes(frame)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	switch ext {
	case ".glb":
		return ExportGLB(f, frame, meshes)
	case ".json":
		name := strings.TrimSuffix(filepath.Base(path), ext)
		return SaveFrame(f, NewFrameFile(name, cam, frame))
	}

	mtlPath := strings.TrimSuffix(path, ext) + ".mtl"
	if err := ExportOBJ(f, filepath.Base(mtlPath), frame, meshes); err != nil {
		return err
	}
	mf, err := os.Create(mtlPath)
	if err != nil {
		return fmt.Errorf("failed to create MTL file: %w", err)
	}
	defer func() {
		err = errors.Join(err, mf.Close())
	}()
	return ExportMTL(mf, frame)
}
