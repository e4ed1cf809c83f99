package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/meshslice/pkg/geometry"
)

// Write encodes the model as binary STL
// Facet normals are recomputed from the winding order.
func Write(w io.Writer, model *Model) error {
	header := make([]byte, headerSize)
	copy(header, model.Name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, tri := range model.Triangles {
		r := record{
			Normal: toFloat32(tri.CalculateNormal()),
			V1:     toFloat32(tri.V1),
			V2:     toFloat32(tri.V2),
			V3:     toFloat32(tri.V3),
		}
		if err := binary.Write(w, binary.LittleEndian, &r); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile writes the model to a binary STL file
func WriteFile(filename string, model *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if err := Write(buf, model); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return file.Close()
}

func toFloat32(v geometry.Vector3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
