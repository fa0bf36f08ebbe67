package main

import (
	"bytes"
	"strings"
	"testing"
)

const testdata = "../../pkg/obj/testdata/"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	edgesCount, edgesLongest, edgesShortest, edgesMinLength, edgesMaxLength = 10, false, false, 0, 0
	moveX, moveY, moveZ = 0, 0, 0
	rotateX, rotateY, rotateZ = 0, 0, 0
	scaleFactor, transformKind, printVertices = 0, "general", false
	point1X, point1Y, point1Z, point2X, point2Y, point2Z = 0, 0, 0, 0, 0, 0

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInfoSeveralFiles(t *testing.T) {
	out, err := execute(t, "info", testdata+"cube.obj", testdata+"pyramid.obj")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}

	cube := strings.Index(out, "cube.obj")
	pyramid := strings.Index(out, "pyramid.obj")
	if cube < 0 || pyramid < 0 || cube > pyramid {
		t.Errorf("expected both reports in argument order:\n%s", out)
	}
	if !strings.Contains(out, "Vertices: 8") || !strings.Contains(out, "Vertices: 6") {
		t.Errorf("expected vertex counts in output:\n%s", out)
	}
	if !strings.Contains(out, "Edges: 36 (18 unique)") {
		t.Errorf("expected cube edge counts in output:\n%s", out)
	}
}

func TestInfoMissingFile(t *testing.T) {
	if _, err := execute(t, "info", testdata+"cube.obj", testdata+"invalid_file.obj"); err == nil {
		t.Error("expected info to fail for a missing file")
	}
}

func TestEdgesLongest(t *testing.T) {
	out, err := execute(t, "edges", testdata+"cube_quads.obj", "--longest", "-n", "3")
	if err != nil {
		t.Fatalf("edges failed: %v", err)
	}
	if !strings.Contains(out, "Top 3 Longest Edges") {
		t.Errorf("unexpected title:\n%s", out)
	}
	if !strings.Contains(out, "Total edges in model: 24") {
		t.Errorf("expected 24 edges:\n%s", out)
	}
}

func TestTransformScale(t *testing.T) {
	out, err := execute(t, "transform", testdata+"cube.obj", "--scale", "2", "--kind", "scale")
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	if !strings.Contains(out, "Max: (1.000000, 1.000000, 1.000000)") {
		t.Errorf("expected the normalized cube to double:\n%s", out)
	}
	if !strings.Contains(out, "Determinant: 8.000000") {
		t.Errorf("expected determinant 8:\n%s", out)
	}
}

func TestTransformMoveAndVertices(t *testing.T) {
	out, err := execute(t, "transform", testdata+"faces.obj", "--no-normalize", "--move-x", "1", "--vertices")
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	for _, line := range []string{
		"v 1.000000 0.000000 0.000000",
		"v 2.000000 0.000000 0.000000",
		"v 1.000000 1.000000 0.000000",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("expected %q in output:\n%s", line, out)
		}
	}
}

func TestTransformUnknownKind(t *testing.T) {
	if _, err := execute(t, "transform", testdata+"cube.obj", "--kind", "shear"); err == nil {
		t.Error("expected an unknown kind to fail")
	}
}

func TestTransformLoadFailure(t *testing.T) {
	_, err := execute(t, "transform", testdata+"bad_index.obj")
	if err == nil || !strings.HasPrefix(err.Error(), "Failed to load model") {
		t.Errorf("expected a load failure, got %v", err)
	}
}

func TestMeasure(t *testing.T) {
	out, err := execute(t, "measure", testdata+"cube_quads.obj",
		"--x1", "1.1", "--y1", "1", "--z1", "1", "--x2", "-1", "--y2", "-1", "--z2", "-1")
	if err != nil {
		t.Fatalf("measure failed: %v", err)
	}
	if !strings.Contains(out, "Nearest vertex #3: (1.000000, 1.000000, 1.000000)") {
		t.Errorf("expected vertex 3 to be nearest to point 1:\n%s", out)
	}
	if !strings.Contains(out, "Distance between nearest vertices: 3.464102 units") {
		t.Errorf("expected the cube diagonal:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "goobj dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "normalize:") || !strings.Contains(out, "debounce:") {
		t.Errorf("unexpected config output:\n%s", out)
	}
}
