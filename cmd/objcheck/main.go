// Command objcheck validates generated OBJ files for the defects that
// break downstream importers: negative or out-of-range face indices,
// missing vertex colors, and external texture/material references.
package main

import (
	"flag"
	"fmt"
	"os"

	"terrain-gen/internal/mesh"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <file.obj> [...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, path := range flag.Args() {
		if !check(path) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func check(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	defer f.Close()

	rep, err := mesh.ValidateOBJ(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
		return false
	}

	fmt.Printf("%s:\n", path)
	fmt.Printf("  Vertices: %d (%d with colors)\n", rep.Vertices, rep.ColoredVertices)
	fmt.Printf("  Faces: %d\n", rep.Faces)
	fmt.Printf("  Texture coords: %d, normals: %d\n", rep.TextureCoords, rep.Normals)

	issues := rep.Issues()
	if len(issues) == 0 {
		fmt.Printf("  OK: vertex colors present, positive in-range indices, no external references\n")
		return true
	}
	for _, issue := range issues {
		fmt.Printf("  ISSUE: %s\n", issue)
	}
	return false
}
