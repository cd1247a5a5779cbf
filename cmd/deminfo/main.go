// Command deminfo prints the georeferencing and sample statistics of a
// gridded raster dataset.
package main

import (
	"flag"
	"fmt"
	"os"

	"terrain-gen/internal/raster"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <raster file> [...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := printInfo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func printInfo(path string) error {
	g, err := raster.Load(path)
	if err != nil {
		return err
	}
	stats := g.Stats()
	gt := g.GeoTransform

	fmt.Printf("%s:\n", path)
	fmt.Printf("  Dimensions: %d x %d pixels\n", g.Cols, g.Rows)
	fmt.Printf("  Origin: (%.2f, %.2f)\n", gt[0], gt[3])
	fmt.Printf("  Pixel size: (%.2f, %.2f)\n", gt[1], gt[5])
	fmt.Printf("  Extent X: %.2f to %.2f (%.2f m)\n",
		g.WorldX(0), g.WorldX(g.Cols), g.WorldX(g.Cols)-g.WorldX(0))
	minY, maxY := g.WorldY(g.Rows), g.WorldY(0)
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	fmt.Printf("  Extent Y: %.2f to %.2f (%.2f m)\n", minY, maxY, maxY-minY)
	fmt.Printf("  Value range: %.2f to %.2f\n", stats.Min, stats.Max)
	if g.HasNoData {
		fmt.Printf("  NoData: %.2f\n", g.NoData)
	} else {
		fmt.Printf("  NoData: none\n")
	}
	fmt.Printf("  Valid samples: %d / %d\n", stats.Valid, g.Rows*g.Cols)

	if proj, err := raster.Projection(path); err == nil && proj != "" {
		if len(proj) > 100 {
			proj = proj[:100] + "..."
		}
		fmt.Printf("  Projection: %s\n", proj)
	}
	return nil
}
