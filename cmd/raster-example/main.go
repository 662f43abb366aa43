package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/twpayne/go-raster"
)

func run() error {
	filename := flag.String("tiff", "", "path to tiled TIFF file")
	flag.Parse()

	if *filename == "" || flag.NArg() != 2 {
		return errors.New("syntax: raster-example -tiff file x y")
	}
	x, err := strconv.ParseFloat(flag.Arg(0), 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(flag.Arg(1), 64)
	if err != nil {
		return err
	}

	tiffRaster, err := raster.NewTIFFRaster(os.DirFS(filepath.Dir(*filename)), filepath.Base(*filename))
	if err != nil {
		return err
	}
	defer tiffRaster.Close()

	coord := raster.FloatPoint[float64]{X: x, Y: y}
	if pixel, ok := raster.GetPixelAt(tiffRaster, coord); ok {
		fmt.Println("pixel:", pixel)
	} else {
		fmt.Println("pixel: out of bounds")
	}
	fmt.Println("clamped:", raster.GetPixelClamped(tiffRaster, coord))
	fmt.Println("bilinear:", raster.SampleBilinear(tiffRaster, x, y))

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
