// miptool is a CLI utility for generating image mip chains on the CPU.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/mipforge/pkg/imageio"
	"github.com/Faultbox/mipforge/pkg/mipchain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "generate", "gen":
		cmdGenerate(args)
	case "plan":
		cmdPlan(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`miptool - CPU mip chain utility

Usage:
  miptool <command> [options]

Commands:
  info <image>              Show the mip chain layout for an image
  generate [-o dir] <image> Generate all mip levels as PNG files
  plan <width> <height>     Show the mip chain for arbitrary dimensions

Examples:
  miptool info texture.png
  miptool generate -o out texture.png
  miptool plan 640 480`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: miptool info <image>")
		os.Exit(1)
	}

	img, err := imageio.Decode(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width := uint32(img.Rect.Dx())
	height := uint32(img.Rect.Dy())

	fmt.Printf("Image:  %s\n", args[0])
	fmt.Printf("Size:   %dx%d\n", width, height)
	printChain(mipchain.Plan(width, height))
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	outDir := fs.String("o", "output", "Output directory")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: miptool generate [-o dir] <image>")
		os.Exit(1)
	}

	img, err := imageio.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	levels := mipchain.GenerateImages(img)
	for i, level := range levels {
		path := imageio.ExportPath(*outDir, i)
		if err := imageio.SavePNG(path, level); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing level %d: %v\n", i, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote: %s (%dx%d)\n", path, level.Rect.Dx(), level.Rect.Dy())
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d levels\n", len(levels))
}

func cmdPlan(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: miptool plan <width> <height>")
		os.Exit(1)
	}

	width, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid width: %s\n", args[0])
		os.Exit(1)
	}
	height, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid height: %s\n", args[1])
		os.Exit(1)
	}

	fmt.Printf("Size:   %dx%d\n", width, height)
	printChain(mipchain.Plan(uint32(width), uint32(height)))
}

func printChain(chain mipchain.Chain) {
	fmt.Printf("Levels: %d\n", chain.Count())
	fmt.Println()

	for i, ext := range chain.Levels {
		mark := ""
		if ext.IsZero() {
			mark = "  (empty)"
		}
		fmt.Printf("  level %-2d  %dx%d%s\n", i, ext.Width, ext.Height, mark)
	}
}
