// meshtool is a CLI utility for inspecting OBJ models and heightmap terrain.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"github.com/Faultbox/groundwork/internal/config"
	"github.com/Faultbox/groundwork/internal/engine/model"
	"github.com/Faultbox/groundwork/internal/engine/placement"
	"github.com/Faultbox/groundwork/internal/engine/terrain"
	"github.com/Faultbox/groundwork/internal/logger"
)

// errUsage makes main print the command usage.
var errUsage = errors.New("usage")

type command struct {
	usage string
	run   func(w io.Writer, args []string) error
}

var commands = map[string]command{
	"obj":     {"meshtool obj [-tangents] <file.obj>...", cmdObj},
	"terrain": {"meshtool terrain [-config f] [-size S] [-max-height M] <heightmap>", cmdTerrain},
	"height":  {"meshtool height [-config f] [-size S] [-max-height M] <heightmap> <x> <z>", cmdHeight},
	"scatter": {"meshtool scatter [-config f] [-n N] [-seed S] [-variants V] <heightmap>", cmdScatter},
	"config":  {"meshtool config [-config f] [-size S] [-max-height M] [-o file | -user]", cmdConfig},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	switch name {
	case "help", "-h", "--help":
		printUsage()
		return
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.run(os.Stdout, os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "Usage:", cmd.usage)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - OBJ model and heightmap terrain utility

Usage:
  meshtool <command> [options]

Commands:
  obj [-tangents] <file.obj>...      Build models and print buffer stats
  terrain <heightmap>                Build a terrain tile and print mesh stats
  height <heightmap> <x> <z>         Sample the terrain height at (x, z)
  scatter <heightmap>                Print deterministic instance placements
  config                             Print or write the resolved viewer config

Terrain commands accept -config to take size, height and scatter settings
from a viewer config file.

Examples:
  meshtool obj -tangents barrel.obj
  meshtool terrain -size 800 -max-height 40 heightmap.png
  meshtool height heightmap.png -400 -400
  meshtool scatter -n 20 -seed 7 heightmap.png
  meshtool config -max-height 60 -user`)
}

func cmdObj(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("obj", flag.ContinueOnError)
	tangents := fs.Bool("tangents", false, "Generate per-vertex tangents")
	verbose := fs.Bool("v", false, "Log build details")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		return errUsage
	}
	if *verbose {
		if err := logger.Init("debug", ""); err != nil {
			return err
		}
	}

	meshes, err := model.LoadAll(context.Background(), fs.Args(), model.BuildOptions{Tangents: *tangents})
	if err != nil {
		return err
	}

	for i, md := range meshes {
		fmt.Fprintf(w, "%s\n", fs.Arg(i))
		fmt.Fprintf(w, "  vertices:  %d\n", md.VertexCount())
		fmt.Fprintf(w, "  triangles: %d\n", md.TriangleCount())
		fmt.Fprintf(w, "  tangents:  %v\n", md.HasTangents())
		fmt.Fprintf(w, "  furthest:  %.4f\n", md.FurthestPoint)
		fmt.Fprintf(w, "  bounds:    %v - %v\n", md.Bounds.Min, md.Bounds.Max)
	}
	return nil
}

// terrainFlags registers the settings shared by the heightmap commands.
type terrainFlags struct {
	configPath *string
	size       *float64
	maxHeight  *float64
}

func addTerrainFlags(fs *flag.FlagSet) terrainFlags {
	return terrainFlags{
		configPath: fs.String("config", "", "Viewer config file for defaults"),
		size:       fs.Float64("size", 0, "World size of the tile (default from config)"),
		maxHeight:  fs.Float64("max-height", 0, "Height of the brightest sample (default from config)"),
	}
}

// load returns the effective config: defaults, then the config file, then
// explicit flags.
func (tf terrainFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if *tf.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*tf.configPath); err != nil {
			return nil, err
		}
	}
	if *tf.size > 0 {
		cfg.Terrain.Size = float32(*tf.size)
	}
	if *tf.maxHeight > 0 {
		cfg.Terrain.MaxHeight = float32(*tf.maxHeight)
	}
	return cfg, nil
}

// loadGrid builds the tile at the grid origin.
func (tf terrainFlags) loadGrid(path string) (*config.Config, *terrain.HeightGrid, error) {
	cfg, err := tf.load()
	if err != nil {
		return nil, nil, err
	}
	grid, err := terrain.LoadHeightmap(path, cfg.Terrain.GridOptions())
	if err != nil {
		return nil, nil, err
	}
	return cfg, grid, nil
}

func cmdTerrain(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("terrain", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	_, grid, err := tf.loadGrid(fs.Arg(0))
	if err != nil {
		return err
	}
	mesh := terrain.BuildMesh(grid)

	fmt.Fprintf(w, "%s\n", fs.Arg(0))
	fmt.Fprintf(w, "  resolution: %dx%d\n", grid.Resolution(), grid.Resolution())
	fmt.Fprintf(w, "  cell size:  %.4f\n", grid.CellSize())
	fmt.Fprintf(w, "  vertices:   %d\n", mesh.VertexCount())
	fmt.Fprintf(w, "  triangles:  %d\n", mesh.TriangleCount())
	fmt.Fprintf(w, "  height:     %.4f .. %.4f\n", mesh.Bounds.Min[1], mesh.Bounds.Max[1])
	return nil
}

func cmdHeight(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("height", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	if err := fs.Parse(args); err != nil || fs.NArg() != 3 {
		return errUsage
	}

	x, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("parsing x: %w", err)
	}
	z, err := strconv.ParseFloat(fs.Arg(2), 32)
	if err != nil {
		return fmt.Errorf("parsing z: %w", err)
	}

	_, grid, err := tf.loadGrid(fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%.4f\n", grid.HeightAt(float32(x), float32(z)))
	return nil
}

func cmdScatter(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("scatter", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	count := fs.Int("n", 10, "Number of placements")
	variants := fs.Int("variants", 0, "Number of texture variants to pick from")
	seed := fs.Int64("seed", 0, "RNG seed (default from config)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	cfg, grid, err := tf.loadGrid(fs.Arg(0))
	if err != nil {
		return err
	}
	if *seed != 0 {
		cfg.Scatter.Seed = *seed
	}

	// The tile spans [0, size) from the origin; scatter over the whole of it.
	area := placement.Area{MaxX: cfg.Terrain.Size, MaxZ: cfg.Terrain.Size}
	rng := rand.New(rand.NewSource(cfg.Scatter.Seed))
	opts := placement.Options{Count: *count, Variants: *variants}

	for _, p := range placement.Scatter(rng, grid, area, opts) {
		fmt.Fprintf(w, "%.4f %.4f %.4f %d\n", p.Position.X(), p.Position.Y(), p.Position.Z(), p.Variant)
	}
	return nil
}

func cmdConfig(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	out := fs.String("o", "", "Write the config to this file")
	user := fs.Bool("user", false, "Write the config to the user config directory")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 || (*out != "" && *user) {
		return errUsage
	}

	cfg, err := tf.load()
	if err != nil {
		return err
	}

	switch {
	case *user:
		path, err := cfg.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", path)
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s\n", *out)
	default:
		if err := cfg.Validate(); err != nil {
			return err
		}
		return cfg.Encode(w)
	}
	return nil
}
