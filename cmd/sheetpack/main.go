package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mini-ra/internal/atlaspack"

	"github.com/schollz/progressbar/v3"
)

func main() {
	var (
		inDir   = flag.String("in", "assets/sprites", "directory with source images")
		outDir  = flag.String("out", "assets/atlas", "directory for baked pages and manifest")
		size    = flag.Int("size", 1024, "page size in pixels")
		padding = flag.Int("padding", 1, "padding around each sprite in pixels")
		workers = flag.Int("workers", 0, "decode workers, 0 means NumCPU")
		maxDim  = flag.Int("max-dim", 0, "scale images down to this size, 0 disables")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sources, err := collectSources(*inDir)
	if err != nil {
		slog.Error("could not scan input directory", "dir", *inDir, "error", err)
		os.Exit(1)
	}
	if len(sources) == 0 {
		slog.Error("no images found", "dir", *inDir)
		os.Exit(1)
	}
	slog.Debug("collected sources", "count", len(sources))

	bar := progressbar.Default(int64(len(sources)), "packing")
	atlas, err := atlaspack.Pack(context.Background(), sources, atlaspack.Options{
		PageSize: *size,
		Padding:  *padding,
		Workers:  *workers,
		MaxDim:   *maxDim,
	}, func(done, total int) {
		_ = bar.Add(1)
	})
	if err != nil {
		slog.Error("packing failed", "error", err)
		os.Exit(1)
	}

	if err := writeAtlas(atlas, *outDir); err != nil {
		slog.Error("could not write atlas", "error", err)
		os.Exit(1)
	}

	slog.Info("atlas baked", "pages", len(atlas.Pages), "sprites", len(atlas.Entries), "out", *outDir)
}

// collectSources walks the input directory for images. The sprite name is
// the slash-separated relative path without the extension.
func collectSources(dir string) ([]atlaspack.Source, error) {
	var sources []atlaspack.Source
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		sources = append(sources, atlaspack.Source{Name: name, Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

func writeAtlas(atlas *atlaspack.Atlas, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}

	pageNames := make([]string, len(atlas.Pages))
	for i, page := range atlas.Pages {
		pageNames[i] = fmt.Sprintf("page_%d.png", i)
		f, err := os.Create(filepath.Join(dir, pageNames[i]))
		if err != nil {
			return fmt.Errorf("could not create page file: %w", err)
		}
		if err := png.Encode(f, page); err != nil {
			f.Close()
			return fmt.Errorf("could not encode page: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	manifest, err := atlas.Manifest(pageNames)
	if err != nil {
		return err
	}
	return manifest.Save(filepath.Join(dir, "manifest.yaml"))
}
