package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/CadixDev/Lorenz-sub001/format/tsrg"
	"github.com/CadixDev/Lorenz-sub001/format/yamlmap"
	"github.com/CadixDev/Lorenz-sub001/internal/config"
	"github.com/CadixDev/Lorenz-sub001/model"
)

// formatOf picks the mapping format from the file extension.
func (a *app) formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsrg":
		return config.FormatTSRG
	case ".yaml", ".yml":
		return config.FormatYAML
	default:
		return a.cfg.Format.Default
	}
}

func (a *app) loadSet(path string) (*model.MappingSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mappings %s: %w", path, err)
	}
	defer f.Close()

	set := model.NewMappingSet()

	switch a.formatOf(path) {
	case config.FormatYAML:
		err = yamlmap.Read(f, set)
	default:
		err = tsrg.NewReader(f).Read(set)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read mappings %s: %w", path, err)
	}

	a.log.Debug("loaded mappings", "path", path, "classes", set.Len())

	return set, nil
}

// saveSet writes set to path, or to stdout in the default format when path
// is empty.
func (a *app) saveSet(path string, set *model.MappingSet) error {
	if path == "" {
		return writeSet(a.stdout, a.cfg.Format.Default, set)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := writeSet(f, a.formatOf(path), set); err != nil {
		f.Close()
		return fmt.Errorf("failed to write mappings %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	a.log.Debug("wrote mappings", "path", path, "classes", set.Len())

	return nil
}

func writeSet(w io.Writer, format string, set *model.MappingSet) error {
	if format == config.FormatYAML {
		return yamlmap.Write(w, set)
	}

	return tsrg.NewWriter(w).Write(set)
}
