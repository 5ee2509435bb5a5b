package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentic-research/cclua/api"
	"github.com/agentic-research/cclua/internal/cache"
	"github.com/agentic-research/cclua/internal/config"
	"github.com/agentic-research/cclua/internal/frontend"
	"github.com/agentic-research/cclua/internal/transpiler"
	"github.com/agentic-research/cclua/internal/writeback"
	"github.com/spf13/cobra"
)

// defaultOutputDir replaces the default output file in directory mode.
const defaultOutputDir = "out"

func runTranslate(cmd *cobra.Command, o *options, args []string) error {
	cfg, err := o.load(args)
	if err != nil {
		return err
	}
	format, err := o.format(cfg)
	if err != nil {
		return err
	}

	info, err := statSource(cfg.Input)
	if err != nil {
		return err
	}

	t := &translator{
		table:  cfg.Table,
		format: format,
		out:    cmd.OutOrStdout(),
		log:    o.logger(),
	}
	if cfg.Cache != "" {
		c, err := cache.Open(cfg.Cache)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		t.cache = c
		if n, err := c.Len(); err == nil {
			t.log.Debug("cache opened", "path", c.Path(), "entries", n)
		}
	}

	if !info.IsDir() {
		return t.file(cmd.Context(), cfg.Input, cfg.Output)
	}
	output := cfg.Output
	if output == config.DefaultOutput {
		output = defaultOutputDir
	}
	return t.dir(cmd.Context(), cfg.Input, output)
}

// statSource fails with a readable message when the input is missing.
func statSource(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("source file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return info, nil
}

// translator drives one run: read, parse, translate, write.
type translator struct {
	table  api.Table
	format frontend.Format
	cache  *cache.Cache // nil when disabled
	out    io.Writer
	log    *slog.Logger
}

// file translates src into dst. dst is written only when the whole
// translation succeeded.
func (t *translator) file(ctx context.Context, src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	lua, err := t.translate(ctx, src, content)
	if err != nil {
		return err
	}
	if err := writeback.WriteFile(dst, []byte(lua)); err != nil {
		return err
	}
	fmt.Fprintf(t.out, "Transpiled %s -> %s\n", src, dst)
	return nil
}

func (t *translator) translate(ctx context.Context, src string, content []byte) (string, error) {
	var key string
	if t.cache != nil {
		key = cache.Key(content, t.table)
		out, ok, err := t.cache.Get(key)
		if err != nil {
			return "", err
		}
		if ok {
			t.log.Debug("cache hit", "src", src)
			return out, nil
		}
		t.log.Debug("cache miss", "src", src)
	}

	t.log.Debug("translating", "src", src, "format", t.format)
	mod, err := frontend.Parse(ctx, content, src, t.format)
	if err != nil {
		return "", err
	}
	lua, err := transpiler.Translate(mod, t.table)
	if err != nil {
		return "", fmt.Errorf("%s: %w", src, err)
	}

	if t.cache != nil {
		if err := t.cache.Put(key, src, lua); err != nil {
			t.log.Warn("cache store failed", "src", src, "error", err)
		}
	}
	return lua, nil
}

// dir translates every source file under srcDir into dstDir, mirroring
// relative paths with a .lua extension. The first failure aborts the run.
func (t *translator) dir(ctx context.Context, srcDir, dstDir string) error {
	files, err := sourceFiles(srcDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .py files under %s", srcDir)
	}
	for _, src := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, src)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".lua")
		if err := t.file(ctx, src, dst); err != nil {
			return err
		}
	}
	return nil
}

// sourceFiles lists the .py files under root in lexical order, skipping
// hidden directories and __pycache__.
func sourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}
		if f, ok := frontend.DetectFormat(path); ok && f == frontend.FormatPython {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
