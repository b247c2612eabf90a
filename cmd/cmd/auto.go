package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lifegpc/circus-crx-tool/internal/crx"
	osutil "github.com/lifegpc/circus-crx-tool/pkg/util/os"
)

// runAuto dispatches a single path argument by extension: a .crx file
// is exported to PNG. The output path is resolved relative to an
// advdata folder layout when the input lives under one, mirroring a
// double-click launch from inside an installed game's asset tree.
// Any failure is printed and followed by a blocking "press enter"
// prompt rather than propagated, since this mode is meant to be
// launched from a file manager with no visible console otherwise.
func runAuto(input string) error {
	if err := autoExport(input); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		waitForEnter()
		return nil
	}
	fmt.Fprintln(os.Stderr, "Auto operation completed successfully.")
	return nil
}

func autoExport(input string) error {
	ext := strings.ToLower(filepath.Ext(input))
	if ext != ".crx" {
		return fmt.Errorf("auto: unsupported file extension %q", ext)
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	img, err := crx.Decode(f, info.Size())
	if err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}

	output, err := resolveAutoOutputPath(input)
	if err != nil {
		return err
	}
	if _, err := osutil.EnsureDir(filepath.Dir(output), false); err != nil {
		return fmt.Errorf("prepare output dir for %s: %w", output, err)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()

	if err := crx.ExportPNG(img, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// resolveAutoOutputPath walks input's path upward looking for a
// directory literally named "advdata" (case-insensitive). If one is
// found, the output is placed at <base>/extracted/advdata/<path-under-advdata>
// with a .png extension, where <base> is advdata's parent — the
// "advdata" segment itself is kept in the output path. If no advdata
// ancestor exists, the output is simply input with its extension
// swapped to .png.
func resolveAutoOutputPath(input string) (string, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %s: %w", input, err)
	}

	var removed []string
	cur := abs
	for {
		name := filepath.Base(cur)
		removed = append(removed, name)
		if strings.EqualFold(name, "advdata") {
			base := filepath.Dir(cur)
			rel := reverse(removed)
			out := filepath.Join(append([]string{base, "extracted"}, rel...)...)
			return withExt(out, ".png"), nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return withExt(abs, ".png"), nil
		}
		cur = parent
	}
}

func reverse(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func waitForEnter() {
	fmt.Fprintln(os.Stderr, "Press Enter to exit program.")
	bufio.NewReader(os.Stdin).ReadString('\n')
}
