package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lifegpc/circus-crx-tool/internal/pck"
	osutil "github.com/lifegpc/circus-crx-tool/pkg/util/os"
	"github.com/spf13/cobra"
)

// DefinePackCommand builds the "pack <input> <output.pck>" subcommand.
func DefinePackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <input> <output.pck>",
		Short: "Pack a file or a directory's top-level files into a PCK archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(args[0], args[1])
		},
	}
}

func runPack(input, output string) error {
	files, err := osutil.ListFiles(input)
	if err != nil {
		return fmt.Errorf("list %s: %w", input, err)
	}

	out, err := os.OpenFile(output, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()

	w := pck.NewWriter(out, pck.CalculateHeaderSize(len(files)))

	for _, path := range files {
		name := filepath.Base(path)
		fw, err := w.AddFile(name)
		if err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}

		src, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		_, copyErr := io.Copy(fw, src)
		src.Close()
		if copyErr != nil {
			return fmt.Errorf("write %s: %w", name, copyErr)
		}
	}

	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("write index of %s: %w", output, err)
	}

	fmt.Printf("packed %d entries from %s into %s\n", len(files), input, output)
	return nil
}
