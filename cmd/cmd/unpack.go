package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lifegpc/circus-crx-tool/internal/pck"
	"github.com/lifegpc/circus-crx-tool/pkg/reader"
	ioutil "github.com/lifegpc/circus-crx-tool/pkg/util/io"
	osutil "github.com/lifegpc/circus-crx-tool/pkg/util/os"
	"github.com/spf13/cobra"
)

// DefineUnpackCommand builds the "unpack <input.pck> <output_dir/>" subcommand.
func DefineUnpackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <input.pck> <output_dir/>",
		Short: "Extract every sub-file from a PCK archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(args[0], args[1])
		},
	}
}

func runUnpack(input, outputDir string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	buffered := reader.NewBufferedReadSeeker(f, 32*1024)
	pckReader, err := pck.NewReader(buffered)
	if err != nil {
		return fmt.Errorf("read index of %s: %w", input, err)
	}

	if _, err := osutil.EnsureDir(outputDir, false); err != nil {
		return fmt.Errorf("prepare output dir %s: %w", outputDir, err)
	}

	for i, entry := range pckReader.Entries() {
		er, err := pckReader.Open(i)
		if err != nil {
			return fmt.Errorf("open entry %q: %w", entry.Name, err)
		}

		dst := filepath.Join(outputDir, entry.Name)
		if err := ioutil.CopyFile(dst, er); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
	}

	fmt.Printf("unpacked %d entries from %s into %s\n", len(pckReader.Entries()), input, outputDir)
	return nil
}
