package cmd

import (
	"fmt"
	"os"

	"github.com/lifegpc/circus-crx-tool/internal/crx"
	"github.com/lifegpc/circus-crx-tool/pkg/reader"
	"github.com/spf13/cobra"
)

// DefineImportCommand builds the
// "import <origin.crx> <input.png> <output.crx>" subcommand.
func DefineImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <origin.crx> <input.png> <output.crx>",
		Short: "Re-encode a PNG back into a CRX using an origin image's row modes and clips",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], args[1], args[2])
		},
	}
}

func runImport(origin, input, output string) error {
	originFile, err := os.Open(origin)
	if err != nil {
		return fmt.Errorf("open %s: %w", origin, err)
	}
	defer originFile.Close()

	info, err := originFile.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", origin, err)
	}

	buffered := reader.NewBufferedReadSeeker(originFile, 32*1024)
	img, err := crx.Decode(buffered, info.Size())
	if err != nil {
		return fmt.Errorf("decode origin %s: %w", origin, err)
	}

	pngFile, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer pngFile.Close()

	src, err := crx.DecodePNG(pngFile)
	if err != nil {
		return fmt.Errorf("decode png %s: %w", input, err)
	}

	if err := img.Import(src); err != nil {
		return fmt.Errorf("import %s into %s: %w", input, origin, err)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()

	if err := img.Encode(out); err != nil {
		return fmt.Errorf("encode %s: %w", output, err)
	}

	fmt.Printf("imported %s over %s to %s\n", input, origin, output)
	return nil
}
