package cmd

import (
	"fmt"
	"os"

	"github.com/lifegpc/circus-crx-tool/internal/crx"
	"github.com/lifegpc/circus-crx-tool/pkg/reader"
	fmtutil "github.com/lifegpc/circus-crx-tool/pkg/util/format"
	"github.com/spf13/cobra"
)

// DefineExportCommand builds the "export <input.crx> <output.png>" subcommand.
func DefineExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <input.crx> <output.png>",
		Short: "Export a CRX image as a PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], args[1])
		},
	}
}

func runExport(input, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	buffered := reader.NewBufferedReadSeeker(in, 32*1024)
	img, err := crx.Decode(buffered, info.Size())
	if err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer out.Close()

	if err := crx.ExportPNG(img, out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}

	fmt.Printf("exported %s (%s) to %s\n", input, fmtutil.FormatBytes(info.Size()), output)
	return nil
}
