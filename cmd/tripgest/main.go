package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/tripgest/internal/backend"
	"github.com/dgallion1/tripgest/internal/export"
	"github.com/dgallion1/tripgest/internal/itinerary"
	"github.com/dgallion1/tripgest/internal/source"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripgest",
		Short:         "Parse, export and plan markdown travel itineraries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("no-pdftotext", false, "do not fall back to pdftotext for PDF input")

	root.AddCommand(newParseCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newPlanCmd())
	return root
}

// loadFile reads a proposal in any supported format and returns markdown.
// "-" reads markdown from stdin.
func loadFile(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		return (&source.MarkdownLoader{}).Load(cmd.InOrStdin())
	}
	noFallback, _ := cmd.Flags().GetBool("no-pdftotext")
	loader, err := source.ForFile(path, source.Options{PDFFallbackPdftotext: !noFallback})
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	md, err := loader.Load(f)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return md, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newParseCmd() *cobra.Command {
	var withWarnings bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a proposal and print the itinerary as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := loadFile(cmd, args[0])
			if err != nil {
				return err
			}
			it := itinerary.Parse(md)
			if !withWarnings {
				return writeJSON(cmd.OutOrStdout(), it)
			}
			warnings := itinerary.Diagnose(md)
			if warnings == nil {
				warnings = []itinerary.Warning{}
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"itinerary": it,
				"warnings":  warnings,
			})
		},
	}
	cmd.Flags().BoolVar(&withWarnings, "warnings", false, "include structural warnings")
	return cmd
}

func newExportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Convert a proposal to md, html, docx or json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			md, err := loadFile(cmd, args[0])
			if err != nil {
				return err
			}
			it := itinerary.Parse(md)

			if output == "" || output == "-" {
				return f.Write(it, cmd.OutOrStdout())
			}
			out, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := f.Write(it, out); err != nil {
				out.Close()
				return fmt.Errorf("export %s: %w", output, err)
			}
			if err := out.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md, html, docx or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var backendURL string
	var timeout time.Duration
	var proposalOnly bool
	cmd := &cobra.Command{
		Use:   "plan <request>",
		Short: "Send a travel request to the backend and print the parsed result",
		Long: "Send a free-text travel request to the backend and print the extracted " +
			"trip parameters, packages and parsed itinerary. Without --backend-url the " +
			"built-in mock backend answers.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var client backend.Client = &backend.MockClient{}
			if backendURL != "" {
				c := backend.NewHTTPClient(backendURL, timeout, nil)
				defer c.Close()
				client = c
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			resp, err := client.Process(ctx, args[0])
			if err != nil {
				return err
			}
			if proposalOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), resp.Proposal)
				return err
			}
			warnings := itinerary.Diagnose(resp.Proposal)
			if warnings == nil {
				warnings = []itinerary.Warning{}
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"extracted_info": resp.ExtractedInfo,
				"packages":       resp.Packages,
				"itinerary":      itinerary.Parse(resp.Proposal),
				"warnings":       warnings,
				"timings":        resp.Timings,
			})
		},
	}
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "travel backend base URL (default: built-in mock)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "backend request timeout")
	cmd.Flags().BoolVar(&proposalOnly, "proposal", false, "print only the markdown proposal")
	return cmd
}
