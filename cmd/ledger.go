/*
Copyright © 2026 DDBJ

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ddbj/jvar/internal/iofs"
	"github.com/ddbj/jvar/internal/ioindex"
	"github.com/ddbj/jvar/internal/ioledger"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getLedgerCmd returns the ledger command group.
func getLedgerCmd() *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect the accession ledger and the accession index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	ledgerCmd.AddCommand(getLedgerCheckCmd())
	ledgerCmd.AddCommand(getLedgerLookupCmd())
	return ledgerCmd
}

func getLedgerCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse the ledger, report gaps and the next free accessions",
		Long: `Parse the accession ledger with all consistency checks
used before allocation: line format, range order, namespace rules,
duplicate submissions and overlapping ranges. Gaps between issued
accessions are reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ioledger.New(cfg.LedgerPath(), cfg.Ledger.BackupDir)
			l, err := store.Load()
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ledger %s: %s submissions\n",
				store.Path, humanize.Comma(int64(len(l.Entries))))
			for _, n := range ledger.Namespaces {
				fmt.Fprintf(out, "  next %-4s %s\n", n, n.Accession(l.Next(n)))
			}
			for _, g := range l.Gaps() {
				gn.Warn("%s accessions are not serial, <em>%s-%s</em> is missing",
					g.Namespace, g.Namespace.Accession(g.From),
					g.Namespace.Accession(g.To))
			}
			return nil
		},
	}
}

func getLedgerLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <accession|local ID|submission ID>",
		Short: "Find records in the accession index",
		Long: `Search accessions.sqlite in the output directory by accession,
local record ID, submission ID or record UUID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			path := filepath.Join(cfg.Output.Dir, ioindex.FileName)
			if !iofs.Exists(path) {
				err := fmt.Errorf("accession index %s does not exist", path)
				gn.PrintErrorMessage(err)
				return err
			}
			idx, err := ioindex.Open(ctx, path)
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			defer idx.Close()

			rows, err := idx.Lookup(ctx, args[0])
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n",
					r.Accession, r.Namespace, r.LocalID, r.SubmissionID, r.RecordID)
			}
			if len(rows) == 0 {
				gn.Info("Nothing found for <em>%s</em>", args[0])
			}
			return nil
		},
	}
}
